// Package auth is a reference identity-propagation collaborator for
// transports: it is not part of the dispatcher core, which treats its
// context value as opaque, but it is the natural place to turn a bearer
// token into the JSON claims blob a transport attaches to a dispatch.
package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/localrivet/mcpcore/protocol"
)

// Principal represents the authenticated entity after successful token
// validation. It can carry claims from the token.
type Principal interface {
	// Claims returns the claims associated with the principal, typically
	// a map decoded from the token payload.
	Claims() map[string]interface{}
	// Subject returns a unique identifier for the principal (the 'sub' claim).
	Subject() string
}

// TokenValidator validates access tokens and resolves the Principal they identify.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (Principal, error)
}

// PermissionChecker decides whether a Principal may invoke a given MCP
// method. The dispatcher itself has no notion of permissions; a
// transport may consult a PermissionChecker before calling Dispatch
// (neither transport in this module does).
type PermissionChecker interface {
	CheckPermission(ctx context.Context, principal Principal, method string, params interface{}) error
}

type principalKeyType struct{}

var principalKey = principalKeyType{}

// ContextWithPrincipal returns a child context carrying principal.
func ContextWithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFromContext retrieves a Principal previously attached with
// ContextWithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// RPCContext marshals a Principal's claims into the opaque JSON value
// the dispatcher threads through to handlers as rpcContext. A nil
// principal yields an empty JSON object rather than null, so handlers
// can always unmarshal it into a map without a nil check.
func RPCContext(principal Principal) (json.RawMessage, error) {
	if principal == nil {
		return json.RawMessage(`{}`), nil
	}
	raw, err := json.Marshal(principal.Claims())
	if err != nil {
		return nil, fmt.Errorf("marshal principal claims: %w", err)
	}
	return raw, nil
}

// AllowAllPermissionChecker grants access to any authenticated
// principal and denies unauthenticated requests. It's the default for
// servers that don't need fine-grained per-method authorization.
type AllowAllPermissionChecker struct{}

func (AllowAllPermissionChecker) CheckPermission(ctx context.Context, principal Principal, method string, params interface{}) error {
	if principal == nil {
		return protocol.NewInternalError("no authenticated principal found in context")
	}
	return nil
}

var _ PermissionChecker = AllowAllPermissionChecker{}

// Package auth: this file implements a TokenValidator based on JWTs
// verified against a JWKS endpoint.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// JWKSConfig holds configuration for the JWKS-based validator.
type JWKSConfig struct {
	// JWKSURL is the URL of the JSON Web Key Set endpoint. (Required)
	JWKSURL string
	// ExpectedIssuer is the required value for the 'iss' claim. (Optional)
	ExpectedIssuer string
	// ExpectedAudience is the required value for the 'aud' claim. (Optional)
	ExpectedAudience string
	// ClockSkew is the acceptable time difference validating 'exp'/'nbf'. Defaults to 0.
	ClockSkew time.Duration
	// RefreshInterval is how often to refresh the JWK set. Defaults to 1 hour.
	RefreshInterval time.Duration
}

// JWKSTokenValidator implements TokenValidator against a JWKS endpoint.
type JWKSTokenValidator struct {
	config     JWKSConfig
	jwkCache   *jwk.Cache
	httpClient *http.Client
}

// NewJWKSTokenValidator creates a validator and performs an initial JWKS fetch.
func NewJWKSTokenValidator(config JWKSConfig, client *http.Client) (*JWKSTokenValidator, error) {
	if config.JWKSURL == "" {
		return nil, fmt.Errorf("JWKSURL is required in JWKSConfig")
	}
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = 1 * time.Hour
	}
	if client == nil {
		client = http.DefaultClient
	}

	cache := jwk.NewCache(context.Background())
	if err := cache.Register(config.JWKSURL, jwk.WithMinRefreshInterval(config.RefreshInterval), jwk.WithHTTPClient(client)); err != nil {
		return nil, fmt.Errorf("register JWKS URL %s: %w", config.JWKSURL, err)
	}
	if _, err := cache.Refresh(context.Background(), config.JWKSURL); err != nil {
		return nil, fmt.Errorf("initial JWKS fetch from %s: %w", config.JWKSURL, err)
	}

	return &JWKSTokenValidator{config: config, jwkCache: cache, httpClient: client}, nil
}

// jwtPrincipal implements Principal for JWT claims.
type jwtPrincipal struct {
	claims jwt.MapClaims
}

func (p *jwtPrincipal) Claims() map[string]interface{} {
	return p.claims
}

func (p *jwtPrincipal) Subject() string {
	sub, _ := p.claims.GetSubject()
	return sub
}

// ValidateToken parses and verifies tokenString's signature against the
// JWKS key identified by its 'kid' header, then checks standard claims.
func (v *JWKSTokenValidator) ValidateToken(ctx context.Context, tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, v.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("invalid token format or signature: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid (expired, inactive, or signature mismatch)")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	var validationOptions []jwt.ParserOption
	if v.config.ExpectedIssuer != "" {
		validationOptions = append(validationOptions, jwt.WithIssuer(v.config.ExpectedIssuer))
	}
	if v.config.ExpectedAudience != "" {
		validationOptions = append(validationOptions, jwt.WithAudience(v.config.ExpectedAudience))
	}
	if v.config.ClockSkew > 0 {
		validationOptions = append(validationOptions, jwt.WithLeeway(v.config.ClockSkew))
	}

	if err := jwt.NewValidator(validationOptions...).Validate(claims); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	return &jwtPrincipal{claims: claims}, nil
}

// keyFunc fetches the public key identified by the token's 'kid' header
// from the JWKS cache, refreshing once on a cache miss in case the key
// is newly rotated.
func (v *JWKSTokenValidator) keyFunc(token *jwt.Token) (interface{}, error) {
	keySet, err := v.jwkCache.Get(context.Background(), v.config.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("get JWK set from cache for %s: %w", v.config.JWKSURL, err)
	}

	kid, ok := token.Header["kid"].(string)
	if !ok {
		return nil, fmt.Errorf("JWT header missing 'kid' field")
	}

	key, found := keySet.LookupKeyID(kid)
	if !found {
		if _, err := v.jwkCache.Refresh(context.Background(), v.config.JWKSURL); err != nil {
			return nil, fmt.Errorf("key with kid %q not found in JWKS at %s (refresh attempted)", kid, v.config.JWKSURL)
		}
		keySet, err = v.jwkCache.Get(context.Background(), v.config.JWKSURL)
		if err != nil {
			return nil, fmt.Errorf("get JWK set from cache after refresh for %s: %w", v.config.JWKSURL, err)
		}
		key, found = keySet.LookupKeyID(kid)
		if !found {
			return nil, fmt.Errorf("key with kid %q not found in JWKS at %s (even after refresh)", kid, v.config.JWKSURL)
		}
	}

	var rawKey interface{}
	if err := key.Raw(&rawKey); err != nil {
		return nil, fmt.Errorf("get raw public key material for kid %q: %w", kid, err)
	}
	return rawKey, nil
}

var _ TokenValidator = (*JWKSTokenValidator)(nil)

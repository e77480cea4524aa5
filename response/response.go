// Package response implements the dispatcher's result type: a single
// Response that can carry a pre-serialized cached payload, a freshly
// built result, an error, or stand in for a notification's absent body,
// while still marshaling to a correct JSON-RPC 2.0 envelope regardless
// of which.
package response

import (
	"encoding/json"
	"sync/atomic"

	"github.com/localrivet/mcpcore/protocol"
)

// CachedPayload is a pre-serialized JSON-RPC result shared across every
// request that hits the same cached endpoint (initialize, tools/list,
// resources/list). Building one is the only place that pays marshaling
// cost; every Response that wraps it reuses the same []byte. hits counts
// how many times those bytes have been read out (by MarshalJSON or
// ToJSONRPC), for diagnostics only.
type CachedPayload struct {
	raw  json.RawMessage
	hits atomic.Int64
}

// NewCachedPayload marshals result once and returns a CachedPayload
// wrapping the encoded bytes.
func NewCachedPayload(result interface{}) (*CachedPayload, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &CachedPayload{raw: raw}, nil
}

// Hits returns how many times this payload has been read out by
// MarshalJSON or ToJSONRPC so far.
func (p *CachedPayload) Hits() int64 {
	return p.hits.Load()
}

func (p *CachedPayload) acquire() json.RawMessage {
	p.hits.Add(1)
	return p.raw
}

// kind distinguishes the four ways a Response can be built. The zero
// value is never used directly; every constructor sets one explicitly.
type kind int

const (
	kindCached kind = iota
	kindResult
	kindError
	kindNotification
)

// Response is the result of dispatching one JSON-RPC request. It
// implements json.Marshaler so it can be written directly to a
// transport; for structured inspection in tests, use ToJSONRPC.
type Response struct {
	id      json.RawMessage
	kind    kind
	cached  *CachedPayload
	result  interface{}
	errCode protocol.ErrorCode
	errMsg  string
	errData interface{}
}

// Cached builds a Response that serializes cached's bytes verbatim as
// the "result" field, with no copy or re-marshaling.
func Cached(id json.RawMessage, cached *CachedPayload) Response {
	return Response{id: id, kind: kindCached, cached: cached}
}

// Result builds a Response wrapping a freshly computed result value.
func Result(id json.RawMessage, result interface{}) Response {
	return Response{id: id, kind: kindResult, result: result}
}

// Error builds a Response carrying a JSON-RPC error object.
func Error(id json.RawMessage, code protocol.ErrorCode, message string, data interface{}) Response {
	return Response{id: id, kind: kindError, errCode: code, errMsg: message, errData: data}
}

// Notification builds the sentinel Response for a notification method
// (the dispatcher returns it for notifications/* whatever the request's
// id) — it carries no id and IsNotification reports true.
func Notification() Response {
	return Response{kind: kindNotification}
}

// IsNotification reports whether this Response stands in for a
// notification, which has no JSON-RPC response body at all.
func (r Response) IsNotification() bool {
	return r.kind == kindNotification
}

// envelope mirrors the wire shape of a JSON-RPC 2.0 response. MarshalJSON
// encodes every variant through it; the omitempty tags drop id, result
// and error when they are unset.
type envelope struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      json.RawMessage        `json:"id,omitempty"`
	Result  interface{}            `json:"result,omitempty"`
	Error   *protocol.ErrorPayload `json:"error,omitempty"`
}

// MarshalJSON writes the JSON-RPC envelope for r. For a cached Response
// this embeds the cached bytes directly as the result field without
// re-serializing them.
func (r Response) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case kindCached:
		return json.Marshal(envelope{
			JSONRPC: protocol.JSONRPCVersion,
			ID:      r.id,
			Result:  r.cached.acquire(),
		})
	case kindResult:
		return json.Marshal(envelope{
			JSONRPC: protocol.JSONRPCVersion,
			ID:      r.id,
			Result:  r.result,
		})
	case kindError:
		return json.Marshal(envelope{
			JSONRPC: protocol.JSONRPCVersion,
			ID:      r.id,
			Error: &protocol.ErrorPayload{
				Code:    r.errCode,
				Message: r.errMsg,
				Data:    r.errData,
			},
		})
	default: // kindNotification
		return json.Marshal(envelope{JSONRPC: protocol.JSONRPCVersion})
	}
}

// JSONRPCResponse is the fully structured, inspectable form of a
// Response — the shape tests and non-streaming transports decode
// against. Building one from a cached Response parses the cached bytes
// back into a value; production code should prefer marshaling Response
// directly to avoid that cost.
type JSONRPCResponse struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      json.RawMessage        `json:"id,omitempty"`
	Result  interface{}            `json:"result,omitempty"`
	Error   *protocol.ErrorPayload `json:"error,omitempty"`
}

// ToJSONRPC converts r into its structured form for inspection.
func (r Response) ToJSONRPC() (JSONRPCResponse, error) {
	out := JSONRPCResponse{JSONRPC: protocol.JSONRPCVersion, ID: r.id}
	switch r.kind {
	case kindCached:
		var result interface{}
		if err := json.Unmarshal(r.cached.acquire(), &result); err != nil {
			return JSONRPCResponse{}, err
		}
		out.Result = result
	case kindResult:
		out.Result = r.result
	case kindError:
		out.Error = &protocol.ErrorPayload{Code: r.errCode, Message: r.errMsg, Data: r.errData}
	}
	return out, nil
}

package response_test

import (
	"encoding/json"
	"testing"

	"github.com/localrivet/mcpcore/protocol"
	"github.com/localrivet/mcpcore/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedResponseMarshalsVerbatim(t *testing.T) {
	payload, err := response.NewCachedPayload(map[string]string{"status": "ok"})
	require.NoError(t, err)

	r1 := response.Cached(json.RawMessage(`1`), payload)
	r2 := response.Cached(json.RawMessage(`2`), payload)

	b1, err := json.Marshal(r1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":{"status":"ok"}}`, string(b1))

	b2, err := json.Marshal(r2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":2,"result":{"status":"ok"}}`, string(b2))

	assert.Equal(t, int64(2), payload.Hits())
}

func TestResultResponseMarshal(t *testing.T) {
	r := response.Result(json.RawMessage(`"abc"`), map[string]int{"count": 3})
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":"abc","result":{"count":3}}`, string(b))
}

func TestErrorResponseMarshal(t *testing.T) {
	r := response.Error(json.RawMessage(`5`), protocol.CodeMethodNotFound, "Method not found: bogus", nil)
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":5,"error":{"code":-32601,"message":"Method not found: bogus"}}`, string(b))
}

func TestNotificationResponseMarshalsBareEnvelope(t *testing.T) {
	r := response.Notification()
	assert.True(t, r.IsNotification())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0"}`, string(b))
}

func TestToJSONRPCStructuredInspection(t *testing.T) {
	payload, err := response.NewCachedPayload([]string{"a", "b"})
	require.NoError(t, err)

	r := response.Cached(json.RawMessage(`1`), payload)
	structured, err := r.ToJSONRPC()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b"}, structured.Result)
	assert.Nil(t, structured.Error)
}

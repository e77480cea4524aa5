package registry_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/localrivet/mcpcore/protocol"
	"github.com/localrivet/mcpcore/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookupTool(t *testing.T) {
	r := registry.New()
	r.RegisterTool("echo", func(ctx context.Context, arguments json.RawMessage, rpcContext json.RawMessage) (protocol.ToolResult, error) {
		return protocol.TextResult(string(arguments)), nil
	})

	h, ok := r.ToolHandler("echo")
	require.True(t, ok)

	result, err := h(context.Background(), json.RawMessage(`{"msg":"hi"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, `{"msg":"hi"}`, result.Content[0].Text)
}

func TestLookupMissingToolReturnsFalse(t *testing.T) {
	r := registry.New()
	_, ok := r.ToolHandler("missing")
	assert.False(t, ok)
}

func TestRegisterAndLookupResource(t *testing.T) {
	r := registry.New()
	r.RegisterResource("forecast", func(ctx context.Context, uri string, rpcContext json.RawMessage) (protocol.ResourceContent, error) {
		return protocol.ResourceContent{URI: uri, Text: "sunny"}, nil
	})

	h, ok := r.ResourceHandler("forecast")
	require.True(t, ok)

	content, err := h(context.Background(), "weather://forecast", nil)
	require.NoError(t, err)
	assert.Equal(t, "sunny", content.Text)
}

func TestRpcContextIsThreadedThrough(t *testing.T) {
	r := registry.New()
	var seen json.RawMessage
	r.RegisterTool("whoami", func(ctx context.Context, arguments json.RawMessage, rpcContext json.RawMessage) (protocol.ToolResult, error) {
		seen = rpcContext
		return protocol.TextResult("ok"), nil
	})

	h, _ := r.ToolHandler("whoami")
	_, err := h(context.Background(), nil, json.RawMessage(`{"sub":"user-1"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sub":"user-1"}`, string(seen))
}

func TestRegistryIsSafeForConcurrentRegistration(t *testing.T) {
	r := registry.New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.RegisterTool("tool", func(ctx context.Context, arguments json.RawMessage, rpcContext json.RawMessage) (protocol.ToolResult, error) {
				return protocol.TextResult("ok"), nil
			})
		}(i)
	}
	wg.Wait()

	_, ok := r.ToolHandler("tool")
	assert.True(t, ok)
}

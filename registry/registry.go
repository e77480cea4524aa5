// Package registry maps tool and resource names to the asynchronous
// functions that implement them, threading a per-dispatch opaque
// context value through every call. The dispatcher owns one Registry
// and consults it on every tools/call and resources/read.
package registry

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/localrivet/mcpcore/protocol"
)

// ToolHandler implements one tool. arguments is the raw "arguments"
// value from the request; rpcContext is the opaque JSON value the
// dispatcher was invoked with, typically identity claims attached by a
// transport. Handlers that don't need it ignore it.
type ToolHandler func(ctx context.Context, arguments json.RawMessage, rpcContext json.RawMessage) (protocol.ToolResult, error)

// ResourceHandler implements one resource. uri is the resolved resource
// URI being read; rpcContext is the same opaque value ToolHandler receives.
type ResourceHandler func(ctx context.Context, uri string, rpcContext json.RawMessage) (protocol.ResourceContent, error)

// Registry holds name-keyed tool and resource handlers behind a
// read-write lock, so handlers can be registered at startup and looked
// up concurrently by many in-flight dispatches.
type Registry struct {
	mu        sync.RWMutex
	tools     map[string]ToolHandler
	resources map[string]ResourceHandler
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		tools:     make(map[string]ToolHandler),
		resources: make(map[string]ResourceHandler),
	}
}

// RegisterTool attaches handler under name, replacing any existing
// handler registered under the same name.
func (r *Registry) RegisterTool(name string, handler ToolHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = handler
}

// RegisterResource attaches handler under name, replacing any existing
// handler registered under the same name.
func (r *Registry) RegisterResource(name string, handler ResourceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[name] = handler
}

// ToolHandler looks up the handler registered for name.
func (r *Registry) ToolHandler(name string) (ToolHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.tools[name]
	return h, ok
}

// ResourceHandler looks up the handler registered for name.
func (r *Registry) ResourceHandler(name string) (ResourceHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.resources[name]
	return h, ok
}

package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/localrivet/mcpcore/protocol"
	"github.com/localrivet/mcpcore/response"
	"github.com/localrivet/mcpcore/validator"
)

// Dispatch routes a single parsed request to its handler and returns the
// Response to send back. rpcContext is an opaque JSON value the caller
// (a transport) attaches to this dispatch, typically authenticated
// identity claims; Dispatch never inspects it itself, only threads it
// through to handlers.
func (d *Dispatcher) Dispatch(ctx context.Context, req *protocol.Request, rpcContext json.RawMessage) response.Response {
	if req.JSONRPC != protocol.JSONRPCVersion {
		return response.Error(req.ID, protocol.CodeInvalidRequest, "Invalid Request: jsonrpc must be \"2.0\"", nil)
	}

	switch req.Method {
	case protocol.MethodInitialize:
		d.logInitialize(req.Params)
		return response.Cached(req.ID, d.initializeCached)

	case protocol.MethodPing:
		return response.Result(req.ID, map[string]interface{}{})

	case protocol.MethodNotificationsInitialized, protocol.MethodNotificationsCancelled:
		return response.Notification()

	case protocol.MethodToolsList:
		return response.Cached(req.ID, d.toolsListCached)

	case protocol.MethodToolsCall:
		return d.dispatchToolsCall(ctx, req, rpcContext)

	case protocol.MethodResourcesList:
		return response.Cached(req.ID, d.resourcesListCached)

	case protocol.MethodResourcesRead:
		return d.dispatchResourcesRead(ctx, req, rpcContext)

	default:
		return response.Error(req.ID, protocol.CodeMethodNotFound, "Method not found: "+req.Method, nil)
	}
}

func (d *Dispatcher) logInitialize(params json.RawMessage) {
	if len(params) == 0 {
		return
	}
	var peek struct {
		ProtocolVersion string `json:"protocolVersion"`
		ClientInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"clientInfo"`
	}
	if err := json.Unmarshal(params, &peek); err != nil {
		return
	}
	d.logger.Info("initialize from client=%s version=%s protocolVersion=%s", peek.ClientInfo.Name, peek.ClientInfo.Version, peek.ProtocolVersion)
}

func (d *Dispatcher) dispatchToolsCall(ctx context.Context, req *protocol.Request, rpcContext json.RawMessage) response.Response {
	if len(req.Params) == 0 {
		return response.Error(req.ID, protocol.CodeInvalidParams, "Invalid params: missing params", nil)
	}

	var params protocol.ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return response.Error(req.ID, protocol.CodeInvalidParams, "Invalid params: "+err.Error(), nil)
	}
	if params.Name == "" {
		return response.Error(req.ID, protocol.CodeInvalidParams, "Invalid params: missing name", nil)
	}

	entry, ok := d.tools.Get(params.Name)
	if !ok {
		return response.Error(req.ID, protocol.CodeMethodNotFound, "Unknown tool: "+params.Name, nil)
	}

	arguments := normalizeToEmptyObject(params.Arguments)

	if err := validator.Validate(entry.Meta, arguments); err != nil {
		return response.Error(req.ID, protocol.CodeInvalidParams, err.Error(), nil)
	}

	handler, ok := d.handlers.ToolHandler(params.Name)
	if !ok {
		return response.Error(req.ID, protocol.CodeInternalError, "no handler for tool: "+params.Name, nil)
	}

	result, err := handler(ctx, arguments, rpcContext)
	if err != nil {
		result = protocol.ErrorResult(err.Error())
	}

	return response.Result(req.ID, result)
}

func (d *Dispatcher) dispatchResourcesRead(ctx context.Context, req *protocol.Request, rpcContext json.RawMessage) response.Response {
	var params protocol.ResourceReadParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return response.Error(req.ID, protocol.CodeInvalidParams, "Invalid params: "+err.Error(), nil)
		}
	}
	if params.Name == "" && params.URI == "" {
		return response.Error(req.ID, protocol.CodeInvalidParams, "Invalid params: resource not found", nil)
	}

	resource, ok := d.resolveResource(params)
	if !ok {
		return response.Error(req.ID, protocol.CodeInvalidParams, "resource not found", nil)
	}

	if handler, ok := d.handlers.ResourceHandler(resource.Name); ok {
		content, err := handler(ctx, resource.URI, rpcContext)
		if err != nil {
			return response.Error(req.ID, protocol.CodeInternalError, err.Error(), nil)
		}
		return response.Result(req.ID, struct {
			Contents []protocol.ResourceContent `json:"contents"`
		}{Contents: []protocol.ResourceContent{content}})
	}

	return response.Result(req.ID, struct {
		Contents []protocol.ResourceContent `json:"contents"`
	}{Contents: []protocol.ResourceContent{{
		URI:      resource.URI,
		MimeType: resource.MimeType,
		Text:     "",
	}}})
}

func (d *Dispatcher) resolveResource(params protocol.ResourceReadParams) (protocol.Resource, bool) {
	if params.Name != "" {
		if r, ok := d.resources.GetByName(params.Name); ok {
			return r, ok
		}
	}
	if params.URI != "" {
		if r, ok := d.resources.GetByURI(params.URI); ok {
			return r, ok
		}
	}
	return protocol.Resource{}, false
}

func normalizeToEmptyObject(args json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage(`{}`)
	}
	return args
}

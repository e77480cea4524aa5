package protocol

import "encoding/json"

// ClientInfo identifies the connecting client, reported in initialize params.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeParams is the params payload of an initialize request. The
// dispatcher reads ClientInfo and ProtocolVersion only to log them;
// Capabilities is ignored and nothing is negotiated — the response
// always advertises this module's ProtocolVersion.
type InitializeParams struct {
	ProtocolVersion string      `json:"protocolVersion,omitempty"`
	Capabilities    interface{} `json:"capabilities,omitempty"`
	ClientInfo      *ClientInfo `json:"clientInfo,omitempty"`
}

// ServerInfo identifies this server in the initialize result.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCapability and ResourcesCapability describe the fixed capability
// surface this module advertises: no list-change notifications, no
// resource subscriptions.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

type ResourcesCapability struct {
	Subscribe   bool `json:"subscribe"`
	ListChanged bool `json:"listChanged"`
}

type Capabilities struct {
	Tools     ToolsCapability     `json:"tools"`
	Resources ResourcesCapability `json:"resources"`
}

// InitializeResult is the result payload of an initialize request.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// ToolCallParams is the params payload of a tools/call request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ResourceReadParams is the params payload of a resources/read request.
type ResourceReadParams struct {
	Name string `json:"name,omitempty"`
	URI  string `json:"uri,omitempty"`
}

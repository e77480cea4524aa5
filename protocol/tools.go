package protocol

import "encoding/json"

// Tool is a tool definition as advertised to clients via tools/list and
// looked up by name on tools/call. InputSchema is round-tripped verbatim;
// the module never interprets more of it than schema.Metadata extracts.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// ContentBlock is a single content item in a tool result. Only the
// "text" kind is produced by this module; the
// field exists so handlers and clients can agree on richer kinds later
// without a wire format change.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// TextBlock builds a ContentBlock of kind "text".
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// ToolResult is the result of a tools/call, returned as the RPC "result"
// on success even when the tool itself reports a logical failure
// (IsError set) — only protocol-level failures become RPC errors.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// TextResult builds a successful single-text-block ToolResult.
func TextResult(text string) ToolResult {
	return ToolResult{Content: []ContentBlock{TextBlock(text)}}
}

// ErrorResult builds a logical-failure ToolResult (isError=true). This is
// what a handler's implementation error is downgraded to before it
// reaches the client — see the dispatcher's tools/call step.
func ErrorResult(text string) ToolResult {
	return ToolResult{Content: []ContentBlock{TextBlock(text)}, IsError: true}
}

package protocol

// Resource is a resource definition as advertised via resources/list and
// resolved by name or uri on resources/read.
type Resource struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URI         string `json:"uri"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceContent is a single entry of a resources/read result. Blob
// carries a base64-encoded opaque binary body; Text and Blob are
// mutually exclusive in practice but the module does not enforce that.
type ResourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

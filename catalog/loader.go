package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/localrivet/mcpcore/protocol"
	"github.com/mitchellh/mapstructure"
)

// LoadTools parses a JSON array of tool definitions, tolerating field
// values in forms weaker than their declared Go type (a number encoded
// as a string, for instance) the way gomcp's own argument decoder does.
func LoadTools(data []byte) ([]protocol.Tool, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse tools: %w", err)
	}

	tools := make([]protocol.Tool, 0, len(raw))
	for i, entry := range raw {
		var t struct {
			Name        string      `json:"name"`
			Description string      `json:"description"`
			InputSchema interface{} `json:"inputSchema"`
		}
		if err := decodeLenient(entry, &t); err != nil {
			return nil, fmt.Errorf("parse tools: entry %d: %w", i, err)
		}

		inputSchema, err := json.Marshal(t.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("parse tools: entry %d: encode inputSchema: %w", i, err)
		}
		if t.InputSchema == nil {
			inputSchema = nil
		}

		tools = append(tools, protocol.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: inputSchema,
		})
	}
	return tools, nil
}

// LoadResources parses a JSON array of resource definitions with the
// same lenient decoding LoadTools uses.
func LoadResources(data []byte) ([]protocol.Resource, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse resources: %w", err)
	}

	resources := make([]protocol.Resource, 0, len(raw))
	for i, entry := range raw {
		var r protocol.Resource
		if err := decodeLenient(entry, &r); err != nil {
			return nil, fmt.Errorf("parse resources: entry %d: %w", i, err)
		}
		resources = append(resources, r)
	}
	return resources, nil
}

func decodeLenient(input interface{}, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		ErrorUnused:      false,
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	return decoder.Decode(input)
}

// Package schema extracts the restricted subset of JSON Schema this
// module understands — required fields, oneOf requirement groups, and
// field dependencies — from a tool's opaque inputSchema. Everything else
// in the schema (type, properties, enum, format, ...) is ignored here
// and preserved only for round-tripping to MCP clients.
package schema

import "encoding/json"

// RequirementSet is one alternative in a oneOf group: a set of field
// names that must all be present together for the group to be satisfied.
type RequirementSet struct {
	Required []string
}

// Metadata is the compact, validation-relevant projection of a tool's
// inputSchema.
type Metadata struct {
	Required     []string
	OneOf        []RequirementSet
	Dependencies map[string][]string
}

// Parse extracts Metadata from a tool's inputSchema. Each of the three
// constructs (required, oneOf, dependencies) is parsed independently: a
// malformed or absent top-level key yields an empty result for that
// construct alone, it never discards the other two. A oneOf entry with
// no "required" array, or a dependencies entry whose value isn't an
// array of strings, is skipped rather than rejected — see SPEC_FULL.md
// ("Open Questions resolved") for why this leniency is a deliberate
// choice rather than a latent bug.
func Parse(inputSchema json.RawMessage) Metadata {
	var meta Metadata
	if len(inputSchema) == 0 {
		return meta
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(inputSchema, &fields); err != nil {
		return meta
	}

	if raw, ok := fields["required"]; ok {
		var required []string
		if json.Unmarshal(raw, &required) == nil {
			meta.Required = required
		}
	}

	if raw, ok := fields["oneOf"]; ok {
		var groups []map[string]json.RawMessage
		if json.Unmarshal(raw, &groups) == nil {
			for _, group := range groups {
				reqRaw, ok := group["required"]
				if !ok {
					continue
				}
				var required []string
				if json.Unmarshal(reqRaw, &required) != nil {
					continue
				}
				meta.OneOf = append(meta.OneOf, RequirementSet{Required: required})
			}
		}
	}

	if raw, ok := fields["dependencies"]; ok {
		var deps map[string]json.RawMessage
		if json.Unmarshal(raw, &deps) == nil {
			for field, depsRaw := range deps {
				var names []string
				if json.Unmarshal(depsRaw, &names) != nil {
					continue
				}
				if meta.Dependencies == nil {
					meta.Dependencies = make(map[string][]string, len(deps))
				}
				meta.Dependencies[field] = names
			}
		}
	}

	return meta
}

// Package validator checks a tool call's arguments against the
// schema.Metadata extracted from its inputSchema. Validation is
// presence-only: it never inspects a field's type or value, only whether
// the field key exists in the arguments object.
package validator

import (
	"encoding/json"
	"fmt"

	"github.com/localrivet/mcpcore/schema"
)

// Validate checks args (a JSON object, typically a tool call's raw
// arguments) against meta and returns the first failure encountered, in
// the order required, oneOf, dependencies. A nil or non-object args is
// treated as an empty object, so it passes only a schema with no required
// fields and no oneOf groups.
func Validate(meta schema.Metadata, args json.RawMessage) error {
	obj := asObject(args)

	for _, field := range meta.Required {
		if _, ok := obj[field]; !ok {
			return fmt.Errorf("missing required field %q", field)
		}
	}

	if len(meta.OneOf) > 0 {
		satisfied := false
		for _, set := range meta.OneOf {
			if allPresent(obj, set.Required) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return fmt.Errorf("arguments must satisfy oneOf requirements")
		}
	}

	for field, deps := range meta.Dependencies {
		if _, ok := obj[field]; !ok {
			continue
		}
		for _, dep := range deps {
			if _, ok := obj[dep]; !ok {
				return fmt.Errorf("field %q requires %q to also be present", field, dep)
			}
		}
	}

	return nil
}

func asObject(args json.RawMessage) map[string]json.RawMessage {
	if len(args) == 0 {
		return map[string]json.RawMessage{}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(args, &obj); err != nil {
		return map[string]json.RawMessage{}
	}
	return obj
}

func allPresent(obj map[string]json.RawMessage, fields []string) bool {
	for _, f := range fields {
		if _, ok := obj[f]; !ok {
			return false
		}
	}
	return true
}

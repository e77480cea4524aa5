package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/localrivet/mcpcore/schema"
	"github.com/stretchr/testify/assert"
)

func TestParseEmpty(t *testing.T) {
	meta := schema.Parse(nil)
	assert.Nil(t, meta.Required)
	assert.Nil(t, meta.OneOf)
	assert.Nil(t, meta.Dependencies)
}

func TestParseRequired(t *testing.T) {
	meta := schema.Parse(json.RawMessage(`{"type":"object","required":["name","amount"]}`))
	assert.Equal(t, []string{"name", "amount"}, meta.Required)
}

func TestParseOneOf(t *testing.T) {
	meta := schema.Parse(json.RawMessage(`{
		"oneOf": [
			{"required": ["email"]},
			{"required": ["phone"]}
		]
	}`))
	assert.Len(t, meta.OneOf, 2)
	assert.Equal(t, []string{"email"}, meta.OneOf[0].Required)
	assert.Equal(t, []string{"phone"}, meta.OneOf[1].Required)
}

func TestParseDependencies(t *testing.T) {
	meta := schema.Parse(json.RawMessage(`{
		"dependencies": {
			"creditCard": ["billingAddress", "cvv"]
		}
	}`))
	assert.Equal(t, []string{"billingAddress", "cvv"}, meta.Dependencies["creditCard"])
}

// A malformed oneOf must not discard a validly parsed required list.
func TestParseMalformedOneOfPreservesRequired(t *testing.T) {
	meta := schema.Parse(json.RawMessage(`{
		"required": ["name"],
		"oneOf": "not-an-array"
	}`))
	assert.Equal(t, []string{"name"}, meta.Required)
	assert.Nil(t, meta.OneOf)
}

// A malformed dependencies value must not discard a validly parsed oneOf.
func TestParseMalformedDependenciesPreservesOneOf(t *testing.T) {
	meta := schema.Parse(json.RawMessage(`{
		"oneOf": [{"required": ["a"]}],
		"dependencies": ["not", "a", "map"]
	}`))
	assert.Len(t, meta.OneOf, 1)
	assert.Nil(t, meta.Dependencies)
}

// A oneOf entry missing "required" is skipped, its siblings still parse.
func TestParseOneOfEntryWithoutRequiredIsSkipped(t *testing.T) {
	meta := schema.Parse(json.RawMessage(`{
		"oneOf": [
			{"type": "object"},
			{"required": ["phone"]}
		]
	}`))
	assert.Len(t, meta.OneOf, 1)
	assert.Equal(t, []string{"phone"}, meta.OneOf[0].Required)
}

// A dependencies entry whose value isn't a string array is skipped, its
// siblings still parse.
func TestParseDependenciesEntryWithBadValueIsSkipped(t *testing.T) {
	meta := schema.Parse(json.RawMessage(`{
		"dependencies": {
			"good": ["x"],
			"bad": "not-an-array"
		}
	}`))
	assert.Equal(t, []string{"x"}, meta.Dependencies["good"])
	_, ok := meta.Dependencies["bad"]
	assert.False(t, ok)
}

func TestParseInvalidJSON(t *testing.T) {
	meta := schema.Parse(json.RawMessage(`{not json`))
	assert.Nil(t, meta.Required)
}

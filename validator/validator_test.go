package validator_test

import (
	"encoding/json"
	"testing"

	"github.com/localrivet/mcpcore/schema"
	"github.com/localrivet/mcpcore/validator"
	"github.com/stretchr/testify/assert"
)

func parse(t *testing.T, inputSchema string) schema.Metadata {
	t.Helper()
	return schema.Parse(json.RawMessage(inputSchema))
}

func TestValidateRequiredPresent(t *testing.T) {
	meta := parse(t, `{"type":"object","required":["name"]}`)
	err := validator.Validate(meta, json.RawMessage(`{"name":"hello"}`))
	assert.NoError(t, err)
}

func TestValidateRequiredMissing(t *testing.T) {
	meta := parse(t, `{"type":"object","required":["name"]}`)
	err := validator.Validate(meta, json.RawMessage(`{}`))
	assert.ErrorContains(t, err, "missing required field")
}

func TestValidateOneOfMatch(t *testing.T) {
	meta := parse(t, `{"oneOf":[{"required":["phone"]},{"required":["email"]}]}`)
	err := validator.Validate(meta, json.RawMessage(`{"phone":"+1555"}`))
	assert.NoError(t, err)
}

func TestValidateOneOfNoneMatch(t *testing.T) {
	meta := parse(t, `{"oneOf":[{"required":["phone"]},{"required":["email"]}]}`)
	err := validator.Validate(meta, json.RawMessage(`{}`))
	assert.ErrorContains(t, err, "oneOf")
}

func TestValidateDependenciesSatisfied(t *testing.T) {
	meta := parse(t, `{"dependencies":{"geoLat":["geoLon"]}}`)
	err := validator.Validate(meta, json.RawMessage(`{"geoLat":1,"geoLon":2}`))
	assert.NoError(t, err)
}

func TestValidateDependenciesMissing(t *testing.T) {
	meta := parse(t, `{"dependencies":{"geoLat":["geoLon"]}}`)
	err := validator.Validate(meta, json.RawMessage(`{"geoLat":1}`))
	assert.ErrorContains(t, err, "requires")
}

func TestValidateDependencyFieldAbsentIsFine(t *testing.T) {
	meta := parse(t, `{"dependencies":{"geoLat":["geoLon"]}}`)
	err := validator.Validate(meta, json.RawMessage(`{}`))
	assert.NoError(t, err)
}

func TestValidateCombinedRequiredAndOneOf(t *testing.T) {
	meta := parse(t, `{"required":["code"],"oneOf":[{"required":["phone","code"]},{"required":["email","code"]}]}`)

	err := validator.Validate(meta, json.RawMessage(`{"code":"123456","phone":"+1555"}`))
	assert.NoError(t, err)

	err = validator.Validate(meta, json.RawMessage(`{"phone":"+1555"}`))
	assert.Error(t, err)
}

func TestValidateNilArgsTreatedAsEmptyObject(t *testing.T) {
	meta := parse(t, `{}`)
	err := validator.Validate(meta, nil)
	assert.NoError(t, err)
}

func TestValidateFirstFailureIsRequiredBeforeOneOf(t *testing.T) {
	meta := parse(t, `{"required":["code"],"oneOf":[{"required":["phone"]}]}`)
	err := validator.Validate(meta, json.RawMessage(`{}`))
	assert.ErrorContains(t, err, "missing required field")
}

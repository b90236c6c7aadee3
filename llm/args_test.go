package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgumentsObject(t *testing.T) {
	args := parseArguments(json.RawMessage(`{"customer_id":"CUST0001","top_n":3}`))
	assert.Equal(t, "CUST0001", args["customer_id"])
	assert.Equal(t, float64(3), args["top_n"])
}

func TestParseArgumentsStringWrapped(t *testing.T) {
	args := parseArguments(json.RawMessage(`"{\"customer_id\":\"CUST0001\"}"`))
	assert.Equal(t, "CUST0001", args["customer_id"])
}

func TestParseArgumentsRepairsSingleQuotes(t *testing.T) {
	args := parseArguments(json.RawMessage(`{'customer_id': 'CUST0001'}`))
	assert.Equal(t, "CUST0001", args["customer_id"])
}

func TestParseArgumentsPlainString(t *testing.T) {
	args := parseArguments(json.RawMessage(`"CUST0001"`))
	assert.Equal(t, "CUST0001", args["value"])
}

func TestParseArgumentsEmpty(t *testing.T) {
	assert.Empty(t, parseArguments(nil))
	assert.Empty(t, parseArguments(json.RawMessage("")))
}

func TestEnsureInvocationID(t *testing.T) {
	assert.Equal(t, "call-7", ensureInvocationID("call-7"))

	minted := ensureInvocationID("")
	assert.True(t, strings.HasPrefix(minted, "call-"))
	assert.NotEqual(t, minted, ensureInvocationID(""))
}

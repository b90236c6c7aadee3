package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/finsight/framework"
)

func TestToLiteLLMMessages(t *testing.T) {
	conv := []framework.Message{
		framework.UserMessage("How much did CUST0001 spend?"),
		{
			Role: framework.RoleAssistant,
			Invocations: []framework.ToolInvocation{
				{ID: "call-1", Name: "get_total_spending", Arguments: map[string]interface{}{"customer_id": "CUST0001"}},
			},
		},
		framework.ToolResultMessage("call-1", "Customer CUST0001 total spending: $900.00"),
	}

	out := toLiteLLMMessages(conv)
	require.Len(t, out, 3)

	assert.Equal(t, "user", out[0].Role)
	assert.Equal(t, "How much did CUST0001 spend?", out[0].Content)

	require.Len(t, out[1].ToolCalls, 1)
	assert.Equal(t, "call-1", out[1].ToolCalls[0].ID)
	assert.Equal(t, "function", out[1].ToolCalls[0].Type)
	assert.Equal(t, "get_total_spending", out[1].ToolCalls[0].Function.Name)
	assert.JSONEq(t, `{"customer_id":"CUST0001"}`, out[1].ToolCalls[0].Function.Arguments)

	assert.Equal(t, "tool", out[2].Role)
	assert.Equal(t, "call-1", out[2].ToolCallID)
	assert.Equal(t, "Customer CUST0001 total spending: $900.00", out[2].Content)
}

func TestToLiteLLMTools(t *testing.T) {
	defs := []framework.ToolDefinition{
		{
			Name:        "get_top_categories",
			Description: "Get the top N spending categories for a customer.",
			Parameters: []framework.ToolParameter{
				{Name: "customer_id", Type: "string", Description: "The customer ID", Required: true},
				{Name: "top_n", Type: "integer", Description: "How many categories", Default: 5},
			},
		},
	}

	out := toLiteLLMTools(defs)
	require.Len(t, out, 1)
	assert.Equal(t, "function", out[0].Type)
	assert.Equal(t, "get_top_categories", out[0].Function.Name)

	raw, err := json.Marshal(out[0].Function.Parameters)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"customer_id": {"type": "string", "description": "The customer ID"},
			"top_n": {"type": "integer", "description": "How many categories", "default": 5}
		},
		"required": ["customer_id"]
	}`, string(raw))
}

func TestToLiteLLMToolsEmpty(t *testing.T) {
	assert.Nil(t, toLiteLLMTools(nil))
}

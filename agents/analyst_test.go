package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/finsight/framework"
)

func TestAnalyzeCustomerQuestion(t *testing.T) {
	model := &stubModel{turns: []*framework.ModelTurn{{Text: "analysis done"}}}
	analyst := NewAnalyst(model, echoRegistry(t))
	analyst.Agent.Verbose = false

	result, err := analyst.AnalyzeCustomer(context.Background(), "CUST0007")
	require.NoError(t, err)
	assert.Equal(t, "analysis done", result.Answer)

	seed := model.lastMessages[0].Content
	assert.Contains(t, seed, "comprehensive financial analysis for CUST0007")
	assert.Contains(t, seed, "total income")
	assert.Contains(t, seed, "top 3 spending categories")
}

func TestCompareSpendingQuestion(t *testing.T) {
	model := &stubModel{turns: []*framework.ModelTurn{{Text: "Rent is higher"}}}
	analyst := NewAnalyst(model, echoRegistry(t))
	analyst.Agent.Verbose = false

	result, err := analyst.CompareSpending(context.Background(), "CUST0002", "Rent", "Dining")
	require.NoError(t, err)
	assert.Equal(t, "Rent is higher", result.Answer)
	assert.Contains(t, model.lastMessages[0].Content, "Compare CUST0002's spending on Rent vs Dining")
}

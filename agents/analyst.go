package agents

import (
	"context"
	"fmt"

	"github.com/lexcodex/finsight/framework"
)

// Analyst wraps an Agent with canned analysis flows. The flows are plain
// questions; the model decides which tools to call.
type Analyst struct {
	Agent *Agent
}

// NewAnalyst builds an analyst over a stock agent.
func NewAnalyst(model framework.ModelClient, tools *framework.Registry) *Analyst {
	return &Analyst{Agent: New(model, tools)}
}

// AnalyzeCustomer runs the standard three-part review of one customer:
// income, spending, and top categories.
func (a *Analyst) AnalyzeCustomer(ctx context.Context, customerID string) (*Result, error) {
	question := fmt.Sprintf(`Provide a comprehensive financial analysis for %s:
1. What is their total income?
2. What is their total spending?
3. What are their top 3 spending categories?
`, customerID)
	return a.Agent.Run(ctx, question)
}

// CompareSpending asks which of two categories the customer spends more on.
func (a *Analyst) CompareSpending(ctx context.Context, customerID, category1, category2 string) (*Result, error) {
	question := fmt.Sprintf("Compare %s's spending on %s vs %s. Which is higher and by how much?", customerID, category1, category2)
	return a.Agent.Run(ctx, question)
}

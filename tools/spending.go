package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexcodex/finsight/bank"
	"github.com/lexcodex/finsight/framework"
)

type customerArgs struct {
	CustomerID string `mapstructure:"customer_id"`
}

// TotalSpendingTool sums a customer's debit transactions.
type TotalSpendingTool struct {
	Store bank.Store
}

func (t *TotalSpendingTool) Name() string { return "get_total_spending" }
func (t *TotalSpendingTool) Description() string {
	return "Get the total spending (debit transactions) for a specific customer. Use this when asked how much a customer spent in total."
}
func (t *TotalSpendingTool) Parameters() []framework.ToolParameter {
	return []framework.ToolParameter{
		{Name: "customer_id", Type: "string", Description: "The customer ID", Required: true},
	}
}
func (t *TotalSpendingTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	var req customerArgs
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}
	if req.CustomerID == "" {
		return "", errCustomerRequired
	}
	total, err := t.Store.TotalSpending(ctx, req.CustomerID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Customer %s total spending: %s", req.CustomerID, dollars(total)), nil
}

// TotalIncomeTool sums a customer's credit transactions.
type TotalIncomeTool struct {
	Store bank.Store
}

func (t *TotalIncomeTool) Name() string { return "get_total_income" }
func (t *TotalIncomeTool) Description() string {
	return "Get the total income (credit transactions) for a specific customer. Use this when asked how much money a customer received."
}
func (t *TotalIncomeTool) Parameters() []framework.ToolParameter {
	return []framework.ToolParameter{
		{Name: "customer_id", Type: "string", Description: "The customer ID", Required: true},
	}
}
func (t *TotalIncomeTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	var req customerArgs
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}
	if req.CustomerID == "" {
		return "", errCustomerRequired
	}
	total, err := t.Store.TotalIncome(ctx, req.CustomerID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Customer %s total income: %s", req.CustomerID, dollars(total)), nil
}

// SpendingByCategoryTool sums a customer's debits in one category.
type SpendingByCategoryTool struct {
	Store bank.Store
}

func (t *SpendingByCategoryTool) Name() string { return "get_spending_by_category" }
func (t *SpendingByCategoryTool) Description() string {
	return "Get spending for a specific category for a customer. Categories include: Groceries, Rent, EMI, Entertainment, Shopping, Utilities, Healthcare, Travel, Insurance, Transfers_Out, Cash_Withdrawal. Use this when asked about spending in a specific category."
}
func (t *SpendingByCategoryTool) Parameters() []framework.ToolParameter {
	return []framework.ToolParameter{
		{Name: "customer_id", Type: "string", Description: "The customer ID", Required: true},
		{Name: "category", Type: "string", Description: "The spending category, e.g. Groceries", Required: true},
	}
}
func (t *SpendingByCategoryTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	var req struct {
		CustomerID string `mapstructure:"customer_id"`
		Category   string `mapstructure:"category"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}
	if req.CustomerID == "" {
		return "", errCustomerRequired
	}
	if req.Category == "" {
		return "", fmt.Errorf("category is required")
	}
	total, count, err := t.Store.SpendingByCategory(ctx, req.CustomerID, req.Category)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Customer %s spent %s on %s across %d transactions",
		req.CustomerID, dollars(total), req.Category, count), nil
}

// TopCategoriesTool ranks a customer's spending categories by total amount.
type TopCategoriesTool struct {
	Store bank.Store
}

func (t *TopCategoriesTool) Name() string { return "top_spending_categories" }
func (t *TopCategoriesTool) Description() string {
	return "Get the top N spending categories for a customer, ranked by total amount. Use this when asked where a customer spends the most money or about their biggest expense categories."
}
func (t *TopCategoriesTool) Parameters() []framework.ToolParameter {
	return []framework.ToolParameter{
		{Name: "customer_id", Type: "string", Description: "The customer ID", Required: true},
		{Name: "top_n", Type: "integer", Description: "Number of top categories to return", Required: false, Default: 5},
	}
}
func (t *TopCategoriesTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	req := struct {
		CustomerID string `mapstructure:"customer_id"`
		TopN       int    `mapstructure:"top_n"`
	}{TopN: 5}
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}
	if req.CustomerID == "" {
		return "", errCustomerRequired
	}
	if req.TopN <= 0 {
		req.TopN = 5
	}
	ranked, err := t.Store.TopCategories(ctx, req.CustomerID, req.TopN)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Top %d spending categories for %s:\n", req.TopN, req.CustomerID)
	for i, ct := range ranked {
		fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, ct.Category, dollars(ct.Total))
	}
	return b.String(), nil
}

// SpendingInRangeTool sums a customer's debits between two dates, inclusive.
type SpendingInRangeTool struct {
	Store bank.Store
}

func (t *SpendingInRangeTool) Name() string { return "spending_in_date_range" }
func (t *SpendingInRangeTool) Description() string {
	return "Get total spending for a customer within a specific date range. Use this when asked about spending during a particular time period."
}
func (t *SpendingInRangeTool) Parameters() []framework.ToolParameter {
	return []framework.ToolParameter{
		{Name: "customer_id", Type: "string", Description: "The customer ID", Required: true},
		{Name: "start_date", Type: "string", Description: "Start date in YYYY-MM-DD format", Required: true},
		{Name: "end_date", Type: "string", Description: "End date in YYYY-MM-DD format", Required: true},
	}
}
func (t *SpendingInRangeTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	var req struct {
		CustomerID string `mapstructure:"customer_id"`
		StartDate  string `mapstructure:"start_date"`
		EndDate    string `mapstructure:"end_date"`
	}
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}
	if req.CustomerID == "" {
		return "", errCustomerRequired
	}
	if err := checkDate("start_date", req.StartDate); err != nil {
		return "", err
	}
	if err := checkDate("end_date", req.EndDate); err != nil {
		return "", err
	}
	total, count, err := t.Store.SpendingInRange(ctx, req.CustomerID, req.StartDate, req.EndDate)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Customer %s spent %s between %s and %s (%d transactions)",
		req.CustomerID, dollars(total), req.StartDate, req.EndDate, count), nil
}

package tools

import (
	"context"
	"strings"

	"github.com/lexcodex/finsight/bank"
	"github.com/lexcodex/finsight/framework"
)

// ListCustomersTool lists every customer id present in the dataset.
type ListCustomersTool struct {
	Store bank.Store
}

func (t *ListCustomersTool) Name() string { return "list_customers" }
func (t *ListCustomersTool) Description() string {
	return "List all customer IDs in the transaction data."
}
func (t *ListCustomersTool) Parameters() []framework.ToolParameter { return nil }
func (t *ListCustomersTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	customers, err := t.Store.Customers(ctx)
	if err != nil {
		return "", err
	}
	return "Available customers: " + strings.Join(customers, ", "), nil
}

// ListCategoriesTool lists every spending category present in the dataset.
type ListCategoriesTool struct {
	Store bank.Store
}

func (t *ListCategoriesTool) Name() string { return "list_categories" }
func (t *ListCategoriesTool) Description() string {
	return "List all available spending categories in the transaction data."
}
func (t *ListCategoriesTool) Parameters() []framework.ToolParameter { return nil }
func (t *ListCategoriesTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	categories, err := t.Store.Categories(ctx)
	if err != nil {
		return "", err
	}
	return "Available categories: " + strings.Join(categories, ", "), nil
}

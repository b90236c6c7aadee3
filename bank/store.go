package bank

import "context"

// CategoryTotal is one category's summed debit amount.
type CategoryTotal struct {
	Category string
	Total    float64
}

// Store answers the aggregate queries the agent's tools need. All reads;
// nothing mutates the dataset after construction, so a Store is safe to share
// across concurrent agent runs. Debits (DR) count as spending, credits (CR)
// as income. An unknown customer is not an error: totals come back zero and
// listings empty.
type Store interface {
	// TotalSpending sums debit amounts for one customer.
	TotalSpending(ctx context.Context, customerID string) (float64, error)
	// TotalIncome sums credit amounts for one customer.
	TotalIncome(ctx context.Context, customerID string) (float64, error)
	// SpendingByCategory sums debits for one customer in one category
	// (matched case-insensitively) and reports the matching row count.
	SpendingByCategory(ctx context.Context, customerID, category string) (float64, int, error)
	// TopCategories ranks a customer's debit categories by total, descending,
	// ties broken by category name, at most n entries.
	TopCategories(ctx context.Context, customerID string, n int) ([]CategoryTotal, error)
	// SpendingInRange sums debits with start <= date <= end (YYYY-MM-DD,
	// inclusive) and reports the matching row count.
	SpendingInRange(ctx context.Context, customerID, start, end string) (float64, int, error)
	// Customers lists distinct customer ids, ascending.
	Customers(ctx context.Context) ([]string, error)
	// Categories lists distinct transaction categories, ascending.
	Categories(ctx context.Context) ([]string, error)
}

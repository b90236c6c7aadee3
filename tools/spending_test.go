package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/finsight/bank"
)

func testStore() bank.Store {
	return bank.NewMemoryStore([]bank.Transaction{
		{CustomerID: "CUST0001", Indicator: "CR", Date: "2025-07-01", Amount: 2000, Mode: "NEFT", Category: "Salary"},
		{CustomerID: "CUST0001", Indicator: "DR", Date: "2025-07-03", Amount: 100, Mode: "UPI", Category: "Groceries"},
		{CustomerID: "CUST0001", Indicator: "DR", Date: "2025-07-05", Amount: 500, Mode: "NEFT", Category: "Rent"},
		{CustomerID: "CUST0001", Indicator: "DR", Date: "2025-07-07", Amount: 300, Mode: "AUTO_DEBIT", Category: "EMI"},
		{CustomerID: "CUST0002", Indicator: "DR", Date: "2025-07-04", Amount: 1250.5, Mode: "CARD", Category: "Travel"},
	})
}

// TestTotalSpendingFormat checks the exact summary string and dollar formatting.
func TestTotalSpendingFormat(t *testing.T) {
	tool := &TotalSpendingTool{Store: testStore()}

	out, err := tool.Execute(context.Background(), map[string]interface{}{"customer_id": "CUST0001"})
	require.NoError(t, err)
	assert.Equal(t, "Customer CUST0001 total spending: $900.00", out)

	out, err = tool.Execute(context.Background(), map[string]interface{}{"customer_id": "CUST0002"})
	require.NoError(t, err)
	assert.Equal(t, "Customer CUST0002 total spending: $1,250.50", out)
}

// TestTotalIncomeFormat checks the income summary string.
func TestTotalIncomeFormat(t *testing.T) {
	tool := &TotalIncomeTool{Store: testStore()}

	out, err := tool.Execute(context.Background(), map[string]interface{}{"customer_id": "CUST0001"})
	require.NoError(t, err)
	assert.Equal(t, "Customer CUST0001 total income: $2,000.00", out)
}

// TestTotalSpendingMissingCustomer rejects calls without a customer_id.
func TestTotalSpendingMissingCustomer(t *testing.T) {
	tool := &TotalSpendingTool{Store: testStore()}

	_, err := tool.Execute(context.Background(), map[string]interface{}{})
	assert.ErrorIs(t, err, errCustomerRequired)
}

// TestSpendingByCategoryFormat checks the per-category summary with count.
func TestSpendingByCategoryFormat(t *testing.T) {
	tool := &SpendingByCategoryTool{Store: testStore()}

	out, err := tool.Execute(context.Background(), map[string]interface{}{
		"customer_id": "CUST0001",
		"category":    "Groceries",
	})
	require.NoError(t, err)
	assert.Equal(t, "Customer CUST0001 spent $100.00 on Groceries across 1 transactions", out)
}

// TestTopCategoriesRanking covers the ranked list for top_n=2: Rent then EMI.
func TestTopCategoriesRanking(t *testing.T) {
	tool := &TopCategoriesTool{Store: testStore()}

	out, err := tool.Execute(context.Background(), map[string]interface{}{
		"customer_id": "CUST0001",
		"top_n":       2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Top 2 spending categories for CUST0001:\n  1. Rent: $500.00\n  2. EMI: $300.00\n", out)
}

// TestTopCategoriesWeakArguments accepts top_n delivered as a string or float.
func TestTopCategoriesWeakArguments(t *testing.T) {
	tool := &TopCategoriesTool{Store: testStore()}

	fromString, err := tool.Execute(context.Background(), map[string]interface{}{
		"customer_id": "CUST0001",
		"top_n":       "2",
	})
	require.NoError(t, err)

	fromFloat, err := tool.Execute(context.Background(), map[string]interface{}{
		"customer_id": "CUST0001",
		"top_n":       float64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, fromString, fromFloat)
	assert.Contains(t, fromString, "1. Rent: $500.00")
}

// TestTopCategoriesDefaultN falls back to 5 when top_n is absent.
func TestTopCategoriesDefaultN(t *testing.T) {
	tool := &TopCategoriesTool{Store: testStore()}

	out, err := tool.Execute(context.Background(), map[string]interface{}{"customer_id": "CUST0001"})
	require.NoError(t, err)
	assert.Contains(t, out, "Top 5 spending categories for CUST0001:")
	assert.Contains(t, out, "3. Groceries: $100.00")
}

// TestSpendingInRangeFormat checks the inclusive date-range summary.
func TestSpendingInRangeFormat(t *testing.T) {
	tool := &SpendingInRangeTool{Store: testStore()}

	out, err := tool.Execute(context.Background(), map[string]interface{}{
		"customer_id": "CUST0001",
		"start_date":  "2025-07-03",
		"end_date":    "2025-07-05",
	})
	require.NoError(t, err)
	assert.Equal(t, "Customer CUST0001 spent $600.00 between 2025-07-03 and 2025-07-05 (2 transactions)", out)
}

// TestSpendingInRangeRejectsBadDate surfaces malformed dates as tool errors.
func TestSpendingInRangeRejectsBadDate(t *testing.T) {
	tool := &SpendingInRangeTool{Store: testStore()}

	_, err := tool.Execute(context.Background(), map[string]interface{}{
		"customer_id": "CUST0001",
		"start_date":  "07/03/2025",
		"end_date":    "2025-07-05",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date must be YYYY-MM-DD")
}

// TestDollarsGrouping covers separator placement across magnitudes.
func TestDollarsGrouping(t *testing.T) {
	cases := map[float64]string{
		0:          "$0.00",
		12.5:       "$12.50",
		999.999:    "$1,000.00",
		1234.56:    "$1,234.56",
		1234567.89: "$1,234,567.89",
	}
	for in, want := range cases {
		assert.Equal(t, want, dollars(in), "dollars(%v)", in)
	}
}

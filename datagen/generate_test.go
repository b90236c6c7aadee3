package datagen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/finsight/bank"
)

func testOptions() Options {
	return Options{
		Customers: 3,
		Months:    2,
		Start:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Seed:      42,
	}
}

func generate(t *testing.T, opts Options) []bank.Transaction {
	t.Helper()
	gen, err := New(opts)
	require.NoError(t, err)
	txns := gen.Generate()
	require.NotEmpty(t, txns)
	return txns
}

func TestGenerateDeterministic(t *testing.T) {
	first := generate(t, testOptions())
	second := generate(t, testOptions())
	assert.Equal(t, first, second)

	opts := testOptions()
	opts.Seed = 43
	assert.NotEqual(t, first, generate(t, opts))
}

func TestGenerateShape(t *testing.T) {
	credits := make(map[string]bool)
	for _, c := range CreditCategories {
		credits[c] = true
	}
	debits := make(map[string]bool)
	for _, c := range DebitCategories {
		debits[c] = true
	}
	modes := make(map[string]bool)
	for _, m := range Modes {
		modes[m] = true
	}

	seen := make(map[string]bool)
	for _, txn := range generate(t, testOptions()) {
		seen[txn.CustomerID] = true
		assert.Regexp(t, `^CUST\d{4}$`, txn.CustomerID)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, txn.Date)
		assert.GreaterOrEqual(t, txn.Amount, 10.0)
		assert.True(t, modes[txn.Mode], "unexpected mode %q", txn.Mode)
		switch txn.Indicator {
		case bank.Credit:
			assert.True(t, credits[txn.Category], "credit row with category %q", txn.Category)
		case bank.Debit:
			assert.True(t, debits[txn.Category], "debit row with category %q", txn.Category)
		default:
			t.Fatalf("unexpected indicator %q", txn.Indicator)
		}
		assert.True(t, txn.Date >= "2025-01-01" && txn.Date <= "2025-02-28", "date %s outside run", txn.Date)
	}
	assert.Len(t, seen, 3)
	assert.True(t, seen["CUST0001"] && seen["CUST0002"] && seen["CUST0003"])
}

func TestGenerateSorted(t *testing.T) {
	txns := generate(t, testOptions())
	for i := 1; i < len(txns); i++ {
		prev, cur := txns[i-1], txns[i]
		if prev.CustomerID == cur.CustomerID {
			assert.LessOrEqual(t, prev.Date, cur.Date)
		} else {
			assert.Less(t, prev.CustomerID, cur.CustomerID)
		}
	}
}

func TestGeneratePersonaSelection(t *testing.T) {
	opts := testOptions()
	opts.Personas = []string{"student"}
	for _, txn := range generate(t, opts) {
		assert.NotEqual(t, "EMI", txn.Category, "students carry no EMIs")
	}

	opts.Personas = []string{"salaried"}
	opts.Customers = 1
	var emis int
	for _, txn := range generate(t, opts) {
		if txn.Category == "EMI" {
			emis++
		}
	}
	// two EMIs per month over two months
	assert.Equal(t, 4, emis)
}

func TestNewRejectsUnknownPersona(t *testing.T) {
	_, err := New(Options{Personas: []string{"astronaut"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "astronaut")
}

func TestPersonaNamesOrder(t *testing.T) {
	assert.Equal(t, []string{
		"salaried", "business_owner", "gig_worker",
		"investor", "pensioner", "student", "hybrid",
	}, PersonaNames())
}

func TestSummarize(t *testing.T) {
	txns := []bank.Transaction{
		{CustomerID: "CUST0002", Indicator: bank.Debit, Amount: 50, Category: "Groceries"},
		{CustomerID: "CUST0001", Indicator: bank.Credit, Amount: 1000, Category: "Salary"},
		{CustomerID: "CUST0001", Indicator: bank.Debit, Amount: 200, Category: "Groceries"},
	}

	summary := Summarize(txns)
	require.Len(t, summary, 2)
	assert.Equal(t, "CUST0001", summary[0].CustomerID)
	assert.Equal(t, 2, summary[0].Count)
	assert.Equal(t, 1200.0, summary[0].Total)
	assert.Equal(t, 1, summary[0].CreditCount)
	assert.Equal(t, "CUST0002", summary[1].CustomerID)

	dist := CategoryDistribution(txns)
	require.Len(t, dist, 2)
	assert.Equal(t, CategoryCount{Category: "Groceries", Count: 2}, dist[0])
	assert.Equal(t, CategoryCount{Category: "Salary", Count: 1}, dist[1])
}

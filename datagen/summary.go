package datagen

import (
	"sort"

	"github.com/lexcodex/finsight/bank"
)

// CustomerSummary aggregates one customer's generated rows.
type CustomerSummary struct {
	CustomerID  string
	Count       int
	Total       float64
	CreditCount int
}

// Summarize groups transactions per customer, ascending by customer id.
func Summarize(txns []bank.Transaction) []CustomerSummary {
	byCustomer := make(map[string]*CustomerSummary)
	for _, t := range txns {
		s, ok := byCustomer[t.CustomerID]
		if !ok {
			s = &CustomerSummary{CustomerID: t.CustomerID}
			byCustomer[t.CustomerID] = s
		}
		s.Count++
		s.Total += t.Amount
		if t.Indicator == bank.Credit {
			s.CreditCount++
		}
	}
	out := make([]CustomerSummary, 0, len(byCustomer))
	for _, s := range byCustomer {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

// CategoryCount is one category's row count.
type CategoryCount struct {
	Category string
	Count    int
}

// CategoryDistribution counts rows per category, busiest first, ties by
// name.
func CategoryDistribution(txns []bank.Transaction) []CategoryCount {
	counts := make(map[string]int)
	for _, t := range txns {
		counts[t.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

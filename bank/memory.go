package bank

import (
	"context"
	"sort"
	"strings"
)

// MemoryStore keeps the whole dataset in a slice and answers queries by
// scanning it. Datasets here are tens of thousands of rows at most, so scans
// stay well under a millisecond and nothing needs an index.
type MemoryStore struct {
	txns []Transaction
}

// NewMemoryStore wraps an already-loaded dataset.
func NewMemoryStore(txns []Transaction) *MemoryStore {
	return &MemoryStore{txns: txns}
}

// OpenCSV loads the dataset at path into a MemoryStore.
func OpenCSV(path string) (*MemoryStore, error) {
	txns, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(txns), nil
}

// Len reports the number of rows loaded.
func (s *MemoryStore) Len() int {
	return len(s.txns)
}

func (s *MemoryStore) TotalSpending(ctx context.Context, customerID string) (float64, error) {
	var total float64
	for _, t := range s.txns {
		if t.CustomerID == customerID && t.Indicator == Debit {
			total += t.Amount
		}
	}
	return total, nil
}

func (s *MemoryStore) TotalIncome(ctx context.Context, customerID string) (float64, error) {
	var total float64
	for _, t := range s.txns {
		if t.CustomerID == customerID && t.Indicator == Credit {
			total += t.Amount
		}
	}
	return total, nil
}

func (s *MemoryStore) SpendingByCategory(ctx context.Context, customerID, category string) (float64, int, error) {
	var total float64
	var count int
	for _, t := range s.txns {
		if t.CustomerID == customerID && t.Indicator == Debit && strings.EqualFold(t.Category, category) {
			total += t.Amount
			count++
		}
	}
	return total, count, nil
}

func (s *MemoryStore) TopCategories(ctx context.Context, customerID string, n int) ([]CategoryTotal, error) {
	totals := make(map[string]float64)
	for _, t := range s.txns {
		if t.CustomerID == customerID && t.Indicator == Debit {
			totals[t.Category] += t.Amount
		}
	}
	ranked := make([]CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		ranked = append(ranked, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Category < ranked[j].Category
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

func (s *MemoryStore) SpendingInRange(ctx context.Context, customerID, start, end string) (float64, int, error) {
	var total float64
	var count int
	for _, t := range s.txns {
		if t.CustomerID == customerID && t.Indicator == Debit && t.Date >= start && t.Date <= end {
			total += t.Amount
			count++
		}
	}
	return total, count, nil
}

func (s *MemoryStore) Customers(ctx context.Context) ([]string, error) {
	return s.distinct(func(t Transaction) string { return t.CustomerID }), nil
}

func (s *MemoryStore) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(func(t Transaction) string { return t.Category }), nil
}

func (s *MemoryStore) distinct(key func(Transaction) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range s.txns {
		k := key(t)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Package datagen produces synthetic bank transactions. Each customer is
// assigned a persona whose income sources, expense shares, and volatility
// shape six columns of output: customer, debit/credit indicator, date,
// amount, payment mode, and category.
package datagen

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/lexcodex/finsight/bank"
)

// Options configures a generation run. Zero values fall back to the stock
// run: 5 customers, 6 months, all personas cycled in order, time-based seed.
type Options struct {
	Customers int
	Months    int
	Start     time.Time
	Personas  []string
	Seed      int64
}

// Generator produces transactions from a single seeded random stream, so
// equal options with a nonzero seed yield byte-identical datasets.
type Generator struct {
	opts Options
	rng  *rand.Rand
}

// New validates options and builds a generator.
func New(opts Options) (*Generator, error) {
	if opts.Customers <= 0 {
		opts.Customers = 5
	}
	if opts.Months <= 0 {
		opts.Months = 6
	}
	if len(opts.Personas) == 0 {
		opts.Personas = PersonaNames()
	}
	for _, name := range opts.Personas {
		if _, ok := ProfileFor(name); !ok {
			return nil, fmt.Errorf("unknown persona %q", name)
		}
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now().AddDate(0, 0, -opts.Months*30)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{opts: opts, rng: rand.New(rand.NewSource(seed))}, nil
}

// Generate produces the full dataset, sorted by customer then date.
func (g *Generator) Generate() []bank.Transaction {
	var all []bank.Transaction
	for i := 0; i < g.opts.Customers; i++ {
		custID := fmt.Sprintf("CUST%04d", i+1)
		profile, _ := ProfileFor(g.opts.Personas[i%len(g.opts.Personas)])
		all = append(all, g.customer(custID, profile)...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].CustomerID != all[j].CustomerID {
			return all[i].CustomerID < all[j].CustomerID
		}
		return all[i].Date < all[j].Date
	})
	return all
}

// customer produces one customer's months. Expenses are driven by the
// income actually generated that month, not the nominal base, so heavy
// months spend more.
func (g *Generator) customer(custID string, p Profile) []bank.Transaction {
	base := g.uniform(p.IncomeRange[0], p.IncomeRange[1])
	emis := make([]float64, 0, p.EMICount)
	for i := 0; i < p.EMICount; i++ {
		emis = append(emis, g.uniform(p.EMIRange[0], p.EMIRange[1]))
	}

	firstMonth := time.Date(g.opts.Start.Year(), g.opts.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	var txns []bank.Transaction
	for monthIdx := 0; monthIdx < g.opts.Months; monthIdx++ {
		monthStart := firstMonth.AddDate(0, monthIdx, 0)
		monthEnd := monthStart.AddDate(0, 1, -1)
		trend := 1 + float64(monthIdx)*g.uniform(-0.02, 0.03)

		income := g.incomeForMonth(p, base*trend, monthStart, monthEnd)
		var actual float64
		for _, t := range income {
			actual += t.Amount
		}
		expenses := g.expensesForMonth(p, actual, monthStart, emis)

		for _, t := range income {
			t.CustomerID = custID
			txns = append(txns, t)
		}
		for _, t := range expenses {
			t.CustomerID = custID
			txns = append(txns, t)
		}
	}
	return txns
}

func (g *Generator) incomeForMonth(p Profile, base float64, monthStart, monthEnd time.Time) []bank.Transaction {
	var txns []bank.Transaction
	monthly := base * (1 + g.rng.NormFloat64()*p.IncomeVolatility)
	if floor := p.IncomeRange[0] * 0.5; monthly < floor {
		monthly = floor
	}
	remaining := monthly
	span := monthEnd.Day() - 1

	for _, src := range p.IncomeSources {
		// Sources fire probabilistically; strong sources almost always do.
		if g.rng.Float64() > src.Weight*1.5 {
			continue
		}
		amount := monthly * src.Weight * g.uniform(0.8, 1.2)
		if amount > remaining {
			amount = remaining
		}
		if amount < 100 {
			continue
		}
		remaining -= amount

		var n, day int
		switch src.Category {
		case "Salary":
			n = 1
			if g.rng.Float64() > 0.3 {
				day = g.between(1, 5)
			} else {
				day = g.between(25, 28)
			}
		case "Business_Income":
			n = g.between(3, 15)
		case "Rental_Income":
			n = 1
			day = g.between(1, 10)
		case "Investment_Returns":
			n = g.between(1, 3)
		default:
			n = g.between(1, 5)
		}

		for _, part := range g.split(amount, n) {
			if part < 50 {
				continue
			}
			var date time.Time
			if src.Category == "Salary" || src.Category == "Rental_Income" {
				date = monthStart.AddDate(0, 0, day-1)
			} else {
				date = monthStart.AddDate(0, 0, g.between(0, span))
			}
			txns = append(txns, bank.Transaction{
				Indicator: bank.Credit,
				Date:      date.Format("2006-01-02"),
				Amount:    round2(part),
				Mode:      g.mode(src.Category),
				Category:  src.Category,
			})
		}
	}
	return txns
}

func (g *Generator) expensesForMonth(p Profile, income float64, monthStart time.Time, emis []float64) []bank.Transaction {
	var txns []bank.Transaction

	// EMIs are fixed obligations on fixed days.
	for i, emi := range emis {
		day := 5 + i*3
		if day > 28 {
			day = 28
		}
		txns = append(txns, bank.Transaction{
			Indicator: bank.Debit,
			Date:      monthStart.AddDate(0, 0, day-1).Format("2006-01-02"),
			Amount:    round2(emi),
			Mode:      g.mode("EMI"),
			Category:  "EMI",
		})
	}

	for _, share := range p.ExpensePattern {
		if share.Category == "EMI" {
			continue
		}
		total := income * g.uniform(share.Min, share.Max)
		if total < 50 {
			continue
		}

		var amounts []float64
		var days []int
		switch share.Category {
		case "Rent":
			amounts = []float64{total}
			days = []int{g.between(1, 5)}
		case "Utilities", "Insurance":
			n := g.between(1, 3)
			amounts, days = g.split(total, n), g.daysOfMonth(n)
		case "Groceries":
			n := g.between(4, 12)
			amounts, days = g.split(total, n), g.daysOfMonth(n)
		case "Entertainment", "Shopping":
			n := g.between(2, 8)
			amounts, days = g.split(total, n), g.daysOfMonth(n)
		case "Cash_Withdrawal":
			n := g.between(2, 6)
			amounts, days = g.split(total, n), g.daysOfMonth(n)
		default:
			n := g.between(1, 5)
			amounts, days = g.split(total, n), g.daysOfMonth(n)
		}

		for i, amount := range amounts {
			if amount < 10 {
				continue
			}
			txns = append(txns, bank.Transaction{
				Indicator: bank.Debit,
				Date:      monthStart.AddDate(0, 0, days[i]-1).Format("2006-01-02"),
				Amount:    round2(amount),
				Mode:      g.mode(share.Category),
				Category:  share.Category,
			})
		}
	}
	return txns
}

// mode picks a payment rail plausible for the category.
func (g *Generator) mode(category string) string {
	switch category {
	case "Salary":
		return g.pick("NEFT", "RTGS", "IMPS")
	case "Business_Income", "Rental_Income":
		return g.pick("NEFT", "RTGS", "IMPS", "CHEQUE", "UPI")
	case "Investment_Returns":
		return g.pick("NEFT", "RTGS")
	case "Transfers_In", "Transfers_Out":
		return g.pick("UPI", "NEFT", "IMPS")
	case "Refunds":
		return g.pick("UPI", "NEFT", "CARD")
	case "Cash_Withdrawal":
		return "CASH"
	case "EMI":
		return g.pick("AUTO_DEBIT", "NEFT")
	case "Rent":
		return g.pick("NEFT", "UPI", "CHEQUE")
	case "Utilities", "Insurance":
		return g.pick("AUTO_DEBIT", "UPI", "NEFT")
	case "Groceries", "Shopping", "Entertainment", "Travel", "Healthcare":
		return g.pick("UPI", "CARD", "CASH")
	case "Education":
		return g.pick("NEFT", "UPI", "CARD")
	default:
		return g.pick(Modes...)
	}
}

// split divides total into n random shares that sum to total. Shares are
// drawn from a flat Dirichlet: n unit exponentials, normalized.
func (g *Generator) split(total float64, n int) []float64 {
	if n <= 1 {
		return []float64{total}
	}
	draws := make([]float64, n)
	var sum float64
	for i := range draws {
		draws[i] = g.rng.ExpFloat64()
		sum += draws[i]
	}
	for i := range draws {
		draws[i] = total * draws[i] / sum
	}
	return draws
}

func (g *Generator) daysOfMonth(n int) []int {
	days := make([]int, n)
	for i := range days {
		days[i] = g.between(1, 28)
	}
	return days
}

// between returns a uniform int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) pick(choices ...string) string {
	return choices[g.rng.Intn(len(choices))]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

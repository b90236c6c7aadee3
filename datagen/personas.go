package datagen

// CreditCategories are the income-side transaction categories.
var CreditCategories = []string{
	"Salary", "Business_Income", "Rental_Income",
	"Investment_Returns", "Refunds", "Transfers_In", "Other_Credit",
}

// DebitCategories are the expense-side transaction categories.
var DebitCategories = []string{
	"Groceries", "Utilities", "Rent", "EMI", "Insurance",
	"Entertainment", "Shopping", "Travel", "Healthcare",
	"Education", "Transfers_Out", "Cash_Withdrawal", "Other_Debit",
}

// Modes are the payment rails a transaction can ride.
var Modes = []string{"UPI", "NEFT", "RTGS", "IMPS", "CASH", "CARD", "CHEQUE", "AUTO_DEBIT"}

// WeightedCategory is an income source and its share of monthly income.
type WeightedCategory struct {
	Category string
	Weight   float64
}

// ExpenseShare bounds a category's share of monthly income.
type ExpenseShare struct {
	Category string
	Min, Max float64
}

// Profile shapes one persona's cash flow. Income sources and expense
// patterns are ordered slices, not maps, so a fixed seed reproduces the
// exact same dataset.
type Profile struct {
	Persona          string
	IncomeRange      [2]float64
	IncomeSources    []WeightedCategory
	ExpensePattern   []ExpenseShare
	IncomeVolatility float64
	EMICount         int
	EMIRange         [2]float64
}

var profiles = []Profile{
	{
		Persona:     "salaried",
		IncomeRange: [2]float64{40000, 150000},
		IncomeSources: []WeightedCategory{
			{"Salary", 0.9}, {"Investment_Returns", 0.05}, {"Refunds", 0.05},
		},
		ExpensePattern: []ExpenseShare{
			{"Rent", 0.15, 0.30},
			{"EMI", 0.10, 0.25},
			{"Groceries", 0.08, 0.15},
			{"Utilities", 0.03, 0.06},
			{"Insurance", 0.02, 0.05},
			{"Entertainment", 0.03, 0.08},
			{"Shopping", 0.05, 0.12},
			{"Travel", 0.02, 0.08},
			{"Healthcare", 0.01, 0.04},
			{"Transfers_Out", 0.05, 0.15},
			{"Cash_Withdrawal", 0.05, 0.10},
		},
		IncomeVolatility: 0.05,
		EMICount:         2,
		EMIRange:         [2]float64{5000, 25000},
	},
	{
		Persona:     "business_owner",
		IncomeRange: [2]float64{80000, 500000},
		IncomeSources: []WeightedCategory{
			{"Business_Income", 0.85}, {"Investment_Returns", 0.10}, {"Other_Credit", 0.05},
		},
		ExpensePattern: []ExpenseShare{
			{"Rent", 0.05, 0.15},
			{"EMI", 0.05, 0.15},
			{"Groceries", 0.03, 0.08},
			{"Utilities", 0.02, 0.05},
			{"Insurance", 0.02, 0.04},
			{"Entertainment", 0.02, 0.06},
			{"Shopping", 0.03, 0.10},
			{"Travel", 0.03, 0.10},
			{"Healthcare", 0.01, 0.03},
			{"Transfers_Out", 0.15, 0.30},
			{"Cash_Withdrawal", 0.10, 0.20},
			{"Other_Debit", 0.05, 0.15},
		},
		IncomeVolatility: 0.35,
		EMICount:         1,
		EMIRange:         [2]float64{15000, 50000},
	},
	{
		Persona:     "gig_worker",
		IncomeRange: [2]float64{20000, 80000},
		IncomeSources: []WeightedCategory{
			{"Business_Income", 0.40}, {"Transfers_In", 0.35}, {"Other_Credit", 0.20}, {"Refunds", 0.05},
		},
		ExpensePattern: []ExpenseShare{
			{"Rent", 0.20, 0.35},
			{"Groceries", 0.10, 0.18},
			{"Utilities", 0.04, 0.08},
			{"Entertainment", 0.05, 0.12},
			{"Shopping", 0.05, 0.10},
			{"Travel", 0.08, 0.15},
			{"Healthcare", 0.02, 0.05},
			{"Transfers_Out", 0.03, 0.10},
			{"Cash_Withdrawal", 0.08, 0.15},
		},
		IncomeVolatility: 0.45,
	},
	{
		Persona:     "investor",
		IncomeRange: [2]float64{100000, 400000},
		IncomeSources: []WeightedCategory{
			{"Investment_Returns", 0.50}, {"Rental_Income", 0.30}, {"Salary", 0.15}, {"Other_Credit", 0.05},
		},
		ExpensePattern: []ExpenseShare{
			{"Rent", 0.0, 0.05},
			{"Groceries", 0.03, 0.06},
			{"Utilities", 0.02, 0.04},
			{"Insurance", 0.03, 0.06},
			{"Entertainment", 0.03, 0.08},
			{"Shopping", 0.05, 0.12},
			{"Travel", 0.05, 0.15},
			{"Healthcare", 0.02, 0.05},
			{"Transfers_Out", 0.15, 0.30},
			{"Cash_Withdrawal", 0.03, 0.08},
		},
		IncomeVolatility: 0.25,
	},
	{
		Persona:     "pensioner",
		IncomeRange: [2]float64{25000, 60000},
		IncomeSources: []WeightedCategory{
			{"Salary", 0.70}, {"Investment_Returns", 0.20}, {"Rental_Income", 0.10},
		},
		ExpensePattern: []ExpenseShare{
			{"Groceries", 0.12, 0.20},
			{"Utilities", 0.05, 0.10},
			{"Healthcare", 0.08, 0.18},
			{"Insurance", 0.03, 0.06},
			{"Entertainment", 0.02, 0.05},
			{"Shopping", 0.03, 0.08},
			{"Travel", 0.02, 0.06},
			{"Transfers_Out", 0.10, 0.20},
			{"Cash_Withdrawal", 0.08, 0.15},
		},
		IncomeVolatility: 0.03,
	},
	{
		Persona:     "student",
		IncomeRange: [2]float64{10000, 30000},
		IncomeSources: []WeightedCategory{
			{"Transfers_In", 0.70}, {"Salary", 0.20}, {"Refunds", 0.10},
		},
		ExpensePattern: []ExpenseShare{
			{"Rent", 0.25, 0.40},
			{"Groceries", 0.15, 0.25},
			{"Utilities", 0.03, 0.06},
			{"Education", 0.10, 0.20},
			{"Entertainment", 0.08, 0.15},
			{"Shopping", 0.05, 0.12},
			{"Travel", 0.03, 0.08},
			{"Cash_Withdrawal", 0.05, 0.12},
		},
		IncomeVolatility: 0.20,
	},
	{
		Persona:     "hybrid",
		IncomeRange: [2]float64{50000, 150000},
		IncomeSources: []WeightedCategory{
			{"Salary", 0.50}, {"Business_Income", 0.25}, {"Investment_Returns", 0.15}, {"Rental_Income", 0.10},
		},
		ExpensePattern: []ExpenseShare{
			{"Rent", 0.10, 0.20},
			{"EMI", 0.08, 0.18},
			{"Groceries", 0.06, 0.12},
			{"Utilities", 0.03, 0.06},
			{"Insurance", 0.02, 0.05},
			{"Entertainment", 0.04, 0.10},
			{"Shopping", 0.05, 0.12},
			{"Travel", 0.04, 0.10},
			{"Healthcare", 0.02, 0.04},
			{"Transfers_Out", 0.08, 0.15},
			{"Cash_Withdrawal", 0.05, 0.10},
		},
		IncomeVolatility: 0.15,
		EMICount:         1,
		EMIRange:         [2]float64{8000, 20000},
	},
}

// PersonaNames lists the persona identifiers in canonical order.
func PersonaNames() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Persona
	}
	return names
}

// ProfileFor looks up a persona by name.
func ProfileFor(name string) (Profile, bool) {
	for _, p := range profiles {
		if p.Persona == name {
			return p, true
		}
	}
	return Profile{}, false
}

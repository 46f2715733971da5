package finbook

// Summary provides an at-a-glance overview of a profile's activity over a
// date range.
type Summary struct {
	Range Range

	TopIncomes  []SubcategoryTotal // top-5 income subcategories by total
	TopExpenses []SubcategoryTotal // top-5 expense subcategories by total

	TotalIncome  Money
	TotalExpense Money
	Net          Money // income minus expense

	DailyAvgIncome  Money // income / days in range, rounded to the unit
	DailyAvgExpense Money // expense / days in range, rounded to the unit
}

const topSubcategories = 5

// Summarize computes a Summary for the given profile over rng.
func (s *Store) Summarize(username, profile string, rng Range) (*Summary, error) {
	incomes, err := s.Transactions(username, profile, Filter{
		Category: Incomes, From: rng.From, To: rng.To,
	})
	if err != nil {
		return nil, err
	}
	expenses, err := s.Transactions(username, profile, Filter{
		Category: Expenses, From: rng.From, To: rng.To,
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Range:        rng,
		TopIncomes:   TotalsBySubcategory(incomes, topSubcategories),
		TopExpenses:  TotalsBySubcategory(expenses, topSubcategories),
		TotalIncome:  SumAmounts(incomes),
		TotalExpense: SumAmounts(expenses),
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)

	days := rng.Days()
	summary.DailyAvgIncome = summary.TotalIncome.DivDays(days)
	summary.DailyAvgExpense = summary.TotalExpense.DivDays(days)
	return summary, nil
}

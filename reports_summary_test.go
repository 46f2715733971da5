package finbook

import (
	"errors"
	"testing"
)

func TestStore_Summarize(t *testing.T) {
	s := newQueryStore(t)
	rng := NewRange(NewDate(2024, 3, 1), NewDate(2024, 3, 31))

	summary, err := s.Summarize("alice", "personal", rng)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if !summary.TotalIncome.Equal(M(300, "")) {
		t.Errorf("TotalIncome = %s, want 300", summary.TotalIncome)
	}
	if !summary.TotalExpense.Equal(M(22, "")) {
		t.Errorf("TotalExpense = %s, want 22", summary.TotalExpense)
	}
	if !summary.Net.Equal(M(278, "")) {
		t.Errorf("Net = %s, want 278", summary.Net)
	}

	if len(summary.TopIncomes) != 1 || summary.TopIncomes[0].Subcategory != "salary" {
		t.Errorf("TopIncomes = %v, want the single salary bucket", summary.TopIncomes)
	}
	if len(summary.TopExpenses) != 2 || summary.TopExpenses[0].Subcategory != "food" {
		t.Errorf("TopExpenses = %v, want food first of 2 buckets", summary.TopExpenses)
	}

	// March has 31 days: 300/31 rounds to 10, 22/31 rounds to 1.
	if days := rng.Days(); days != 31 {
		t.Fatalf("Days() = %d, want 31", days)
	}
	if !summary.DailyAvgIncome.Equal(M(10, "")) {
		t.Errorf("DailyAvgIncome = %s, want 10", summary.DailyAvgIncome)
	}
	if !summary.DailyAvgExpense.Equal(M(1, "")) {
		t.Errorf("DailyAvgExpense = %s, want 1", summary.DailyAvgExpense)
	}
}

func TestStore_Summarize_Empty(t *testing.T) {
	s := newTestStore(t)
	rng := NewRange(NewDate(2024, 3, 1), NewDate(2024, 3, 31))

	summary, err := s.Summarize("alice", "personal", rng)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !summary.TotalIncome.IsZero() || !summary.TotalExpense.IsZero() || !summary.Net.IsZero() {
		t.Errorf("empty summary has non-zero totals: %+v", summary)
	}
	if len(summary.TopIncomes) != 0 || len(summary.TopExpenses) != 0 {
		t.Errorf("empty summary has buckets: %+v", summary)
	}
}

func TestStore_Summarize_UnknownProfile(t *testing.T) {
	s := newTestStore(t)
	rng := MonthToDate(Today())
	if _, err := s.Summarize("alice", "ghost", rng); !errors.Is(err, ErrNotFound) {
		t.Errorf("Summarize(unknown profile) = %v, want ErrNotFound", err)
	}
}

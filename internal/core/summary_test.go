package core

import (
	"testing"
	"time"
)

func feb(day int) time.Time {
	return time.Date(2025, time.February, day, 0, 0, 0, 0, time.UTC)
}

func TestSummarizeWithSavings(t *testing.T) {
	incomes := []Income{
		{ID: "i1", Amount: Money{Cents: 100000}, Source: "salary", Date: feb(1), SavingsPercentage: 20},
	}
	expenses := []Expense{
		{ID: "e1", Amount: Money{Cents: 30000}, Category: "rent", Description: "rent", Date: feb(5)},
	}

	s := Summarize(incomes, expenses, MonthWindow(2025, time.February))
	if s.TotalIncome.Cents != 100000 {
		t.Fatalf("totalIncome = %d", s.TotalIncome.Cents)
	}
	if s.TotalExpenses.Cents != 30000 {
		t.Fatalf("totalExpenses = %d", s.TotalExpenses.Cents)
	}
	if s.TotalSavings.Cents != 20000 {
		t.Fatalf("totalSavings = %d", s.TotalSavings.Cents)
	}
	// 1000 - 300 - 200 = 500
	if s.Balance.Cents != 50000 {
		t.Fatalf("balance = %d, want 50000", s.Balance.Cents)
	}
}

func TestSummarizeMonthWindowFilters(t *testing.T) {
	incomes := []Income{
		{Amount: Money{Cents: 1000}, Date: feb(1)},
		{Amount: Money{Cents: 5000}, Date: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}

	s := Summarize(incomes, nil, MonthWindow(2025, time.February))
	if s.TotalIncome.Cents != 1000 {
		t.Fatalf("windowed totalIncome = %d, want 1000", s.TotalIncome.Cents)
	}

	all := Summarize(incomes, nil, Window{})
	if all.TotalIncome.Cents != 6000 {
		t.Fatalf("all-time totalIncome = %d, want 6000", all.TotalIncome.Cents)
	}
}

func TestGoalOutlookNotFeasibleViaSavings(t *testing.T) {
	// balance=500, totalSavings=200, target=1000
	s := Summary{
		Balance:      Money{Cents: 50000},
		TotalSavings: Money{Cents: 20000},
	}
	g := SavingsGoal{ID: "g1", Name: "Trip", TargetAmount: Money{Cents: 100000}}

	out := s.Outlook(g)
	if out.Remaining.Cents != 50000 {
		t.Fatalf("remaining = %d, want 50000", out.Remaining.Cents)
	}
	if out.CanAchieve {
		t.Fatalf("goal should not be achievable")
	}
	if out.SavingsImpact != 100 {
		t.Fatalf("savingsImpact = %v, want 100", out.SavingsImpact)
	}
	if out.Progress != 50 {
		t.Fatalf("progress = %v, want 50", out.Progress)
	}
}

func TestGoalOutlookFeasible(t *testing.T) {
	cases := []struct {
		name       string
		summary    Summary
		target     int64
		canAchieve bool
		impact     float64
	}{
		{
			name:       "balance covers target outright",
			summary:    Summary{Balance: Money{Cents: 2000}},
			target:     1000,
			canAchieve: true,
			impact:     0,
		},
		{
			name:       "savings cover the shortfall",
			summary:    Summary{Balance: Money{Cents: 500}, TotalSavings: Money{Cents: 1000}},
			target:     1000,
			canAchieve: true,
			impact:     50,
		},
		{
			name:       "nothing covers it",
			summary:    Summary{Balance: Money{Cents: 0}, TotalSavings: Money{Cents: 0}},
			target:     1000,
			canAchieve: false,
			impact:     100,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := tc.summary.Outlook(SavingsGoal{TargetAmount: Money{Cents: tc.target}})
			if out.CanAchieve != tc.canAchieve {
				t.Fatalf("canAchieve = %v, want %v", out.CanAchieve, tc.canAchieve)
			}
			if out.SavingsImpact != tc.impact {
				t.Fatalf("savingsImpact = %v, want %v", out.SavingsImpact, tc.impact)
			}
		})
	}
}

func TestOutlooksPreserveOrder(t *testing.T) {
	s := Summary{Balance: Money{Cents: 100}}
	goals := []SavingsGoal{
		{ID: "a", TargetAmount: Money{Cents: 50}},
		{ID: "b", TargetAmount: Money{Cents: 200}},
	}
	outs := s.Outlooks(goals)
	if len(outs) != 2 || outs[0].Goal.ID != "a" || outs[1].Goal.ID != "b" {
		t.Fatalf("order not preserved: %+v", outs)
	}
}

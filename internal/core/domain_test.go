package core

import (
	"testing"
	"time"
)

func TestProjectValidate(t *testing.T) {
	good := Project{Name: "X", Manager: "M", Status: StatusNotStarted}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Project{
		{Name: "", Manager: "M", Status: StatusNotStarted},
		{Name: "  ", Manager: "M", Status: StatusNotStarted},
		{Name: "X", Manager: "", Status: StatusNotStarted},
		{Name: "X", Manager: "M", Status: "Paused"},
		{Name: "X", Manager: "M", Status: StatusNotStarted, Type: "Hobby"},
	}
	for i, p := range bads {
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestProjectStamped(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := Project{Name: "X", Manager: "M", Status: StatusNotStarted, Progress: 130}
	got := p.Stamped("abc", now)

	if got.ID != "abc" {
		t.Fatalf("id = %q", got.ID)
	}
	if got.Progress != 100 {
		t.Fatalf("progress = %d, want clamped to 100", got.Progress)
	}
	if !got.CreatedAt.Equal(now) || !got.LastUpdated.Equal(now) {
		t.Fatalf("timestamps = %v / %v, want both %v", got.CreatedAt, got.LastUpdated, now)
	}
}

func TestProjectMergedFallsBackToPrevious(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	prev := Project{ID: "p1", Name: "Old", Manager: "M", Status: StatusNotStarted, CreatedAt: created, LastUpdated: created}

	got := Project{Progress: 40, Status: StatusInProgress}.Merged(prev, now)
	if got.Name != "Old" || got.Manager != "M" {
		t.Fatalf("empty strings should fall back: %+v", got)
	}
	if got.ID != "p1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("identity fields must come from prev: %+v", got)
	}
	if !got.LastUpdated.After(prev.LastUpdated) {
		t.Fatalf("lastUpdated not refreshed: %v", got.LastUpdated)
	}
	if got.Status != StatusInProgress || got.Progress != 40 {
		t.Fatalf("supplied fields must win: %+v", got)
	}
}

func TestIncomeValidate(t *testing.T) {
	date := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		in   Income
		ok   bool
	}{
		{"valid", Income{Amount: Money{Cents: 1000}, Source: "salary", Date: date}, true},
		{"zero amount ok", Income{Amount: Money{}, Source: "gift", Date: date}, true},
		{"negative amount", Income{Amount: Money{Cents: -1}, Source: "salary", Date: date}, false},
		{"empty source", Income{Amount: Money{Cents: 1}, Source: " ", Date: date}, false},
		{"zero date", Income{Amount: Money{Cents: 1}, Source: "salary"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestFinanceMergedKeepsAmountWhenUnset(t *testing.T) {
	date := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	now := date.Add(time.Hour)

	prevIncome := Income{ID: "i1", Amount: Money{Cents: 250000}, Source: "salary", Date: date, SavingsPercentage: 20}
	gotIncome := Income{Source: "bonus"}.Merged(prevIncome, now)
	if gotIncome.Amount != prevIncome.Amount {
		t.Fatalf("income amount zeroed on partial update: %+v", gotIncome)
	}
	if gotIncome.Source != "bonus" || !gotIncome.Date.Equal(date) || gotIncome.ID != "i1" {
		t.Fatalf("merge wrong: %+v", gotIncome)
	}

	prevExpense := Expense{ID: "e1", Amount: Money{Cents: 4200}, Category: "food", Description: "lunch", Date: date}
	gotExpense := Expense{Description: "dinner"}.Merged(prevExpense, now)
	if gotExpense.Amount != prevExpense.Amount {
		t.Fatalf("expense amount zeroed on partial update: %+v", gotExpense)
	}
	if gotExpense.Description != "dinner" || gotExpense.Category != "food" {
		t.Fatalf("merge wrong: %+v", gotExpense)
	}

	// A supplied amount still wins.
	gotIncome = Income{Amount: Money{Cents: 100}}.Merged(prevIncome, now)
	if gotIncome.Amount.Cents != 100 {
		t.Fatalf("supplied amount must win: %+v", gotIncome)
	}
}

func TestIncomeStampedClampsSavingsPercentage(t *testing.T) {
	in := Income{Amount: Money{Cents: 100}, Source: "s", Date: time.Now(), SavingsPercentage: 250}
	if got := in.Stamped("i1", time.Now()); got.SavingsPercentage != 100 {
		t.Fatalf("savingsPercentage = %d, want 100", got.SavingsPercentage)
	}
	in.SavingsPercentage = -5
	if got := in.Stamped("i1", time.Now()); got.SavingsPercentage != 0 {
		t.Fatalf("savingsPercentage = %d, want 0", got.SavingsPercentage)
	}
}

func TestSavingsGoalValidate(t *testing.T) {
	good := SavingsGoal{Name: "Car", TargetAmount: Money{Cents: 100000}, Priority: PriorityHigh}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []SavingsGoal{
		{Name: "", TargetAmount: Money{Cents: 1}},
		{Name: "Car", TargetAmount: Money{}},
		{Name: "Car", TargetAmount: Money{Cents: -1}},
		{Name: "Car", TargetAmount: Money{Cents: 1}, Priority: "Urgent"},
	}
	for i, g := range bads {
		if err := g.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSavingsGoalStampedResetsCurrentAmount(t *testing.T) {
	g := SavingsGoal{Name: "Car", TargetAmount: Money{Cents: 1000}, CurrentAmount: Money{Cents: 500}}
	if got := g.Stamped("g1", time.Now()); got.CurrentAmount.Cents != 0 {
		t.Fatalf("currentAmount = %d, want 0", got.CurrentAmount.Cents)
	}
}

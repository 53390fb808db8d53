package core

import "time"

// Window selects a calendar month. The zero Window matches every date.
type Window struct {
	Year  int
	Month time.Month
}

// MonthWindow returns the window covering the given year and month.
func MonthWindow(year int, month time.Month) Window {
	return Window{Year: year, Month: month}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.Year == 0 {
		return true
	}
	return t.Year() == w.Year && t.Month() == w.Month
}

// Summary holds the aggregates derived from the finance collections. It is a
// pure function of its inputs and is recomputed on demand, never stored.
type Summary struct {
	TotalIncome   Money `json:"totalIncome"`
	TotalExpenses Money `json:"totalExpenses"`
	TotalSavings  Money `json:"totalSavings"`
	Balance       Money `json:"balance"`
}

// GoalOutlook is the transient feasibility view of a savings goal against the
// current summary.
type GoalOutlook struct {
	Goal          SavingsGoal `json:"goal"`
	Progress      float64     `json:"progress"`
	Remaining     Money       `json:"remaining"`
	CanAchieve    bool        `json:"canAchieve"`
	SavingsImpact float64     `json:"savingsImpact"`
}

// Summarize totals income, expenses and earmarked savings over the window.
// Savings are the per-entry amount scaled by its savings percentage; balance
// is income minus expenses minus savings.
func Summarize(incomes []Income, expenses []Expense, w Window) Summary {
	var s Summary
	for _, in := range incomes {
		if !w.Contains(in.Date) {
			continue
		}
		s.TotalIncome = s.TotalIncome.Add(in.Amount)
		s.TotalSavings = s.TotalSavings.Add(in.Amount.Percent(in.SavingsPercentage))
	}
	for _, ex := range expenses {
		if !w.Contains(ex.Date) {
			continue
		}
		s.TotalExpenses = s.TotalExpenses.Add(ex.Amount)
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses).Sub(s.TotalSavings)
	return s
}

// Outlook computes the feasibility of a goal against this summary.
//
// A goal is achievable when the balance already covers the target, or when
// the shortfall fits inside the earmarked savings. SavingsImpact is the share
// of savings the shortfall would consume; it reads 100 when savings cannot
// cover it and 0 when nothing remains to cover.
func (s Summary) Outlook(g SavingsGoal) GoalOutlook {
	out := GoalOutlook{Goal: g}
	if !g.TargetAmount.Positive() {
		return out
	}

	progress := float64(s.Balance.Cents) / float64(g.TargetAmount.Cents) * 100
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	out.Progress = progress

	out.Remaining = g.TargetAmount.Sub(s.Balance)
	switch {
	case out.Remaining.Cents <= 0:
		out.CanAchieve = true
		out.SavingsImpact = 0
	case out.Remaining.Cents <= s.TotalSavings.Cents:
		out.CanAchieve = true
		out.SavingsImpact = float64(out.Remaining.Cents) / float64(s.TotalSavings.Cents) * 100
	default:
		out.CanAchieve = false
		out.SavingsImpact = 100
	}
	return out
}

// Outlooks maps Outlook over a goal collection, preserving order.
func (s Summary) Outlooks(goals []SavingsGoal) []GoalOutlook {
	out := make([]GoalOutlook, len(goals))
	for i, g := range goals {
		out[i] = s.Outlook(g)
	}
	return out
}

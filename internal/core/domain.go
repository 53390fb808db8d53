package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusNotStarted ProjectStatus = "NotStarted"
	StatusInProgress ProjectStatus = "InProgress"
	StatusCompleted  ProjectStatus = "Completed"
)

const (
	TypeSideProject ProjectType = "SideProject"
	TypeFreelancer  ProjectType = "Freelancer"
	TypeEmployee    ProjectType = "Employee"
)

const (
	PriorityLow    GoalPriority = "Low"
	PriorityMedium GoalPriority = "Medium"
	PriorityHigh   GoalPriority = "High"
)

type (
	ProjectStatus string
	ProjectType   string
	GoalPriority  string

	// Project is a tracked personal project.
	Project struct {
		ID          string        `json:"id"`
		Name        string        `json:"name"`
		Manager     string        `json:"manager"`
		Status      ProjectStatus `json:"status"`
		Type        ProjectType   `json:"type,omitempty"`
		Progress    int           `json:"progress"`
		CreatedAt   time.Time     `json:"createdAt"`
		LastUpdated time.Time     `json:"lastUpdated"`
	}

	// Income is a single earning entry.
	Income struct {
		ID                string    `json:"id"`
		Amount            Money     `json:"amount"`
		Source            string    `json:"source"`
		Date              time.Time `json:"date"`
		SavingsPercentage int       `json:"savingsPercentage"`
	}

	// Expense is a single spending entry.
	Expense struct {
		ID          string    `json:"id"`
		Amount      Money     `json:"amount"`
		Category    string    `json:"category"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
	}

	// SavingsGoal is a target amount the user wants to reach.
	// CurrentAmount is kept in the persisted shape but never mutated
	// independently; goal progress is derived from the running balance.
	SavingsGoal struct {
		ID            string       `json:"id"`
		Name          string       `json:"name"`
		TargetAmount  Money        `json:"targetAmount"`
		CurrentAmount Money        `json:"currentAmount"`
		Priority      GoalPriority `json:"priority,omitempty"`
	}
)

var (
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyManager     = errors.New("empty manager")
	ErrEmptySource      = errors.New("empty source")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidType      = errors.New("invalid project type")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTarget    = errors.New("target amount must be positive")
)

// IsValidationError reports whether err stems from rejected entity input
// rather than a storage failure.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrEmptyName, ErrEmptyManager, ErrEmptySource, ErrEmptyCategory,
		ErrEmptyDescription, ErrInvalidStatus, ErrInvalidType,
		ErrInvalidPriority, ErrInvalidDate, ErrInvalidTarget, ErrInvalidAmount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (t ProjectType) Valid() bool {
	switch t {
	case TypeSideProject, TypeFreelancer, TypeEmployee:
		return true
	}
	return false
}

func (p GoalPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ClampPercent limits v to [0,100].
func ClampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func (p Project) EntityID() string { return p.ID }

func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Manager) == "" {
		return ErrEmptyManager
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.Type != "" && !p.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// Stamped returns the project with identity and creation timestamps assigned.
// Timestamps already present are kept, so a record stamped once keeps its
// creation time when replayed against another store. Progress is clamped into
// range.
func (p Project) Stamped(id string, now time.Time) Project {
	p.ID = id
	p.Progress = ClampPercent(p.Progress)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
		p.LastUpdated = now
	} else if p.LastUpdated.IsZero() {
		p.LastUpdated = p.CreatedAt
	}
	return p
}

// Merged replaces prev with this record, falling back to prev for display
// strings left empty. Identity and creation time always come from prev;
// LastUpdated is refreshed.
func (p Project) Merged(prev Project, now time.Time) Project {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = prev.Name
	}
	if strings.TrimSpace(p.Manager) == "" {
		p.Manager = prev.Manager
	}
	if p.Status == "" {
		p.Status = prev.Status
	}
	if p.Type == "" {
		p.Type = prev.Type
	}
	p.ID = prev.ID
	p.Progress = ClampPercent(p.Progress)
	p.CreatedAt = prev.CreatedAt
	p.LastUpdated = now
	return p
}

func (i Income) EntityID() string { return i.ID }

func (i Income) Validate() error {
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(i.Source) == "" {
		return ErrEmptySource
	}
	if i.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (i Income) Stamped(id string, _ time.Time) Income {
	i.ID = id
	i.SavingsPercentage = ClampPercent(i.SavingsPercentage)
	return i
}

// Merged falls back to prev for fields the draft left unset. An absent
// amount decodes to zero, so a zero amount reads as unset here.
func (i Income) Merged(prev Income, _ time.Time) Income {
	if !i.Amount.Positive() {
		i.Amount = prev.Amount
	}
	if strings.TrimSpace(i.Source) == "" {
		i.Source = prev.Source
	}
	if i.Date.IsZero() {
		i.Date = prev.Date
	}
	i.ID = prev.ID
	i.SavingsPercentage = ClampPercent(i.SavingsPercentage)
	return i
}

func (e Expense) EntityID() string { return e.ID }

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (e Expense) Stamped(id string, _ time.Time) Expense {
	e.ID = id
	return e
}

func (e Expense) Merged(prev Expense, _ time.Time) Expense {
	if !e.Amount.Positive() {
		e.Amount = prev.Amount
	}
	if strings.TrimSpace(e.Category) == "" {
		e.Category = prev.Category
	}
	if strings.TrimSpace(e.Description) == "" {
		e.Description = prev.Description
	}
	if e.Date.IsZero() {
		e.Date = prev.Date
	}
	e.ID = prev.ID
	return e
}

func (g SavingsGoal) EntityID() string { return g.ID }

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if !g.TargetAmount.Positive() {
		return ErrInvalidTarget
	}
	if g.Priority != "" && !g.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Stamped zeroes CurrentAmount: it starts at zero regardless of what the
// draft carried.
func (g SavingsGoal) Stamped(id string, _ time.Time) SavingsGoal {
	g.ID = id
	g.CurrentAmount = Money{}
	return g
}

func (g SavingsGoal) Merged(prev SavingsGoal, _ time.Time) SavingsGoal {
	if strings.TrimSpace(g.Name) == "" {
		g.Name = prev.Name
	}
	if g.Priority == "" {
		g.Priority = prev.Priority
	}
	if !g.TargetAmount.Positive() {
		g.TargetAmount = prev.TargetAmount
	}
	g.ID = prev.ID
	g.CurrentAmount = prev.CurrentAmount
	return g
}

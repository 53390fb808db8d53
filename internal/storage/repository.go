// Package storage is the SQLite backing store. One table per collection,
// rowid order is insertion order.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"blinky/internal/core"
	"blinky/internal/state"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) Projects() state.Store[core.Project]  { return &projectStore{db: r.db} }
func (r *Repository) Income() state.Store[core.Income]     { return &incomeStore{db: r.db} }
func (r *Repository) Expenses() state.Store[core.Expense]  { return &expenseStore{db: r.db} }
func (r *Repository) Goals() state.Store[core.SavingsGoal] { return &goalStore{db: r.db} }

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

type projectStore struct {
	db *sql.DB
}

func (s *projectStore) List(ctx context.Context) ([]core.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, manager, status, type, progress, created_at, last_updated
		 FROM projects ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []core.Project
	for rows.Next() {
		var p core.Project
		var createdAt, lastUpdated string
		if err := rows.Scan(&p.ID, &p.Name, &p.Manager, &p.Status, &p.Type, &p.Progress, &createdAt, &lastUpdated); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if p.CreatedAt, err = decodeTime(createdAt); err != nil {
			return nil, err
		}
		if p.LastUpdated, err = decodeTime(lastUpdated); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *projectStore) Insert(ctx context.Context, p core.Project) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, manager, status, type, progress, created_at, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Manager, string(p.Status), string(p.Type), p.Progress,
		encodeTime(p.CreatedAt), encodeTime(p.LastUpdated))
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	slog.InfoContext(ctx, "project saved", "id", p.ID, "name", p.Name, "status", p.Status)
	return nil
}

func (s *projectStore) Replace(ctx context.Context, p core.Project) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, manager = ?, status = ?, type = ?, progress = ?, last_updated = ?
		 WHERE id = ?`,
		p.Name, p.Manager, string(p.Status), string(p.Type), p.Progress,
		encodeTime(p.LastUpdated), p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (s *projectStore) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

type incomeStore struct {
	db *sql.DB
}

func (s *incomeStore) List(ctx context.Context) ([]core.Income, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount_cents, source, date, savings_percentage FROM income ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	defer rows.Close()

	var out []core.Income
	for rows.Next() {
		var in core.Income
		var date string
		if err := rows.Scan(&in.ID, &in.Amount.Cents, &in.Source, &date, &in.SavingsPercentage); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		if in.Date, err = decodeTime(date); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (s *incomeStore) Insert(ctx context.Context, in core.Income) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO income (id, amount_cents, source, date, savings_percentage) VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.Amount.Cents, in.Source, encodeTime(in.Date), in.SavingsPercentage)
	if err != nil {
		return fmt.Errorf("insert income: %w", err)
	}
	slog.InfoContext(ctx, "income saved", "id", in.ID, "amount_cents", in.Amount.Cents, "source", in.Source)
	return nil
}

func (s *incomeStore) Replace(ctx context.Context, in core.Income) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE income SET amount_cents = ?, source = ?, date = ?, savings_percentage = ? WHERE id = ?`,
		in.Amount.Cents, in.Source, encodeTime(in.Date), in.SavingsPercentage, in.ID)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	return nil
}

func (s *incomeStore) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM income WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	return nil
}

type expenseStore struct {
	db *sql.DB
}

func (s *expenseStore) List(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount_cents, category, description, date FROM expenses ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		var date string
		if err := rows.Scan(&e.ID, &e.Amount.Cents, &e.Category, &e.Description, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Date, err = decodeTime(date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *expenseStore) Insert(ctx context.Context, e core.Expense) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount_cents, category, description, date) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Amount.Cents, e.Category, e.Description, encodeTime(e.Date))
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	slog.InfoContext(ctx, "expense saved", "id", e.ID, "amount_cents", e.Amount.Cents, "category", e.Category)
	return nil
}

func (s *expenseStore) Replace(ctx context.Context, e core.Expense) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET amount_cents = ?, category = ?, description = ?, date = ? WHERE id = ?`,
		e.Amount.Cents, e.Category, e.Description, encodeTime(e.Date), e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

func (s *expenseStore) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

type goalStore struct {
	db *sql.DB
}

func (s *goalStore) List(ctx context.Context) ([]core.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, target_amount_cents, current_amount_cents, priority
		 FROM savings_goals ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var out []core.SavingsGoal
	for rows.Next() {
		var g core.SavingsGoal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount.Cents, &g.CurrentAmount.Cents, &g.Priority); err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *goalStore) Insert(ctx context.Context, g core.SavingsGoal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO savings_goals (id, name, target_amount_cents, current_amount_cents, priority)
		 VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents, string(g.Priority))
	if err != nil {
		return fmt.Errorf("insert savings goal: %w", err)
	}
	slog.InfoContext(ctx, "savings goal saved", "id", g.ID, "name", g.Name, "target_cents", g.TargetAmount.Cents)
	return nil
}

func (s *goalStore) Replace(ctx context.Context, g core.SavingsGoal) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE savings_goals SET name = ?, target_amount_cents = ?, current_amount_cents = ?, priority = ?
		 WHERE id = ?`,
		g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents, string(g.Priority), g.ID)
	if err != nil {
		return fmt.Errorf("update savings goal: %w", err)
	}
	return nil
}

func (s *goalStore) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	return nil
}

// Package backend assembles the persistence layer behind the state
// providers. A backend bundles one typed store per collection so the
// rest of the application never knows which storage engine is active.
package backend

import (
	"fmt"
	"log/slog"

	"blinky/internal/config"
	"blinky/internal/core"
	"blinky/internal/localstore"
	"blinky/internal/state"
	"blinky/internal/storage"
)

// Backend exposes the four collection stores of a storage engine.
type Backend interface {
	Projects() state.Store[core.Project]
	Income() state.Store[core.Income]
	Expenses() state.Store[core.Expense]
	Goals() state.Store[core.SavingsGoal]
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the backend instance and its cleanup function.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Type identifies a storage engine.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	FileBackend   Type = "file"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, FileBackend:
		return true
	default:
		return false
	}
}

// Factory creates backends based on configuration.
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates a backend factory.
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the backend selected by the configuration.
func (f *Factory) Create(cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLiteBackend:
		return f.createSQLite(cfg)
	case FileBackend:
		return f.createFile(cfg)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}

func (f *Factory) createSQLite(cfg *config.Config) (*Result, error) {
	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)

	return &Result{
		Backend: repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *Factory) createFile(cfg *config.Config) (*Result, error) {
	store, err := localstore.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file backend: %w", err)
	}

	f.logger.Info("Initialized file backend", "data_dir", cfg.DataDir)

	return &Result{
		Backend: store,
		Cleanup: store.Close,
	}, nil
}

// Package localstore persists each collection as a JSON document under a
// fixed key in a data directory. It is the local-only backing store: no
// network, one file per collection, full read-modify-write per operation.
package localstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"blinky/internal/core"
	"blinky/internal/state"
)

// schemaVersion is the current envelope version. Files written by earlier
// releases held a bare JSON array; those read as version 0 and are upgraded
// with default-filled fields on the next save.
const schemaVersion = 1

const (
	keyProjects = "projects"
	keyIncome   = "income"
	keyExpenses = "expenses"
	keyGoals    = "savings_goals"
)

// Store is a JSON-file key-value store holding one document per collection.
// A single mutex serializes all collections: the store has exactly one client
// and operations are short.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open prepares the data directory.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Projects() state.Store[core.Project] {
	return &collection[core.Project]{store: s, key: keyProjects, fill: fillProject}
}

func (s *Store) Income() state.Store[core.Income] {
	return &collection[core.Income]{store: s, key: keyIncome, fill: fillIncome}
}

func (s *Store) Expenses() state.Store[core.Expense] {
	return &collection[core.Expense]{store: s, key: keyExpenses}
}

func (s *Store) Goals() state.Store[core.SavingsGoal] {
	return &collection[core.SavingsGoal]{store: s, key: keyGoals}
}

// Close is a no-op; every operation leaves the files in a consistent state.
func (s *Store) Close() error { return nil }

// envelope wraps a persisted collection with its schema version.
type envelope struct {
	Version int             `json:"version"`
	Items   json.RawMessage `json:"items"`
}

// collection adapts one keyed document to the state.Store port.
type collection[T state.Entity[T]] struct {
	store *Store
	key   string
	fill  func(T) T
}

func (c *collection[T]) path() string {
	return filepath.Join(c.store.dir, c.key+".json")
}

func (c *collection[T]) List(_ context.Context) ([]T, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return c.load()
}

func (c *collection[T]) Insert(_ context.Context, item T) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].EntityID() == item.EntityID() {
			return fmt.Errorf("insert %s id %q: %w", c.key, item.EntityID(), state.ErrDuplicateID)
		}
	}
	return c.save(append(items, item))
}

func (c *collection[T]) Replace(_ context.Context, item T) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].EntityID() == item.EntityID() {
			items[i] = item
			return c.save(items)
		}
	}
	// Unknown id: already consistent.
	return nil
}

func (c *collection[T]) Remove(_ context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].EntityID() == id {
			return c.save(append(items[:i], items[i+1:]...))
		}
	}
	return nil
}

// load reads the collection, accepting both the current envelope and the
// legacy bare-array shape, and default-fills fields added since the file was
// written.
func (c *collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	raw := json.RawMessage(data)
	if data[0] == '{' {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode %s envelope: %w", c.key, err)
		}
		if env.Version > schemaVersion {
			return nil, fmt.Errorf("%s: schema version %d is newer than supported %d", c.key, env.Version, schemaVersion)
		}
		raw = env.Items
	}

	var items []T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.key, err)
		}
	}
	if c.fill != nil {
		for i := range items {
			items[i] = c.fill(items[i])
		}
	}
	return items, nil
}

// save writes the envelope atomically: temp file in the same directory, then
// rename over the target.
func (c *collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	rawItems, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	data, err := json.MarshalIndent(envelope{Version: schemaVersion, Items: rawItems}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", c.key, err)
	}

	tmp, err := os.CreateTemp(c.store.dir, c.key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", c.key, err)
	}
	if err := os.Rename(tmp.Name(), c.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", c.key, err)
	}
	return nil
}

// fillProject defaults fields that predate the current record shape.
func fillProject(p core.Project) core.Project {
	if p.Status == "" {
		p.Status = core.StatusNotStarted
	}
	p.Progress = core.ClampPercent(p.Progress)
	return p
}

func fillIncome(i core.Income) core.Income {
	i.SavingsPercentage = core.ClampPercent(i.SavingsPercentage)
	return i
}

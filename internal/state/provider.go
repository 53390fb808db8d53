// Package state keeps one in-memory collection per entity type consistent
// with its backing store after every operation.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entity is the contract every tracked record satisfies. Stamped and Merged
// return the modified copy so records stay plain values.
type Entity[T any] interface {
	EntityID() string
	Validate() error
	// Stamped assigns identity and creation timestamps to a draft.
	Stamped(id string, now time.Time) T
	// Merged produces the full replacement record: supplied fields win,
	// empty fields fall back to prev, the update timestamp is refreshed.
	Merged(prev T, now time.Time) T
}

// ErrDuplicateID rejects a create whose id is already taken. Ids must stay
// unique within a collection.
var ErrDuplicateID = errors.New("duplicate id")

// Store is the backing-store port. Remove of an unknown id must succeed so
// that deletes stay idempotent end to end. Insert of an already-present id
// must fail with ErrDuplicateID.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, item T) error
	Replace(ctx context.Context, item T) error
	Remove(ctx context.Context, id string) error
}

// Provider maintains the in-memory collection for one entity type. Every
// operation persists first and mutates the collection only on success, so a
// failed store call leaves the visible state at its pre-call value.
type Provider[T Entity[T]] struct {
	store Store[T]

	mu      sync.Mutex
	items   []T
	index   map[string]int
	loading bool

	now   func() time.Time
	newID func() string
}

// Option configures a Provider.
type Option[T Entity[T]] func(*Provider[T])

// WithClock overrides the time source, for tests.
func WithClock[T Entity[T]](now func() time.Time) Option[T] {
	return func(p *Provider[T]) { p.now = now }
}

// WithIDGenerator overrides the identifier generator, for tests.
func WithIDGenerator[T Entity[T]](gen func() string) Option[T] {
	return func(p *Provider[T]) { p.newID = gen }
}

// NewProvider wires a provider to its backing store. Identifiers are random
// UUIDs rather than creation timestamps, so rapid successive creates cannot
// collide.
func NewProvider[T Entity[T]](store Store[T], opts ...Option[T]) *Provider[T] {
	p := &Provider[T]{
		store: store,
		index: make(map[string]int),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchAll loads the full collection from the store, replacing the in-memory
// collection wholesale. On store failure the previous collection is kept and
// the error is returned. The loading flag is set for the duration of the call.
func (p *Provider[T]) FetchAll(ctx context.Context) ([]T, error) {
	p.setLoading(true)
	defer p.setLoading(false)

	items, err := p.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch collection: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append([]T(nil), items...)
	p.index = make(map[string]int, len(items))
	for i, item := range p.items {
		p.index[item.EntityID()] = i
	}
	return append([]T(nil), p.items...), nil
}

// Create validates the draft, assigns identity and timestamps, persists it
// and appends it to the collection.
func (p *Provider[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	if err := draft.Validate(); err != nil {
		return zero, err
	}

	// A draft that already carries an identity keeps it: the remote store
	// posts entities stamped by the far side's provider. A taken id is
	// rejected so the collection never holds two records under one id.
	id := draft.EntityID()
	if id == "" {
		id = p.newID()
	}
	p.mu.Lock()
	_, taken := p.index[id]
	p.mu.Unlock()
	if taken {
		return zero, fmt.Errorf("id %q: %w", id, ErrDuplicateID)
	}
	entity := draft.Stamped(id, p.now())
	if err := p.store.Insert(ctx, entity); err != nil {
		return zero, fmt.Errorf("insert entity: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.index[entity.EntityID()] = len(p.items)
	p.items = append(p.items, entity)
	return entity, nil
}

// Update replaces the record matching the entity's id with a full merged
// record. An unknown id is a silent no-op: the input comes back unchanged and
// neither the store nor the collection is touched.
func (p *Provider[T]) Update(ctx context.Context, entity T) (T, error) {
	p.mu.Lock()
	i, ok := p.index[entity.EntityID()]
	if !ok {
		p.mu.Unlock()
		slog.DebugContext(ctx, "update for unknown id ignored", "id", entity.EntityID())
		return entity, nil
	}
	prev := p.items[i]
	p.mu.Unlock()

	merged := entity.Merged(prev, p.now())
	if err := merged.Validate(); err != nil {
		return prev, err
	}
	if err := p.store.Replace(ctx, merged); err != nil {
		return prev, fmt.Errorf("replace entity: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if i, ok := p.index[merged.EntityID()]; ok {
		p.items[i] = merged
	}
	return merged, nil
}

// Delete removes the record from the store and the collection. Deleting an
// unknown id is a no-op, so the operation is idempotent.
func (p *Provider[T]) Delete(ctx context.Context, id string) error {
	if err := p.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove entity: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.index[id]
	if !ok {
		return nil
	}
	p.items = append(p.items[:i], p.items[i+1:]...)
	delete(p.index, id)
	for j := i; j < len(p.items); j++ {
		p.index[p.items[j].EntityID()] = j
	}
	return nil
}

// Get returns the record with the given id from the in-memory collection.
func (p *Provider[T]) Get(id string) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var zero T
	i, ok := p.index[id]
	if !ok {
		return zero, false
	}
	return p.items[i], true
}

// Items returns a snapshot of the collection in insertion order.
func (p *Provider[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

// Len returns the collection size.
func (p *Provider[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Loading reports whether a FetchAll is in flight.
func (p *Provider[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *Provider[T]) setLoading(v bool) {
	p.mu.Lock()
	p.loading = v
	p.mu.Unlock()
}

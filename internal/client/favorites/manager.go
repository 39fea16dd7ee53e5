// Package favorites maintains the durable set of favorited record IDs.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/pokedex/internal/client/storage"
	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/logging"
)

// StorageKey is the durable-store entry holding the serialized set.
const StorageKey = "favorites"

// Manager holds the in-memory favorites set and rewrites the whole
// persisted value on every mutation. The in-memory set is authoritative
// between Load calls: a failed persist is logged but never rolled back.
//
// Like the rest of the client core, Manager assumes a single user-paced
// caller and is not safe for concurrent use.
type Manager struct {
	kv     storage.KV
	logger logging.Logger
	set    map[int64]struct{}
}

// NewManager returns a Manager with an empty set. Call Load before first use.
func NewManager(kv storage.KV, logger logging.Logger) *Manager {
	return &Manager{
		kv:     kv,
		logger: logger.With("component", "favorites"),
		set:    make(map[int64]struct{}),
	}
}

// Load restores the persisted set. An absent entry leaves the set empty;
// malformed content is surfaced as an error and the set stays empty, the
// safe default.
func (m *Manager) Load(ctx context.Context) error {
	m.set = make(map[int64]struct{})

	value, ok, err := m.kv.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("loading favorites: %w", err)
	}
	if !ok {
		return nil
	}

	var ids []int64
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return fmt.Errorf("malformed favorites entry: %v: %w", err, common.ErrorStore)
	}

	for _, id := range ids {
		m.set[id] = struct{}{}
	}
	return nil
}

// IsFavorite reports membership. Synchronous; reads only in-memory state.
func (m *Manager) IsFavorite(id int64) bool {
	_, ok := m.set[id]
	return ok
}

// Toggle flips membership of id immediately, then rewrites the persisted
// value. The toggle stands even if the write fails.
func (m *Manager) Toggle(ctx context.Context, id int64) {
	if _, ok := m.set[id]; ok {
		delete(m.set, id)
	} else {
		m.set[id] = struct{}{}
	}

	if err := m.persist(ctx); err != nil {
		m.logger.Error(ctx, "failed to persist favorites", "record_id", id, "error", err)
	}
}

// List returns the favorited IDs in ascending order.
func (m *Manager) List() []int64 {
	ids := make([]int64, 0, len(m.set))
	for id := range m.set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *Manager) persist(ctx context.Context) error {
	b, err := json.Marshal(m.List())
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, StorageKey, string(b))
}

package audit

import (
	"context"
	"sync"
)

// Repository persists audit events and provenance entries.
type Repository interface {
	SaveEvent(ctx context.Context, event Event) error
	SaveProvenance(ctx context.Context, prov Provenance) error
	ListEvents(ctx context.Context) ([]Event, error)
	ListProvenance(ctx context.Context) ([]Provenance, error)
}

// MemoryRepository is the default in-process store, used when no database is
// configured. Entries are kept in arrival order.
type MemoryRepository struct {
	mu     sync.RWMutex
	events []Event
	provs  []Provenance
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) SaveEvent(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *MemoryRepository) SaveProvenance(_ context.Context, prov Provenance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provs = append(r.provs, prov)
	return nil
}

func (r *MemoryRepository) ListEvents(_ context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *MemoryRepository) ListProvenance(_ context.Context) ([]Provenance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provenance, len(r.provs))
	copy(out, r.provs)
	return out, nil
}

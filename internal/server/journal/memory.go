package journal

import (
	"context"
	"sync"
)

// DefaultMemoryCapacity bounds MemoryRepository when no capacity is given.
const DefaultMemoryCapacity = 1000

// MemoryRepository keeps the newest records in process memory. Used when no
// database is configured.
type MemoryRepository struct {
	mu       sync.Mutex
	records  []*Record
	capacity int
}

func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

func (r *MemoryRepository) Save(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *rec
	for i, existing := range r.records {
		if existing.ID == rec.ID {
			r.records[i] = &cp
			return nil
		}
	}

	r.records = append(r.records, &cp)
	if len(r.records) > r.capacity {
		r.records = r.records[len(r.records)-r.capacity:]
	}
	return nil
}

func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}
	out := make([]*Record, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.records[i]
		out = append(out, &cp)
	}
	return out, nil
}

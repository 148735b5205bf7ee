package roster

import (
	"context"
	"sync"
)

// MemoryRepository keeps the roster in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []StudentRecord
}

// NewMemoryRepository returns an empty in-memory roster.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) indexOf(id string) int {
	for i, rec := range r.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) List(_ context.Context) ([]StudentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]StudentRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (StudentRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.records[i], true, nil
	}
	return StudentRecord{}, false, nil
}

func (r *MemoryRepository) Insert(_ context.Context, rec StudentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(rec.ID) >= 0 {
		return ErrDuplicateID
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *MemoryRepository) Replace(_ context.Context, rec StudentRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(rec.ID)
	if i < 0 {
		return false, nil
	}
	r.records[i] = rec
	return true, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	return true, nil
}

package roster

import (
	"context"
	"fmt"
	"sync"
)

// Repository persists student records in insertion order.
type Repository interface {
	List(ctx context.Context) ([]StudentRecord, error)
	Get(ctx context.Context, id string) (StudentRecord, bool, error)
	Insert(ctx context.Context, rec StudentRecord) error
	Replace(ctx context.Context, rec StudentRecord) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Store is the roster the dashboard reads from. Invalid input is rejected
// without touching the roster and unknown IDs are reported as not found,
// never as errors.
type Store struct {
	mu   sync.RWMutex
	repo Repository
}

// NewStore creates a store backed by a repository.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// List returns the roster in insertion order.
func (s *Store) List(ctx context.Context) ([]StudentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.List(ctx)
}

// Get looks a student up by ID.
func (s *Store) Get(ctx context.Context, id string) (StudentRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.Get(ctx, id)
}

// Add validates rec, assigns an ID when it has none, and appends it.
func (s *Store) Add(ctx context.Context, rec StudentRecord) (StudentRecord, error) {
	if err := Validate(rec); err != nil {
		return StudentRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		current, err := s.repo.List(ctx)
		if err != nil {
			return StudentRecord{}, err
		}
		rec.ID = NextID(current)
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return StudentRecord{}, err
	}
	return rec, nil
}

// Update applies patch to the student with the given ID. An edit that would
// leave the record invalid is rejected and the stored record is kept.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (StudentRecord, bool, error) {
	return s.modify(ctx, id, true, patch.Apply)
}

// SetAttendance marks a student present or absent.
func (s *Store) SetAttendance(ctx context.Context, id string, present bool) (StudentRecord, bool, error) {
	return s.modify(ctx, id, false, func(rec StudentRecord) StudentRecord {
		rec.Attendance = present
		return rec
	})
}

// ToggleAttendance flips a student's attendance.
func (s *Store) ToggleAttendance(ctx context.Context, id string) (StudentRecord, bool, error) {
	return s.modify(ctx, id, false, func(rec StudentRecord) StudentRecord {
		rec.Attendance = !rec.Attendance
		return rec
	})
}

// modify replaces the record under the store lock. Attendance changes skip
// form validation so that seed records without an email can still be marked.
func (s *Store) modify(ctx context.Context, id string, checked bool, change func(StudentRecord) StudentRecord) (StudentRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok, err := s.repo.Get(ctx, id)
	if err != nil || !ok {
		return StudentRecord{}, false, err
	}
	next := change(current)
	next.ID = current.ID
	if checked {
		if err := Validate(next); err != nil {
			return current, true, err
		}
	}
	if _, err := s.repo.Replace(ctx, next); err != nil {
		return StudentRecord{}, true, err
	}
	return next, true, nil
}

// Delete removes the student if present.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(ctx, id)
}

// Ingest bulk-loads seed records as they are, without form validation.
func (s *Store) Ingest(ctx context.Context, records []StudentRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range records {
		if err := s.repo.Insert(ctx, rec); err != nil {
			return i, fmt.Errorf("ingest %s: %w", rec.ID, err)
		}
	}
	return len(records), nil
}

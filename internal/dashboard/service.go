package dashboard

import (
	"context"
	"log"

	"rosterdesk/internal/cohort"
	"rosterdesk/internal/metrics"
	"rosterdesk/internal/queue"
	"rosterdesk/internal/roster"
)

// Service is the process-wide roster every view reads from. Accepted
// mutations are announced on the change queue and refresh the cohort gauges.
type Service struct {
	store   *roster.Store
	changes queue.Queue
	metrics *metrics.Recorder
}

// NewService wires a store to its change queue and metrics. Both q and rec
// may be nil.
func NewService(store *roster.Store, q queue.Queue, rec *metrics.Recorder) *Service {
	return &Service{store: store, changes: q, metrics: rec}
}

// Students lists the roster, optionally restricted to one cohort.
func (s *Service) Students(ctx context.Context, only *cohort.Cohort) ([]roster.StudentRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if only != nil {
		records = cohort.Filter(records, *only)
	}
	return records, nil
}

// Student looks one student up.
func (s *Service) Student(ctx context.Context, id string) (roster.StudentRecord, bool, error) {
	return s.store.Get(ctx, id)
}

// Stats aggregates the current roster.
func (s *Service) Stats(ctx context.Context) (cohort.Stats, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return cohort.Stats{}, err
	}
	stats := cohort.Aggregate(records)
	if s.metrics != nil {
		s.metrics.Observe(stats)
	}
	return stats, nil
}

// Add creates a student.
func (s *Service) Add(ctx context.Context, rec roster.StudentRecord) (roster.StudentRecord, error) {
	rec, err := s.store.Add(ctx, rec)
	if err != nil {
		return roster.StudentRecord{}, err
	}
	s.changed(ctx, queue.OpAdded, rec.ID)
	return rec, nil
}

// Update edits a student; found is false for unknown IDs.
func (s *Service) Update(ctx context.Context, id string, patch roster.Patch) (roster.StudentRecord, bool, error) {
	rec, found, err := s.store.Update(ctx, id, patch)
	if err == nil && found {
		s.changed(ctx, queue.OpUpdated, id)
	}
	return rec, found, err
}

// SetAttendance marks a student present or absent.
func (s *Service) SetAttendance(ctx context.Context, id string, present bool) (roster.StudentRecord, bool, error) {
	rec, found, err := s.store.SetAttendance(ctx, id, present)
	if err == nil && found {
		s.changed(ctx, queue.OpAttendance, id)
	}
	return rec, found, err
}

// ToggleAttendance flips a student's attendance.
func (s *Service) ToggleAttendance(ctx context.Context, id string) (roster.StudentRecord, bool, error) {
	rec, found, err := s.store.ToggleAttendance(ctx, id)
	if err == nil && found {
		s.changed(ctx, queue.OpAttendance, id)
	}
	return rec, found, err
}

// Delete removes a student; the result is false for unknown IDs.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err == nil && deleted {
		s.changed(ctx, queue.OpDeleted, id)
	}
	return deleted, err
}

// Seed ingests the initial roster when the store is still empty and reports
// how many records were loaded.
func (s *Service) Seed(ctx context.Context, records []roster.StudentRecord) (int, error) {
	current, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(current) > 0 {
		return 0, nil
	}
	n, err := s.store.Ingest(ctx, records)
	if n > 0 {
		s.refresh(ctx)
	}
	return n, err
}

func (s *Service) changed(ctx context.Context, op, id string) {
	if s.metrics != nil {
		s.metrics.Mutation(op)
	}
	if s.changes != nil {
		if err := s.changes.Publish(ctx, queue.NewMessage(op, id)); err != nil {
			log.Printf("queue publish %s %s failed: %v", op, id, err)
		}
	}
	s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	if _, err := s.Stats(ctx); err != nil {
		log.Printf("refresh cohort gauges failed: %v", err)
	}
}

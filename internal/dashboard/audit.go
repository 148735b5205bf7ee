package dashboard

import (
	"context"
	"log"

	"rosterdesk/internal/queue"
)

// Audit logs every roster change it receives together with the refreshed
// cohort summary. It returns when msgs is closed.
func Audit(ctx context.Context, msgs <-chan queue.Message, svc *Service) int {
	n := 0
	for msg := range msgs {
		n++
		if msg.Op == queue.OpDeleted {
			log.Printf("change %s: %s %s", msg.ID, msg.Op, msg.StudentID)
		} else if rec, ok, err := svc.Student(ctx, msg.StudentID); err != nil {
			log.Printf("change %s: fetch %s failed: %v", msg.ID, msg.StudentID, err)
			continue
		} else if !ok {
			log.Printf("change %s: %s %s (no longer on roster)", msg.ID, msg.Op, msg.StudentID)
		} else {
			log.Printf("change %s: %s %s %q attendance=%v", msg.ID, msg.Op, rec.ID, rec.Name, rec.Attendance)
		}

		stats, err := svc.Stats(ctx)
		if err != nil {
			log.Printf("change %s: aggregate failed: %v", msg.ID, err)
			continue
		}
		log.Printf("roster: %d/%d present, %d active onsite, %d unclassified",
			stats.Total.Present, stats.Total.Total, stats.ActiveOnsite, stats.Unclassified.Total)
	}
	return n
}

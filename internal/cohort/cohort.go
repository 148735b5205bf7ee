// Package cohort partitions a roster into the dashboard's attendance cohorts.
package cohort

import (
	"strings"

	"rosterdesk/internal/roster"
)

// MerithMarker identifies onsite part-time students placed through the
// partner college. Matching is case-sensitive.
const MerithMarker = "MERITH"

// Cohort names one partition of the roster.
type Cohort string

const (
	OnsiteFullTime       Cohort = "onsite_full_time"
	OnsitePartTimeMerith Cohort = "onsite_part_time_merith"
	OnsitePartTimeOther  Cohort = "onsite_part_time_other"
	RemoteCohort         Cohort = "remote"
	// Unclassified holds records no named cohort accepts, e.g. an onsite
	// student with a session other than Full Time or Part Time.
	Unclassified Cohort = "unclassified"
)

// All lists every cohort in display order.
var All = []Cohort{OnsiteFullTime, OnsitePartTimeMerith, OnsitePartTimeOther, RemoteCohort, Unclassified}

// Parse maps a cohort name back to its Cohort.
func Parse(s string) (Cohort, bool) {
	for _, c := range All {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Classify returns the single cohort rec belongs to.
func Classify(rec roster.StudentRecord) Cohort {
	switch rec.TrainingMode.Kind() {
	case roster.ModeRemote:
		return RemoteCohort
	case roster.ModeOnsite:
		switch rec.Session.Kind() {
		case roster.SessionFullTime:
			return OnsiteFullTime
		case roster.SessionPartTime:
			if strings.Contains(rec.Address, MerithMarker) {
				return OnsitePartTimeMerith
			}
			return OnsitePartTimeOther
		case roster.SessionOther:
			return Unclassified
		}
	case roster.ModeOther:
		return Unclassified
	}
	return Unclassified
}

// Count is a total/present pair.
type Count struct {
	Total   int `json:"total"`
	Present int `json:"present"`
}

func (c *Count) add(present bool) {
	c.Total++
	if present {
		c.Present++
	}
}

// Stats is the summary rendered by the dashboard cards.
type Stats struct {
	OnsiteFullTime       Count `json:"onsiteFullTime"`
	OnsitePartTimeMerith Count `json:"onsitePartTimeMerith"`
	OnsitePartTimeOther  Count `json:"onsitePartTimeOther"`
	Remote               Count `json:"remote"`
	Unclassified         Count `json:"unclassified"`
	// Total covers every record, including unclassified ones.
	Total        Count `json:"total"`
	ActiveOnsite int   `json:"activeOnsite"`
}

// Of returns the count for a cohort.
func (s Stats) Of(c Cohort) Count {
	switch c {
	case OnsiteFullTime:
		return s.OnsiteFullTime
	case OnsitePartTimeMerith:
		return s.OnsitePartTimeMerith
	case OnsitePartTimeOther:
		return s.OnsitePartTimeOther
	case RemoteCohort:
		return s.Remote
	case Unclassified:
		return s.Unclassified
	}
	return Count{}
}

// Aggregate counts records per cohort in a single pass. Records sharing an ID
// are counted separately.
func Aggregate(records []roster.StudentRecord) Stats {
	var s Stats
	for _, rec := range records {
		s.Total.add(rec.Attendance)
		switch Classify(rec) {
		case OnsiteFullTime:
			s.OnsiteFullTime.add(rec.Attendance)
		case OnsitePartTimeMerith:
			s.OnsitePartTimeMerith.add(rec.Attendance)
		case OnsitePartTimeOther:
			s.OnsitePartTimeOther.add(rec.Attendance)
		case RemoteCohort:
			s.Remote.add(rec.Attendance)
		case Unclassified:
			s.Unclassified.add(rec.Attendance)
		}
	}
	s.ActiveOnsite = s.OnsiteFullTime.Total + s.OnsitePartTimeMerith.Total + s.OnsitePartTimeOther.Total
	return s
}

// Filter keeps the records that belong to cohort c, preserving order.
func Filter(records []roster.StudentRecord, c Cohort) []roster.StudentRecord {
	out := make([]roster.StudentRecord, 0, len(records))
	for _, rec := range records {
		if Classify(rec) == c {
			out = append(out, rec)
		}
	}
	return out
}

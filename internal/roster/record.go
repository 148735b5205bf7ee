package roster

import "strings"

// TrainingMode is the delivery mode of a student. The raw label is kept so
// that unknown values round-trip unchanged.
type TrainingMode string

// Session is the commitment type of a student.
type Session string

const (
	Onsite TrainingMode = "Onsite"
	Remote TrainingMode = "Remote"

	FullTime Session = "Full Time"
	PartTime Session = "Part Time"
)

// ModeKind is the closed set of training modes the dashboard understands.
type ModeKind int

const (
	ModeOther ModeKind = iota
	ModeOnsite
	ModeRemote
)

// Kind matches the label exactly; anything else is ModeOther.
func (m TrainingMode) Kind() ModeKind {
	switch m {
	case Onsite:
		return ModeOnsite
	case Remote:
		return ModeRemote
	default:
		return ModeOther
	}
}

// SessionKind is the closed set of sessions the dashboard understands.
type SessionKind int

const (
	SessionOther SessionKind = iota
	SessionFullTime
	SessionPartTime
)

// Kind matches the label exactly; anything else is SessionOther.
func (s Session) Kind() SessionKind {
	switch s {
	case FullTime:
		return SessionFullTime
	case PartTime:
		return SessionPartTime
	default:
		return SessionOther
	}
}

// StudentRecord is one roster entry. JSON keys follow the labels used by the
// seed data and the dashboard forms.
type StudentRecord struct {
	ID             string       `json:"ID" db:"id"`
	Name           string       `json:"Name" db:"name" validate:"required"`
	Gender         string       `json:"Gender" db:"gender"`
	Tech           string       `json:"Tech" db:"tech"`
	TrainingStatus string       `json:"Training Status" db:"training_status"`
	TrainingMode   TrainingMode `json:"Training mode" db:"training_mode"`
	Session        Session      `json:"Session" db:"session"`
	Phone          string       `json:"Phone #" db:"phone"`
	Email          string       `json:"Email ID" db:"email" validate:"required"`
	Address        string       `json:"Address,omitempty" db:"address"`
	Attendance     bool         `json:"Attendance" db:"attendance"`
}

// Patch carries the fields of an edit. Nil fields are left untouched and the
// ID is never part of a patch.
type Patch struct {
	Name           *string       `json:"Name"`
	Gender         *string       `json:"Gender"`
	Tech           *string       `json:"Tech"`
	TrainingStatus *string       `json:"Training Status"`
	TrainingMode   *TrainingMode `json:"Training mode"`
	Session        *Session      `json:"Session"`
	Phone          *string       `json:"Phone #"`
	Email          *string       `json:"Email ID"`
	Address        *string       `json:"Address"`
	Attendance     *bool         `json:"Attendance"`
}

// Apply returns a copy of rec with the patch applied.
func (p Patch) Apply(rec StudentRecord) StudentRecord {
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Gender != nil {
		rec.Gender = *p.Gender
	}
	if p.Tech != nil {
		rec.Tech = *p.Tech
	}
	if p.TrainingStatus != nil {
		rec.TrainingStatus = *p.TrainingStatus
	}
	if p.TrainingMode != nil {
		rec.TrainingMode = *p.TrainingMode
	}
	if p.Session != nil {
		rec.Session = *p.Session
	}
	if p.Phone != nil {
		rec.Phone = *p.Phone
	}
	if p.Email != nil {
		rec.Email = *p.Email
	}
	if p.Address != nil {
		rec.Address = *p.Address
	}
	if p.Attendance != nil {
		rec.Attendance = *p.Attendance
	}
	return rec
}

// Initials builds the avatar text shown next to a student: the first letter
// of every word, upper-cased, or "N/A" for an empty name.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "N/A"
	}
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(string([]rune(w)[0])))
	}
	return b.String()
}

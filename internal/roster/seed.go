package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// text decodes from a JSON string or a JSON number; seed exports carry phone
// numbers and some IDs as bare numbers.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*t = text(n.String())
	return nil
}

type seedRecord struct {
	ID             text  `json:"ID"`
	Name           text  `json:"Name"`
	Gender         text  `json:"Gender"`
	Tech           text  `json:"Tech"`
	TrainingStatus text  `json:"Training Status"`
	TrainingMode   text  `json:"Training mode"`
	Session        text  `json:"Session"`
	Phone          text  `json:"Phone #"`
	Email          text  `json:"Email ID"`
	Address        text  `json:"Address"`
	Attendance     *bool `json:"Attendance"`
}

func (s seedRecord) record() StudentRecord {
	rec := StudentRecord{
		ID:             string(s.ID),
		Name:           string(s.Name),
		Gender:         string(s.Gender),
		Tech:           string(s.Tech),
		TrainingStatus: string(s.TrainingStatus),
		TrainingMode:   TrainingMode(s.TrainingMode),
		Session:        Session(s.Session),
		Phone:          string(s.Phone),
		Email:          string(s.Email),
		Address:        string(s.Address),
	}
	if s.Attendance != nil {
		rec.Attendance = *s.Attendance
	}
	return rec
}

// DecodeRecord reads one record in the seed shape, so numeric IDs and phone
// numbers are accepted and a missing attendance is false.
func DecodeRecord(r io.Reader) (StudentRecord, error) {
	var s seedRecord
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return StudentRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return s.record(), nil
}

// LoadSeed decodes the initial roster. Missing attendance becomes false,
// records without an ID get the next generated one that no record in the
// file claims, and a repeated explicit ID fails the whole load.
func LoadSeed(r io.Reader) ([]StudentRecord, error) {
	var raw []seedRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	records := make([]StudentRecord, len(raw))
	explicit := make(map[string]struct{}, len(raw))
	for i, s := range raw {
		records[i] = s.record()
		id := records[i].ID
		if id == "" {
			continue
		}
		if _, dup := explicit[id]; dup {
			return nil, fmt.Errorf("seed record %d (%s): %w", i, id, ErrDuplicateID)
		}
		explicit[id] = struct{}{}
	}

	out := make([]StudentRecord, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = NextID(out)
			for _, taken := explicit[rec.ID]; taken; _, taken = explicit[rec.ID] {
				rec.ID = NextID(append(out, StudentRecord{ID: rec.ID}))
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadSeedFile reads the seed roster from path.
func LoadSeedFile(path string) ([]StudentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSeed(f)
}

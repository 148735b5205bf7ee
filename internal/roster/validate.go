package roster

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidRecord is returned when a record lacks a name or an email.
	ErrInvalidRecord = errors.New("invalid student record")
	// ErrDuplicateID is returned when an explicit ID is already in the roster.
	ErrDuplicateID = errors.New("student id already exists")
)

const idPrefix = "AST"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their external labels
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError lists the fields that made a record invalid.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s required", ErrInvalidRecord, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRecord }

// Validate checks the fields the store requires before accepting a record.
func Validate(rec StudentRecord) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// NextID derives the identifier for a new record from the last one in the
// roster, e.g. AST0041 -> AST0042. When the last ID carries no numeric suffix
// the highest generated suffix is used instead. IDs already taken are skipped.
func NextID(records []StudentRecord) string {
	taken := make(map[string]struct{}, len(records))
	for _, r := range records {
		taken[r.ID] = struct{}{}
	}

	n := 0
	if len(records) > 0 {
		if last, ok := idNumber(records[len(records)-1].ID); ok {
			n = last
		} else {
			for _, r := range records {
				if v, ok := idNumber(r.ID); ok && v > n {
					n = v
				}
			}
		}
	}

	for {
		n++
		id := fmt.Sprintf("%s%04d", idPrefix, n)
		if _, dup := taken[id]; !dup {
			return id
		}
	}
}

func idNumber(id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, idPrefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

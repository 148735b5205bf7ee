// Package catalog keeps the editable technologies summary: how many full-time
// and part-time students follow each technology.
package catalog

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmptyTech is returned when a row has no technology name.
	ErrEmptyTech = errors.New("technology name required")
	// ErrDuplicateTech is returned when a new row's slug is already taken.
	ErrDuplicateTech = errors.New("technology already listed")
	// ErrNotFound is returned when editing an unknown row.
	ErrNotFound = errors.New("technology not found")
)

// Row is one line of the summary table.
type Row struct {
	ID       string `json:"id"`
	Tech     string `json:"tech"`
	FullTime int    `json:"fullTime"`
	PartTime int    `json:"partTime"`
}

// Totals sums both columns.
type Totals struct {
	FullTime int `json:"fullTime"`
	PartTime int `json:"partTime"`
	All      int `json:"all"`
}

// DefaultRows is the summary the program starts with.
func DefaultRows() []Row {
	return []Row{
		{ID: "html-css", Tech: "HTML, CSS", FullTime: 2, PartTime: 12},
		{ID: "js", Tech: "JavaScript", FullTime: 1, PartTime: 10},
		{ID: "bootstrap", Tech: "Bootstrap", FullTime: 0, PartTime: 4},
		{ID: "wordpress", Tech: "WordPress", FullTime: 0, PartTime: 3},
		{ID: "react", Tech: "React.js", FullTime: 0, PartTime: 10},
		{ID: "python", Tech: "Python", FullTime: 0, PartTime: 0},
		{ID: "django", Tech: "Django", FullTime: 0, PartTime: 0},
	}
}

// Catalog is safe for concurrent use.
type Catalog struct {
	mu   sync.RWMutex
	rows []Row
}

// New creates a catalog holding a copy of rows.
func New(rows []Row) *Catalog {
	c := &Catalog{rows: make([]Row, len(rows))}
	copy(c.rows, rows)
	return c
}

// List returns the rows in display order.
func (c *Catalog) List() []Row {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Row, len(c.rows))
	copy(out, c.rows)
	return out
}

// Add appends a technology, deriving its ID from the name.
func (c *Catalog) Add(tech string, fullTime, partTime int) (Row, error) {
	tech = strings.TrimSpace(tech)
	if tech == "" {
		return Row{}, ErrEmptyTech
	}
	row := Row{ID: Slug(tech), Tech: tech, FullTime: clamp(fullTime), PartTime: clamp(partTime)}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(row.ID) >= 0 {
		return Row{}, ErrDuplicateTech
	}
	c.rows = append(c.rows, row)
	return row, nil
}

// Update replaces the name and counts of an existing row; the ID is kept.
func (c *Catalog) Update(id string, tech string, fullTime, partTime int) (Row, error) {
	tech = strings.TrimSpace(tech)
	if tech == "" {
		return Row{}, ErrEmptyTech
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return Row{}, ErrNotFound
	}
	c.rows[i] = Row{ID: id, Tech: tech, FullTime: clamp(fullTime), PartTime: clamp(partTime)}
	return c.rows[i], nil
}

// Totals sums the full-time and part-time columns.
func (c *Catalog) Totals() Totals {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var t Totals
	for _, r := range c.rows {
		t.FullTime += r.FullTime
		t.PartTime += r.PartTime
	}
	t.All = t.FullTime + t.PartTime
	return t
}

func (c *Catalog) indexOf(id string) int {
	for i, r := range c.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reDigits   = regexp.MustCompile(`[^0-9]`)
)

// Slug lower-cases s, strips diacritics and joins the remaining alphanumeric
// runs with '-'. "React.js" becomes "react-js"; a name with no latin
// alphanumerics falls back to "tech".
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	slug := strings.Trim(reNonAlnum.ReplaceAllString(b.String(), "-"), "-")
	if slug == "" {
		return "tech"
	}
	return slug
}

// ParseCount reads a count typed into the summary form: every non-digit is
// dropped and an empty or oversized result counts as zero.
func ParseCount(s string) int {
	n, err := strconv.Atoi(reDigits.ReplaceAllString(s, ""))
	if err != nil {
		return 0
	}
	return n
}

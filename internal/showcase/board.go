package showcase

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyMessage is returned when a dedication lacks a title or text.
var ErrEmptyMessage = errors.New("dedication needs a title and a text")

// Dedication is a motivational message pinned to the board.
type Dedication struct {
	ID        string    `yaml:"-" json:"id"`
	Title     string    `yaml:"title" json:"title"`
	Text      string    `yaml:"text" json:"text"`
	CreatedAt time.Time `yaml:"-" json:"createdAt"`
}

// Board holds dedications in posting order.
type Board struct {
	mu    sync.RWMutex
	items []Dedication
	now   func() time.Time
}

// NewBoard creates a board pre-filled with seed, assigning ids as needed.
func NewBoard(seed []Dedication) *Board {
	b := &Board{now: time.Now}
	for _, d := range seed {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if d.CreatedAt.IsZero() {
			d.CreatedAt = b.now().UTC()
		}
		b.items = append(b.items, d)
	}
	return b
}

// List returns every dedication, oldest first.
func (b *Board) List() []Dedication {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Dedication, len(b.items))
	copy(out, b.items)
	return out
}

// Add pins a new message.
func (b *Board) Add(title, text string) (Dedication, error) {
	title, text = strings.TrimSpace(title), strings.TrimSpace(text)
	if title == "" || text == "" {
		return Dedication{}, ErrEmptyMessage
	}
	d := Dedication{ID: uuid.NewString(), Title: title, Text: text, CreatedAt: b.now().UTC()}

	b.mu.Lock()
	b.items = append(b.items, d)
	b.mu.Unlock()
	return d, nil
}

package timetable

import (
	"time"

	"github.com/google/uuid"
)

// TBDPlaceholder fills teacher/room when the creator leaves them unset.
const TBDPlaceholder = "TBD"

// Weekdays is the canonical day ordering used for span rendering. The
// active weekday list of a schedule type is always a prefix-contiguous
// slice of this ordering (Monday..Friday or Monday..Saturday).
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ChangeRecord is one field-level before/after entry in an event's audit
// trail.
type ChangeRecord struct {
	Field string    `json:"field"`
	From  string    `json:"from"`
	To    string    `json:"to"`
	By    string    `json:"by"`
	At    time.Time `json:"at"`
}

// Event is a single scheduled block on the weekly grid. Start/End are
// clock strings in the grid's wire format; Days is a non-empty set of
// weekday names, contiguous in the canonical ordering when the event is
// rendered as one spanning block.
type Event struct {
	ID         string         `json:"id"`
	Days       []string       `json:"days"`
	Start      string         `json:"start"`
	End        string         `json:"end"`
	Subject    string         `json:"subject"`
	Teacher    string         `json:"teacher"`
	Room       string         `json:"room"`
	CreatedBy  string         `json:"createdBy"`
	CreatedAt  time.Time      `json:"createdAt"`
	ModifiedBy string         `json:"modifiedBy,omitempty"`
	ModifiedAt *time.Time     `json:"modifiedAt,omitempty"`
	Changes    []ChangeRecord `json:"changes,omitempty"`
}

// NewEventID returns a fresh opaque event identifier.
func NewEventID() string { return uuid.New().String() }

// HasDay reports whether the event covers the given weekday.
func (e Event) HasDay(day string) bool {
	for _, d := range e.Days {
		if d == day {
			return true
		}
	}
	return false
}

// sameStringSet compares two day lists element-wise. Day sets are kept in
// canonical order, so positional comparison is enough.
func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// matches reports full-tuple equality used for duplicate suppression.
// Teacher and room take part on purpose: two events on the same cell with
// different subjects are allowed to coexist.
func (e Event) matches(other Event) bool {
	return sameStringSet(e.Days, other.Days) &&
		e.Start == other.Start &&
		e.End == other.End &&
		e.Subject == other.Subject &&
		e.Teacher == other.Teacher &&
		e.Room == other.Room
}

// clone returns a deep copy so store mutations never alias caller slices.
func (e Event) clone() Event {
	dup := e
	dup.Days = append([]string(nil), e.Days...)
	dup.Changes = append([]ChangeRecord(nil), e.Changes...)
	if e.ModifiedAt != nil {
		t := *e.ModifiedAt
		dup.ModifiedAt = &t
	}
	return dup
}

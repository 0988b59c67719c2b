package timetable

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AllClassesSentinel stands in for the class segment of a storage key
// when no specific class is selected.
const AllClassesSentinel = "all"

// Meta identifies which view a persisted document belongs to.
type Meta struct {
	SelectedClass string `json:"selectedClass"`
	ScheduleType  string `json:"scheduleType"`
	SchoolYear    string `json:"schoolYear"`
	Semester      string `json:"semester"`
}

// Document is the persistence wire format for one grid view: the full
// event list plus its composite key metadata and save timestamp.
type Document struct {
	Meta    Meta      `json:"meta"`
	Events  []Event   `json:"events"`
	SavedAt time.Time `json:"savedAt"`
}

// StorageKey builds the deterministic composite key a document is stored
// under. An empty class collapses to the all-classes sentinel.
func StorageKey(class, schoolYear, semester string) string {
	c := strings.TrimSpace(class)
	if c == "" {
		c = AllClassesSentinel
	}
	return fmt.Sprintf("schedule-events-%s-%s-%s", c, strings.TrimSpace(schoolYear), strings.TrimSpace(semester))
}

// StorageKey returns the composite key this document is stored under.
func (d Document) StorageKey() string {
	return StorageKey(d.Meta.SelectedClass, d.Meta.SchoolYear, d.Meta.Semester)
}

// eventJSON accepts both the current shape and legacy records that carry
// a single "day" string instead of "days".
type eventJSON struct {
	Event
	Day string `json:"day,omitempty"`
}

// documentJSON mirrors Document with the lenient event shape.
type documentJSON struct {
	Meta    Meta        `json:"meta"`
	Events  []eventJSON `json:"events"`
	SavedAt time.Time   `json:"savedAt"`
}

// DecodeDocument parses a persisted document, upconverting legacy events:
// a singular day field becomes a one-element day set, and missing
// id/createdBy/createdAt are synthesized with safe defaults so old
// records load without errors.
func DecodeDocument(data []byte, now time.Time) (Document, error) {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("decode schedule document: %w", err)
	}

	doc := Document{Meta: raw.Meta, SavedAt: raw.SavedAt}
	doc.Events = make([]Event, 0, len(raw.Events))
	for _, re := range raw.Events {
		e := re.Event
		if len(e.Days) == 0 && re.Day != "" {
			e.Days = []string{re.Day}
		}
		if len(e.Days) == 0 {
			// an event with no day at all cannot be placed; skip the row
			continue
		}
		if e.ID == "" {
			e.ID = NewEventID()
		}
		if e.CreatedBy == "" {
			e.CreatedBy = "unknown"
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		if e.Teacher == "" {
			e.Teacher = TBDPlaceholder
		}
		if e.Room == "" {
			e.Room = TBDPlaceholder
		}
		doc.Events = append(doc.Events, e)
	}
	return doc, nil
}

// EncodeDocument serializes a document for storage.
func EncodeDocument(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

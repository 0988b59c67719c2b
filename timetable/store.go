package timetable

import (
	"fmt"
	"strings"
	"time"
)

// EventSet holds the scheduled events for the active
// (class, school year, semester) view. Switching the view key swaps the
// whole set; all mutations are synchronous and apply fully before the
// next grid render. The set is not safe for concurrent writers — the
// server serializes mutations per key.
type EventSet struct {
	events []Event
}

// NewEventSet wraps an existing event list (e.g. a loaded document).
// Events from external imports are accepted as-is; the per-cell
// occupancy invariant is only enforced on the creation path.
func NewEventSet(events []Event) *EventSet {
	set := &EventSet{events: make([]Event, 0, len(events))}
	for _, e := range events {
		set.events = append(set.events, e.clone())
	}
	return set
}

// Events returns a copy of the current event list.
func (s *EventSet) Events() []Event {
	out := make([]Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.clone())
	}
	return out
}

// Len returns the number of events in the set.
func (s *EventSet) Len() int { return len(s.events) }

// Find returns the event with the given id.
func (s *EventSet) Find(id string) (Event, error) {
	for _, e := range s.events {
		if e.ID == id {
			return e.clone(), nil
		}
	}
	return Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
}

// EventDetails carries the descriptive fields attached to candidates at
// creation time.
type EventDetails struct {
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
	Room    string `json:"room"`
}

// CreateResult reports what an insert batch actually did.
type CreateResult struct {
	Created    []Event        `json:"created"`
	Duplicates int            `json:"duplicates"`
	Rejections []DayRejection `json:"rejections,omitempty"`
}

// CreateFromSelection runs the full creation path: selection translation,
// break exclusion, duplicate suppression and insertion. Subject is
// required; teacher and room default to the TBD placeholder. An exact
// duplicate of an existing event is silently dropped, never inserted
// twice.
func (s *EventSet) CreateFromSelection(sel Selection, tl Timeline, ex Exceptions, mergeDays bool, details EventDetails, actor string, now time.Time) (CreateResult, error) {
	if strings.TrimSpace(details.Subject) == "" {
		return CreateResult{}, fmt.Errorf("%w: subject is required", ErrIncompleteForm)
	}
	candidates, rejections, err := ComputeCandidates(sel, tl, ex, mergeDays)
	if err != nil {
		return CreateResult{}, err
	}

	teacher := strings.TrimSpace(details.Teacher)
	if teacher == "" {
		teacher = TBDPlaceholder
	}
	room := strings.TrimSpace(details.Room)
	if room == "" {
		room = TBDPlaceholder
	}

	result := CreateResult{Rejections: rejections}
	for _, cand := range candidates {
		event := Event{
			ID:        NewEventID(),
			Days:      cand.Days,
			Start:     cand.Start,
			End:       cand.End,
			Subject:   strings.TrimSpace(details.Subject),
			Teacher:   teacher,
			Room:      room,
			CreatedBy: actor,
			CreatedAt: now,
		}
		if s.hasDuplicate(event) {
			result.Duplicates++
			continue
		}
		s.events = append(s.events, event)
		result.Created = append(result.Created, event.clone())
	}
	return result, nil
}

func (s *EventSet) hasDuplicate(candidate Event) bool {
	for _, e := range s.events {
		if e.matches(candidate) {
			return true
		}
	}
	return false
}

// EventPatch is a full-replace edit of an event's user-editable fields.
// The day set is re-derived only from the explicit day selection in the
// patch, never inferred.
type EventPatch struct {
	Days    []string `json:"days"`
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Subject string   `json:"subject"`
	Teacher string   `json:"teacher"`
	Room    string   `json:"room"`
}

// ApplyEdit replaces an event's fields and appends one audit record per
// field that actually changed. An edit that changes nothing is a no-op:
// no change records, no modifiedAt bump, identity preserved.
func (s *EventSet) ApplyEdit(id string, patch EventPatch, actor string, now time.Time) (Event, error) {
	if strings.TrimSpace(patch.Subject) == "" || patch.Start == "" || patch.End == "" {
		return Event{}, fmt.Errorf("%w: subject, start and end are required", ErrIncompleteForm)
	}
	if len(patch.Days) == 0 {
		return Event{}, fmt.Errorf("%w: at least one day is required", ErrIncompleteForm)
	}
	if _, err := ParseClock(patch.Start); err != nil {
		return Event{}, err
	}
	if _, err := ParseClock(patch.End); err != nil {
		return Event{}, err
	}

	idx := -1
	for i := range s.events {
		if s.events[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}

	teacher := strings.TrimSpace(patch.Teacher)
	if teacher == "" {
		teacher = TBDPlaceholder
	}
	room := strings.TrimSpace(patch.Room)
	if room == "" {
		room = TBDPlaceholder
	}

	current := &s.events[idx]
	changes := diffFields(*current, EventPatch{
		Days:    patch.Days,
		Start:   patch.Start,
		End:     patch.End,
		Subject: strings.TrimSpace(patch.Subject),
		Teacher: teacher,
		Room:    room,
	}, actor, now)
	if len(changes) == 0 {
		return current.clone(), nil
	}

	current.Days = append([]string(nil), patch.Days...)
	current.Start = patch.Start
	current.End = patch.End
	current.Subject = strings.TrimSpace(patch.Subject)
	current.Teacher = teacher
	current.Room = room
	current.ModifiedBy = actor
	ts := now
	current.ModifiedAt = &ts
	current.Changes = append(current.Changes, changes...)

	return current.clone(), nil
}

// Delete removes an event by id.
func (s *EventSet) Delete(id string) error {
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrEventNotFound, id)
}

// Reset drops every event in the set.
func (s *EventSet) Reset() {
	s.events = s.events[:0]
}

package timetable

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func TestCreateFromSelectionSingleDay(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)

	res, err := set.CreateFromSelection(
		Selection{Days: []string{"Monday"}, FromIndex: 3, ToIndex: 4},
		tl, nil, false,
		EventDetails{Subject: "Mathematics"},
		"registrar", testNow,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Created) != 1 {
		t.Fatalf("expected 1 event, got %d", len(res.Created))
	}
	e := res.Created[0]
	if e.ID == "" {
		t.Fatal("event must get an id at creation")
	}
	if e.Teacher != TBDPlaceholder || e.Room != TBDPlaceholder {
		t.Fatalf("unset teacher/room must default to %s, got %q/%q", TBDPlaceholder, e.Teacher, e.Room)
	}
	if e.CreatedBy != "registrar" || !e.CreatedAt.Equal(testNow) {
		t.Fatalf("unexpected provenance: %s / %v", e.CreatedBy, e.CreatedAt)
	}
	if len(e.Changes) != 0 {
		t.Fatal("creation must not populate the change log")
	}
}

func TestCreateFromSelectionRequiresSubject(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)

	_, err := set.CreateFromSelection(
		Selection{Days: []string{"Monday"}, FromIndex: 0, ToIndex: 0},
		tl, nil, false, EventDetails{}, "registrar", testNow,
	)
	if !errors.Is(err, ErrIncompleteForm) {
		t.Fatalf("expected incomplete form error, got %v", err)
	}
}

func TestCreateFromSelectionBreakLeavesSetUnchanged(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)

	_, err := set.CreateFromSelection(
		Selection{Days: []string{"Monday"}, FromIndex: 1, ToIndex: 3},
		tl, nil, false, EventDetails{Subject: "Science"}, "registrar", testNow,
	)
	if !errors.Is(err, ErrBreakSlotConflict) {
		t.Fatalf("expected break conflict, got %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("rejected creation must leave the set unchanged, have %d events", set.Len())
	}
}

func TestCreateFromSelectionSuppressesDuplicates(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)
	sel := Selection{Days: []string{"Monday"}, FromIndex: 3, ToIndex: 4}
	details := EventDetails{Subject: "English", Teacher: "Cruz", Room: "201"}

	if _, err := set.CreateFromSelection(sel, tl, nil, false, details, "registrar", testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := set.CreateFromSelection(sel, tl, nil, false, details, "registrar", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Created) != 0 || res.Duplicates != 1 {
		t.Fatalf("exact duplicate must be dropped silently, created=%d duplicates=%d", len(res.Created), res.Duplicates)
	}
	if set.Len() != 1 {
		t.Fatalf("expected 1 event, got %d", set.Len())
	}
}

func TestCreateFromSelectionAllowsDifferentSubjectSameCell(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)
	sel := Selection{Days: []string{"Monday"}, FromIndex: 3, ToIndex: 4}

	if _, err := set.CreateFromSelection(sel, tl, nil, false, EventDetails{Subject: "English"}, "registrar", testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := set.CreateFromSelection(sel, tl, nil, false, EventDetails{Subject: "Filipino"}, "registrar", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Created) != 1 {
		t.Fatal("a different subject on the same cell is allowed to coexist")
	}
}

func TestCreateFromSelectionMergedDays(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)
	days := []string{"Monday", "Tuesday", "Wednesday"}

	res, err := set.CreateFromSelection(
		Selection{Days: days, FromIndex: 3, ToIndex: 4},
		tl, nil, true, EventDetails{Subject: "PE"}, "registrar", testNow,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Created) != 1 {
		t.Fatalf("merged mode must create exactly one event, got %d", len(res.Created))
	}
	if !sameStringSet(res.Created[0].Days, days) {
		t.Fatalf("expected days %v, got %v", days, res.Created[0].Days)
	}
}

func TestCreateFromSelectionPerDayFanOut(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)
	days := []string{"Monday", "Tuesday", "Wednesday"}

	res, err := set.CreateFromSelection(
		Selection{Days: days, FromIndex: 3, ToIndex: 4},
		tl, nil, false, EventDetails{Subject: "PE"}, "registrar", testNow,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Created) != 3 {
		t.Fatalf("per-day mode must create one event per day, got %d", len(res.Created))
	}
}

func TestApplyEditRecordsChanges(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)
	res, err := set.CreateFromSelection(
		Selection{Days: []string{"Monday"}, FromIndex: 3, ToIndex: 4},
		tl, nil, false, EventDetails{Subject: "Mathematics", Teacher: "Cruz", Room: "201"},
		"registrar", testNow,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created := res.Created[0]

	editTime := testNow.Add(30 * time.Minute)
	updated, err := set.ApplyEdit(created.ID, EventPatch{
		Days:    []string{"Monday"},
		Start:   created.Start,
		End:     created.End,
		Subject: "Mathematics",
		Teacher: "Reyes",
		Room:    "201",
	}, "admin", editTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updated.Changes) != 1 {
		t.Fatalf("expected exactly one change record, got %d", len(updated.Changes))
	}
	rec := updated.Changes[0]
	if rec.Field != "teacher" || rec.From != "Cruz" || rec.To != "Reyes" {
		t.Fatalf("unexpected change record: %+v", rec)
	}
	if rec.By != "admin" || !rec.At.Equal(editTime) {
		t.Fatalf("unexpected actor/timestamp: %s %v", rec.By, rec.At)
	}
	if updated.ModifiedBy != "admin" || updated.ModifiedAt == nil || !updated.ModifiedAt.Equal(editTime) {
		t.Fatal("edit must stamp modifiedBy/modifiedAt")
	}
}

func TestApplyEditNoChangeIsNoOp(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)
	res, err := set.CreateFromSelection(
		Selection{Days: []string{"Monday"}, FromIndex: 3, ToIndex: 4},
		tl, nil, false, EventDetails{Subject: "Mathematics", Teacher: "Cruz", Room: "201"},
		"registrar", testNow,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created := res.Created[0]

	same, err := set.ApplyEdit(created.ID, EventPatch{
		Days:    []string{"Monday"},
		Start:   created.Start,
		End:     created.End,
		Subject: "Mathematics",
		Teacher: "Cruz",
		Room:    "201",
	}, "admin", testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(same.Changes) != 0 {
		t.Fatalf("no-op edit must append no change records, got %d", len(same.Changes))
	}
	if same.ModifiedAt != nil {
		t.Fatal("no-op edit must not bump modifiedAt")
	}
}

func TestApplyEditAccumulatesHistory(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)
	res, err := set.CreateFromSelection(
		Selection{Days: []string{"Monday"}, FromIndex: 3, ToIndex: 4},
		tl, nil, false, EventDetails{Subject: "Mathematics"}, "registrar", testNow,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := res.Created[0].ID
	start := res.Created[0].Start
	end := res.Created[0].End

	patch := EventPatch{Days: []string{"Monday"}, Start: start, End: end, Subject: "Physics", Teacher: "Cruz", Room: "Lab 1"}
	if _, err := set.ApplyEdit(id, patch, "admin", testNow.Add(time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patch.Subject = "Chemistry"
	updated, err := set.ApplyEdit(id, patch, "admin", testNow.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// first edit: subject, teacher, room changed; second edit: subject only
	if len(updated.Changes) != 4 {
		t.Fatalf("history must be append-only, expected 4 records got %d", len(updated.Changes))
	}
	last := updated.Changes[len(updated.Changes)-1]
	if last.Field != "subject" || last.From != "Physics" || last.To != "Chemistry" {
		t.Fatalf("unexpected last record: %+v", last)
	}
}

func TestApplyEditUnknownEvent(t *testing.T) {
	set := NewEventSet(nil)
	_, err := set.ApplyEdit("missing", EventPatch{
		Days: []string{"Monday"}, Start: "8:00 AM", End: "9:00 AM", Subject: "Math",
	}, "admin", testNow)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteAndReset(t *testing.T) {
	tl := schoolTimeline(t)
	set := NewEventSet(nil)
	res, err := set.CreateFromSelection(
		Selection{Days: []string{"Monday", "Tuesday"}, FromIndex: 3, ToIndex: 3},
		tl, nil, false, EventDetails{Subject: "Math"}, "registrar", testNow,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", set.Len())
	}

	if err := set.Delete(res.Created[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("expected 1 event after delete, got %d", set.Len())
	}
	if err := set.Delete("missing"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	set.Reset()
	if set.Len() != 0 {
		t.Fatal("reset must clear the set")
	}
}

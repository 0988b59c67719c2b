package timetable

import (
	"errors"
	"testing"
)

func schoolTimeline(t *testing.T) Timeline {
	t.Helper()
	slots, err := GenerateSlotsWithBreaks("7:45 AM", "5:15 PM", 60, []BreakSpec{
		{Start: "9:45 AM", End: "10:00 AM", Step: 15, Label: "Morning Recess"},
		{Start: "12:00 PM", End: "1:00 PM", Step: 60, Label: "Lunch"},
	})
	if err != nil {
		t.Fatalf("failed to build timeline: %v", err)
	}
	return Timeline(slots)
}

func TestComputeCandidatesSingleDay(t *testing.T) {
	tl := schoolTimeline(t)

	candidates, rejections, err := ComputeCandidates(Selection{
		Days:      []string{"Monday"},
		FromIndex: 3,
		ToIndex:   4,
	}, tl, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rejections) != 0 {
		t.Fatalf("unexpected rejections: %v", rejections)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if len(c.Days) != 1 || c.Days[0] != "Monday" {
		t.Fatalf("unexpected days: %v", c.Days)
	}
	if c.Start != tl[3].StartLabel() || c.End != tl[4].EndLabel() {
		t.Fatalf("candidate should cover slots 3..4, got %s - %s", c.Start, c.End)
	}
}

func TestComputeCandidatesReversedIndices(t *testing.T) {
	tl := schoolTimeline(t)

	forward, _, err := ComputeCandidates(Selection{Days: []string{"Monday"}, FromIndex: 3, ToIndex: 4}, tl, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backward, _, err := ComputeCandidates(Selection{Days: []string{"Monday"}, FromIndex: 4, ToIndex: 3}, tl, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forward[0].Start != backward[0].Start || forward[0].End != backward[0].End {
		t.Fatal("drag direction must not change the resulting range")
	}
}

func TestComputeCandidatesRejectsBreakRange(t *testing.T) {
	tl := schoolTimeline(t)

	// slot 2 is the morning recess
	_, _, err := ComputeCandidates(Selection{Days: []string{"Monday"}, FromIndex: 1, ToIndex: 3}, tl, nil, false)
	if !errors.Is(err, ErrBreakSlotConflict) {
		t.Fatalf("expected break conflict, got %v", err)
	}
}

func TestComputeCandidatesBreakException(t *testing.T) {
	tl := schoolTimeline(t)
	ex := Exceptions{"Friday": true}

	candidates, _, err := ComputeCandidates(Selection{Days: []string{"Friday"}, FromIndex: 1, ToIndex: 3}, tl, ex, false)
	if err != nil {
		t.Fatalf("expected excepted day to allow break cells, got %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
}

func TestComputeCandidatesMergedFanOut(t *testing.T) {
	tl := schoolTimeline(t)
	days := []string{"Monday", "Tuesday", "Wednesday"}

	candidates, rejections, err := ComputeCandidates(Selection{Days: days, FromIndex: 3, ToIndex: 4}, tl, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rejections) != 0 {
		t.Fatalf("unexpected rejections: %v", rejections)
	}
	if len(candidates) != 1 {
		t.Fatalf("merged fan-out should yield one candidate, got %d", len(candidates))
	}
	if !sameStringSet(candidates[0].Days, days) {
		t.Fatalf("expected days %v, got %v", days, candidates[0].Days)
	}
}

func TestComputeCandidatesPerDayFanOut(t *testing.T) {
	tl := schoolTimeline(t)
	days := []string{"Monday", "Tuesday", "Wednesday"}

	candidates, rejections, err := ComputeCandidates(Selection{Days: days, FromIndex: 3, ToIndex: 4}, tl, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rejections) != 0 {
		t.Fatalf("unexpected rejections: %v", rejections)
	}
	if len(candidates) != 3 {
		t.Fatalf("expected one candidate per day, got %d", len(candidates))
	}
	for i, c := range candidates {
		if len(c.Days) != 1 || c.Days[0] != days[i] {
			t.Fatalf("candidate %d has days %v", i, c.Days)
		}
	}
}

func TestComputeCandidatesPerDayPartialCreation(t *testing.T) {
	tl := schoolTimeline(t)
	// Friday is excepted, so a range touching the recess succeeds there
	// while the other days are rejected individually
	ex := Exceptions{"Friday": true}
	days := []string{"Wednesday", "Thursday", "Friday"}

	candidates, rejections, err := ComputeCandidates(Selection{Days: days, FromIndex: 1, ToIndex: 3}, tl, ex, false)
	if err != nil {
		t.Fatalf("per-day mode must not fail atomically: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Days[0] != "Friday" {
		t.Fatalf("expected only Friday to survive, got %v", candidates)
	}
	if len(rejections) != 2 {
		t.Fatalf("expected 2 rejections, got %d", len(rejections))
	}
}

func TestComputeCandidatesEmptySelection(t *testing.T) {
	tl := schoolTimeline(t)
	if _, _, err := ComputeCandidates(Selection{}, tl, nil, false); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected empty selection error, got %v", err)
	}
	if _, _, err := ComputeCandidates(Selection{Days: []string{"Monday"}, FromIndex: 0, ToIndex: 99}, tl, nil, false); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected out-of-range error, got %v", err)
	}
}

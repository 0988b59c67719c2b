package timetable

import "testing"

func hourlyTimeline(t *testing.T) Timeline {
	t.Helper()
	slots, err := GenerateSlots("8:00 AM", "12:00 PM", 60)
	if err != nil {
		t.Fatalf("failed to build timeline: %v", err)
	}
	return Timeline(slots)
}

func mustMinutes(t *testing.T, clock string) int {
	t.Helper()
	m, err := ParseClock(clock)
	if err != nil {
		t.Fatalf("bad clock %q: %v", clock, err)
	}
	return m
}

func TestIndexOfStart(t *testing.T) {
	tl := hourlyTimeline(t)

	tests := []struct {
		name  string
		clock string
		want  int
	}{
		{name: "exact boundary", clock: "9:00 AM", want: 1},
		{name: "inside slot", clock: "9:30 AM", want: 1},
		{name: "before first slot", clock: "7:15 AM", want: 0},
		{name: "after last slot", clock: "1:00 PM", want: 3},
		{name: "first boundary", clock: "8:00 AM", want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := tl.IndexOfStart(mustMinutes(t, tc.clock))
			if got != tc.want {
				t.Fatalf("expected index %d, got %d", tc.want, got)
			}
		})
	}
}

func TestIndexOfEnd(t *testing.T) {
	tl := hourlyTimeline(t)

	tests := []struct {
		name  string
		clock string
		want  int
	}{
		{name: "exact end boundary", clock: "10:00 AM", want: 1},
		{name: "inside slot", clock: "10:30 AM", want: 2},
		{name: "last boundary", clock: "12:00 PM", want: 3},
		// ending when a slot starts means the event occupies through the
		// previous slot
		{name: "start boundary resolves to previous", clock: "11:00 AM", want: 2},
		{name: "first start boundary floors at zero", clock: "8:00 AM", want: 0},
		{name: "after last slot", clock: "2:00 PM", want: 3},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := tl.IndexOfEnd(mustMinutes(t, tc.clock))
			if got != tc.want {
				t.Fatalf("expected index %d, got %d", tc.want, got)
			}
		})
	}
}

func TestResolverHandlesReconfiguredGranularity(t *testing.T) {
	// event stored against a 60-minute grid, looked up on a 45-minute grid
	slots, err := GenerateSlots("8:00 AM", "12:00 PM", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tl := Timeline(slots)

	// 9:00 AM no longer falls on a boundary; the containing slot
	// (8:45-9:30) wins
	if got := tl.IndexOfStart(mustMinutes(t, "9:00 AM")); got != 1 {
		t.Fatalf("expected containing slot 1, got %d", got)
	}
}

func TestSpanIndexes(t *testing.T) {
	tl := hourlyTimeline(t)

	from, to, err := tl.SpanIndexes("9:00 AM", "11:00 AM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from != 1 || to != 2 {
		t.Fatalf("expected span 1..2, got %d..%d", from, to)
	}

	if _, _, err := tl.SpanIndexes("not a time", "11:00 AM"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolverEmptyTimeline(t *testing.T) {
	var tl Timeline
	if got := tl.IndexOfStart(480); got != -1 {
		t.Fatalf("expected -1 on empty timeline, got %d", got)
	}
	if got := tl.IndexOfEnd(480); got != -1 {
		t.Fatalf("expected -1 on empty timeline, got %d", got)
	}
}

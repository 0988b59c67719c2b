package timetable

import (
	"testing"
)

func planTestEvent(days []string, start, end string) Event {
	return Event{
		ID:      NewEventID(),
		Days:    days,
		Start:   start,
		End:     end,
		Subject: "Mathematics",
		Teacher: "Cruz",
		Room:    "201",
	}
}

func TestPlanGridSpanCorrectness(t *testing.T) {
	tl := hourlyTimeline(t) // 8:00-12:00, four hourly slots
	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

	event := planTestEvent([]string{"Monday", "Tuesday", "Wednesday"}, "9:00 AM", "11:00 AM")
	plan := PlanGrid([]Event{event}, tl, weekdays, nil)

	origins := 0
	for si, row := range plan {
		for di, cell := range row {
			if cell.Kind == CellOrigin {
				origins++
				if si != 1 || di != 0 {
					t.Fatalf("origin must be at slot 1, Monday; got slot %d day %d", si, di)
				}
				if cell.RowSpan != 2 || cell.ColSpan != 3 {
					t.Fatalf("expected rowSpan=2 colSpan=3, got %d/%d", cell.RowSpan, cell.ColSpan)
				}
				if cell.Event == nil || cell.Event.ID != event.ID {
					t.Fatal("origin cell must carry the event")
				}
			}
		}
	}
	if origins != 1 {
		t.Fatalf("exactly one origin cell expected, got %d", origins)
	}

	// every other covered cell is suppressed
	covered := [][2]int{{1, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	for _, pos := range covered {
		if plan[pos[0]][pos[1]].Kind != CellCovered {
			t.Fatalf("cell (%d,%d) should be covered, got %s", pos[0], pos[1], plan[pos[0]][pos[1]].Kind)
		}
	}

	if plan[0][0].Kind != CellEmpty {
		t.Fatalf("cell above the block should be empty, got %s", plan[0][0].Kind)
	}
	if plan[1][3].Kind != CellEmpty {
		t.Fatalf("Thursday should be empty, got %s", plan[1][3].Kind)
	}
}

func TestPlanGridBreakCells(t *testing.T) {
	tl := schoolTimeline(t)
	weekdays := []string{"Monday", "Tuesday", "Friday"}

	plan := PlanGrid(nil, tl, weekdays, Exceptions{"Friday": true})

	// slot 2 is the morning recess
	if plan[2][0].Kind != CellBreak || plan[2][0].Label != "Morning Recess" {
		t.Fatalf("expected break label cell, got %s %q", plan[2][0].Kind, plan[2][0].Label)
	}
	// Friday is excepted: its break-kind cell renders addable
	if plan[2][2].Kind != CellEmpty {
		t.Fatalf("excepted day should render an empty cell, got %s", plan[2][2].Kind)
	}
}

func TestPlanGridSkipsUnresolvableEvents(t *testing.T) {
	tl := hourlyTimeline(t)
	weekdays := []string{"Monday"}

	broken := planTestEvent([]string{"Monday"}, "garbage", "11:00 AM")
	plan := PlanGrid([]Event{broken}, tl, weekdays, nil)
	for _, row := range plan {
		for _, cell := range row {
			if cell.Kind == CellOrigin {
				t.Fatal("unresolvable event must not render")
			}
		}
	}
}

func TestPlanGridSplitDayRuns(t *testing.T) {
	tl := hourlyTimeline(t)
	weekdays := []string{"Monday", "Tuesday", "Wednesday"}

	// Monday and Wednesday without Tuesday: two separate origin columns
	event := planTestEvent([]string{"Monday", "Wednesday"}, "8:00 AM", "9:00 AM")
	plan := PlanGrid([]Event{event}, tl, weekdays, nil)

	if plan[0][0].Kind != CellOrigin || plan[0][0].ColSpan != 1 {
		t.Fatalf("Monday should be its own origin with colSpan 1, got %s/%d", plan[0][0].Kind, plan[0][0].ColSpan)
	}
	if plan[0][2].Kind != CellOrigin || plan[0][2].ColSpan != 1 {
		t.Fatalf("Wednesday should start a new run, got %s/%d", plan[0][2].Kind, plan[0][2].ColSpan)
	}
	if plan[0][1].Kind != CellEmpty {
		t.Fatalf("Tuesday should be empty, got %s", plan[0][1].Kind)
	}
}

func TestSpanHeightSumsMeasuredRows(t *testing.T) {
	heights := []int{40, 24, 40, 40}
	if got := SpanHeight(heights, 1, 3); got != 104 {
		t.Fatalf("expected 104, got %d", got)
	}
	if got := SpanHeight(heights, 2, 10); got != 80 {
		t.Fatalf("out-of-range rows must be ignored, got %d", got)
	}
}

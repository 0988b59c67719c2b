package timetable

// CellKind classifies one (day, slot) cell of the rendered grid.
type CellKind string

const (
	// CellBreak is a static, non-interactive break label cell.
	CellBreak CellKind = "break"
	// CellOrigin is the single cell where a multi-cell event block is
	// rendered; its RowSpan/ColSpan cover the rest.
	CellOrigin CellKind = "origin"
	// CellCovered is suppressed output already covered by an origin's
	// span in a preceding row or column.
	CellCovered CellKind = "covered"
	// CellEmpty is an addable cell with nothing scheduled.
	CellEmpty CellKind = "empty"
)

// Cell is one entry of the rendering plan.
type Cell struct {
	Kind    CellKind `json:"kind"`
	Label   string   `json:"label,omitempty"`
	Event   *Event   `json:"event,omitempty"`
	RowSpan int      `json:"row_span,omitempty"`
	ColSpan int      `json:"col_span,omitempty"`
}

// placement caches an event's resolved span while planning.
type placement struct {
	event    Event
	startIdx int
	endIdx   int
}

// PlanGrid computes the full rendering plan for a day x slot grid:
// rows are slot indices, columns follow the active weekday list. For each
// cell it decides between a break label, an event origin block (with
// computed spans), a suppressed covered cell, and an empty addable cell.
// Events whose times no longer align to slot boundaries resolve through
// the timeline's nearest-containing-slot rules, so a plan never fails on
// stale data.
func PlanGrid(events []Event, tl Timeline, weekdays []string, ex Exceptions) [][]Cell {
	placements := resolvePlacements(events, tl)

	plan := make([][]Cell, len(tl))
	for slotIdx := range tl {
		row := make([]Cell, len(weekdays))
		for dayIdx, day := range weekdays {
			row[dayIdx] = planCell(placements, tl, weekdays, slotIdx, dayIdx, day, ex)
		}
		plan[slotIdx] = row
	}
	return plan
}

func resolvePlacements(events []Event, tl Timeline) []placement {
	placements := make([]placement, 0, len(events))
	for _, e := range events {
		from, to, err := tl.SpanIndexes(e.Start, e.End)
		if err != nil || from < 0 {
			// unresolvable times (e.g. malformed import rows) are skipped
			// rather than corrupting the plan
			continue
		}
		placements = append(placements, placement{event: e, startIdx: from, endIdx: to})
	}
	return placements
}

func planCell(placements []placement, tl Timeline, weekdays []string, slotIdx, dayIdx int, day string, ex Exceptions) Cell {
	if tl[slotIdx].Kind == KindBreak && !ex[day] {
		label := tl[slotIdx].Label
		if label == "" {
			label = DefaultBreakLabel
		}
		return Cell{Kind: CellBreak, Label: label}
	}

	for i := range placements {
		p := &placements[i]
		if !p.event.HasDay(day) {
			continue
		}
		if slotIdx < p.startIdx || slotIdx > p.endIdx {
			continue
		}
		if slotIdx == p.startIdx && isOriginColumn(p.event, weekdays, dayIdx) {
			ev := p.event.clone()
			return Cell{
				Kind:    CellOrigin,
				Event:   &ev,
				RowSpan: p.endIdx - p.startIdx + 1,
				ColSpan: colSpan(p.event, weekdays, dayIdx),
			}
		}
		return Cell{Kind: CellCovered}
	}

	return Cell{Kind: CellEmpty}
}

// isOriginColumn reports whether this day-column starts the event's
// contiguous day run: the immediately preceding day in the active list
// must not belong to the event.
func isOriginColumn(e Event, weekdays []string, dayIdx int) bool {
	if dayIdx == 0 {
		return true
	}
	return !e.HasDay(weekdays[dayIdx-1])
}

// SpanHeight sums the measured heights of the rows a block covers. Break
// rows can render at a different height than teaching rows, so a naive
// rowSpan multiplication would drift.
func SpanHeight(rowHeights []int, startIdx, endIdx int) int {
	total := 0
	for i := startIdx; i <= endIdx && i < len(rowHeights); i++ {
		if i < 0 {
			continue
		}
		total += rowHeights[i]
	}
	return total
}

// colSpan counts the contiguous days of the event starting at dayIdx,
// walking forward through the active weekday list.
func colSpan(e Event, weekdays []string, dayIdx int) int {
	span := 0
	for i := dayIdx; i < len(weekdays); i++ {
		if !e.HasDay(weekdays[i]) {
			break
		}
		span++
	}
	return span
}

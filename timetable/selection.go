package timetable

import "fmt"

// Exceptions marks weekdays whose break-kind cells behave as regular
// teaching cells for event creation (e.g. a schedule type whose Friday
// has no recess). Keyed by weekday name.
type Exceptions map[string]bool

// Selection is a finalized rectangular drag gesture: a contiguous slice
// of the active weekday list and a slot-index range. FromIndex/ToIndex
// come straight from drag start/end cells and may arrive in either order.
type Selection struct {
	Days      []string `json:"days"`
	FromIndex int      `json:"from_index"`
	ToIndex   int      `json:"to_index"`
}

// normalized returns the index range in ascending order.
func (s Selection) normalized() (int, int) {
	if s.FromIndex <= s.ToIndex {
		return s.FromIndex, s.ToIndex
	}
	return s.ToIndex, s.FromIndex
}

// Candidate is a not-yet-inserted event produced from a selection.
type Candidate struct {
	Days  []string
	Start string
	End   string
}

// DayRejection reports why one day of a per-day fan-out produced no event.
type DayRejection struct {
	Day    string `json:"day"`
	Reason string `json:"reason"`
}

// rangeHitsBreak reports whether any slot in [lo, hi] is a break slot that
// the given day does not except.
func rangeHitsBreak(tl Timeline, lo, hi int, day string, ex Exceptions) bool {
	if ex[day] {
		return false
	}
	for i := lo; i <= hi && i < len(tl); i++ {
		if tl[i].Kind == KindBreak {
			return true
		}
	}
	return false
}

// ComputeCandidates converts a selection into candidate events.
//
// A single-day selection yields exactly one candidate. A multi-day
// selection either yields one merged candidate spanning the whole day
// range (mergeDays true) or one candidate per day, where each day is
// checked against the break-exclusion rule independently: days that hit a
// break are reported as rejections while the rest are still created. In
// merged mode any break hit on any covered day rejects the whole
// selection.
func ComputeCandidates(sel Selection, tl Timeline, ex Exceptions, mergeDays bool) ([]Candidate, []DayRejection, error) {
	if len(sel.Days) == 0 {
		return nil, nil, ErrEmptySelection
	}
	lo, hi := sel.normalized()
	if lo < 0 || hi >= len(tl) {
		return nil, nil, fmt.Errorf("%w: slot range %d..%d outside timeline of %d slots", ErrEmptySelection, lo, hi, len(tl))
	}

	start := tl[lo].StartLabel()
	end := tl[hi].EndLabel()

	if len(sel.Days) == 1 || mergeDays {
		for _, day := range sel.Days {
			if rangeHitsBreak(tl, lo, hi, day, ex) {
				return nil, nil, fmt.Errorf("%w: %s %s-%s", ErrBreakSlotConflict, day, start, end)
			}
		}
		return []Candidate{{
			Days:  append([]string(nil), sel.Days...),
			Start: start,
			End:   end,
		}}, nil, nil
	}

	// per-day fan-out: partial creation allowed, failures are per day
	var candidates []Candidate
	var rejections []DayRejection
	for _, day := range sel.Days {
		if rangeHitsBreak(tl, lo, hi, day, ex) {
			rejections = append(rejections, DayRejection{Day: day, Reason: ErrBreakSlotConflict.Error()})
			continue
		}
		candidates = append(candidates, Candidate{Days: []string{day}, Start: start, End: end})
	}
	return candidates, rejections, nil
}

package timetable

import (
	"fmt"
	"sort"
)

// SlotKind tags a generated slot as regular teaching time or a protected
// break range.
type SlotKind string

const (
	KindTeaching SlotKind = "teaching"
	KindBreak    SlotKind = "break"
)

// DefaultBreakLabel is used when a break definition carries no label.
const DefaultBreakLabel = "Break"

// Slot is one fixed interval in a generated day sequence. Start and End
// are minutes since midnight; when the schedule window wraps past
// midnight they may exceed 1439 so that ordering stays monotonic.
type Slot struct {
	Start int      `json:"start"`
	End   int      `json:"end"`
	Kind  SlotKind `json:"kind"`
	Label string   `json:"label,omitempty"`
}

// StartLabel returns the slot start as a clock string.
func (s Slot) StartLabel() string { return FormatClock(s.Start) }

// EndLabel returns the slot end as a clock string.
func (s Slot) EndLabel() string { return FormatClock(s.End) }

// BreakSpec declares a non-teaching range inside the schedule window with
// its own sub-step granularity.
type BreakSpec struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Step  int    `json:"step"`
	Label string `json:"label,omitempty"`
}

// breakRange is a BreakSpec resolved to minutes and clamped to the window.
type breakRange struct {
	start int
	end   int
	step  int
	label string
}

// GenerateSlots slices the window [start, end) into teaching slots of
// exactly step minutes. If end is not after start as clock time the window
// is treated as wrapping to the next day. A trailing partial step that
// does not reach the full width is dropped, not truncated.
func GenerateSlots(start, end string, step int) ([]Slot, error) {
	startMin, endMin, err := resolveWindow(start, end)
	if err != nil {
		return nil, err
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}

	var slots []Slot
	for cursor := startMin; cursor+step <= endMin; cursor += step {
		slots = append(slots, Slot{Start: cursor, End: cursor + step, Kind: KindTeaching})
	}
	return slots, nil
}

// GenerateSlotsWithBreaks slices the window like GenerateSlots but honors
// break definitions: inside a break range slots use the break's own step
// and are tagged KindBreak; outside, the default step applies. Breaks are
// clamped to the window and merged when they overlap or touch, keeping the
// smallest constituent step and the first non-empty label in start order.
// Merging happens before the sweep so that a fine-grained recess abutting
// a coarse lunch keeps the finer granularity through the overlap.
func GenerateSlotsWithBreaks(start, end string, step int, breaks []BreakSpec) ([]Slot, error) {
	startMin, endMin, err := resolveWindow(start, end)
	if err != nil {
		return nil, err
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}

	merged, err := mergeBreaks(breaks, startMin, endMin, step)
	if err != nil {
		return nil, err
	}
	if len(merged) == 0 {
		return GenerateSlots(start, end, step)
	}

	var slots []Slot
	cursor := startMin
	for cursor < endMin {
		if br := breakAt(merged, cursor); br != nil {
			next := cursor + br.step
			if next > br.end {
				next = br.end
			}
			if next > endMin {
				next = endMin
			}
			slots = append(slots, Slot{Start: cursor, End: next, Kind: KindBreak, Label: br.label})
			cursor = next
			continue
		}

		// Teaching slots never cross into a break; the boundary truncates.
		limit := endMin
		if nb := nextBreakAfter(merged, cursor); nb != nil && nb.start < limit {
			limit = nb.start
		}
		next := cursor + step
		if next > limit {
			if limit == endMin {
				// trailing partial step at the window end is dropped
				break
			}
			next = limit
		}
		slots = append(slots, Slot{Start: cursor, End: next, Kind: KindTeaching})
		cursor = next
	}
	return slots, nil
}

func resolveWindow(start, end string) (int, int, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return 0, 0, err
	}
	if endMin <= startMin {
		endMin += minutesPerDay
	}
	return startMin, endMin, nil
}

func mergeBreaks(breaks []BreakSpec, windowStart, windowEnd, defaultStep int) ([]breakRange, error) {
	ranges := make([]breakRange, 0, len(breaks))
	for _, b := range breaks {
		startMin, err := ParseClock(b.Start)
		if err != nil {
			return nil, err
		}
		endMin, err := ParseClock(b.End)
		if err != nil {
			return nil, err
		}
		if endMin <= startMin {
			endMin += minutesPerDay
		}
		if startMin < windowStart && endMin > windowStart {
			startMin = windowStart
		}
		if startMin < windowStart && endMin <= windowStart {
			// break defined on the far side of a wrapped window
			startMin += minutesPerDay
			endMin += minutesPerDay
		}
		if startMin < windowStart {
			startMin = windowStart
		}
		if endMin > windowEnd {
			endMin = windowEnd
		}
		if endMin <= startMin {
			continue
		}
		step := b.Step
		if step <= 0 {
			step = defaultStep
		}
		ranges = append(ranges, breakRange{start: startMin, end: endMin, step: step, label: b.Label})
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

	var merged []breakRange
	for _, r := range ranges {
		if len(merged) == 0 {
			merged = append(merged, r)
			continue
		}
		last := &merged[len(merged)-1]
		if r.start > last.end {
			merged = append(merged, r)
			continue
		}
		// overlapping or adjacent: smaller granularity wins, first
		// non-empty label in sort order is kept
		if r.end > last.end {
			last.end = r.end
		}
		if r.step < last.step {
			last.step = r.step
		}
		if last.label == "" {
			last.label = r.label
		}
	}

	for i := range merged {
		if merged[i].label == "" {
			merged[i].label = DefaultBreakLabel
		}
	}
	return merged, nil
}

func breakAt(ranges []breakRange, minute int) *breakRange {
	for i := range ranges {
		if ranges[i].start <= minute && minute < ranges[i].end {
			return &ranges[i]
		}
	}
	return nil
}

func nextBreakAfter(ranges []breakRange, minute int) *breakRange {
	for i := range ranges {
		if ranges[i].start > minute {
			return &ranges[i]
		}
	}
	return nil
}

package timetable

// Timeline is an ordered, contiguous slot sequence for one schedule day.
// It is rebuilt whenever the break list, step size or sub-hour split
// configuration changes and is immutable during a render pass.
type Timeline []Slot

// IndexOfStart maps an arbitrary start time back to a slot index. An
// exact match on a slot's start wins; otherwise the first slot containing
// the time, then the first slot starting after it, then the last slot.
// The fallbacks matter because events saved under an older slot
// granularity may no longer align to a canonical boundary.
func (t Timeline) IndexOfStart(minutes int) int {
	if len(t) == 0 {
		return -1
	}
	for i, s := range t {
		if s.Start == minutes {
			return i
		}
	}
	for i, s := range t {
		if s.Start <= minutes && minutes < s.End {
			return i
		}
	}
	for i, s := range t {
		if s.Start > minutes {
			return i
		}
	}
	return len(t) - 1
}

// IndexOfEnd is the mirror of IndexOfStart using slot end boundaries.
// An exact match on a slot's *start* resolves to the previous slot: an
// event that ends when slot N begins occupies through slot N-1. The
// previous-slot rule floors at index 0.
func (t Timeline) IndexOfEnd(minutes int) int {
	if len(t) == 0 {
		return -1
	}
	for i, s := range t {
		if s.End == minutes {
			return i
		}
	}
	for i, s := range t {
		if s.Start == minutes {
			if i > 0 {
				return i - 1
			}
			return 0
		}
	}
	for i, s := range t {
		if s.Start < minutes && minutes < s.End {
			return i
		}
	}
	for i, s := range t {
		if s.End > minutes {
			return i
		}
	}
	return len(t) - 1
}

// SpanIndexes resolves an event's start/end clock strings to inclusive
// slot indices on this timeline.
func (t Timeline) SpanIndexes(start, end string) (int, int, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return 0, 0, err
	}
	from := t.IndexOfStart(startMin)
	to := t.IndexOfEnd(endMin)
	if to < from {
		to = from
	}
	return from, to, nil
}

package timetable

import "errors"

// Sentinel errors surfaced by the scheduling core. Controllers translate
// these into HTTP responses; nothing here is fatal to the process.
var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrBreakSlotConflict = errors.New("selection overlaps a break slot")
	ErrDuplicateEvent    = errors.New("duplicate event")
	ErrEventNotFound     = errors.New("event not found")
	ErrIncompleteForm    = errors.New("incomplete event form")
	ErrEmptySelection    = errors.New("empty selection")
)

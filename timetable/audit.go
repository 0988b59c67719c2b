package timetable

import (
	"strings"
	"time"
)

// diffFields compares an event against a normalized patch and returns one
// change record per field whose value actually differs. Records from one
// edit share the same actor and timestamp so they read as a single
// transaction in the trail.
func diffFields(before Event, patch EventPatch, actor string, at time.Time) []ChangeRecord {
	var changes []ChangeRecord

	record := func(field, from, to string) {
		if from == to {
			return
		}
		changes = append(changes, ChangeRecord{Field: field, From: from, To: to, By: actor, At: at})
	}

	if !sameStringSet(before.Days, patch.Days) {
		record("days", strings.Join(before.Days, ", "), strings.Join(patch.Days, ", "))
	}
	record("start", before.Start, patch.Start)
	record("end", before.End, patch.End)
	record("subject", before.Subject, patch.Subject)
	record("teacher", before.Teacher, patch.Teacher)
	record("room", before.Room, patch.Room)

	return changes
}

package services

import (
	"testing"
	"time"

	"schoolgrid_go/timetable"
)

func TestDecodeStoredDocumentMalformedBlobStartsEmpty(t *testing.T) {
	meta := timetable.Meta{
		SelectedClass: "grade-7-sampaguita",
		ScheduleType:  "jhs",
		SchoolYear:    "2025-2026",
		Semester:      "1st",
	}
	key := timetable.StorageKey(meta.SelectedClass, meta.SchoolYear, meta.Semester)

	doc := decodeStoredDocument([]byte("{not json"), key, meta, time.Now())

	if len(doc.Events) != 0 {
		t.Fatalf("expected empty event set for unreadable blob, got %d events", len(doc.Events))
	}
	if doc.Meta != meta {
		t.Fatalf("expected requested meta on fallback document, got %+v", doc.Meta)
	}
}

func TestDecodeStoredDocumentValidBlobKeepsEventsAndOverridesMeta(t *testing.T) {
	now := time.Now()
	stored := timetable.Document{
		Meta: timetable.Meta{SelectedClass: "stale-class", SchoolYear: "2024-2025", Semester: "2nd"},
		Events: []timetable.Event{
			{
				ID:        "evt-1",
				Days:      []string{"Monday"},
				Start:     "8:00 AM",
				End:       "9:00 AM",
				Subject:   "English",
				Teacher:   "Reyes",
				Room:      "Room 101",
				CreatedBy: "registrar",
				CreatedAt: now,
			},
		},
		SavedAt: now,
	}
	payload, err := timetable.EncodeDocument(stored)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	meta := timetable.Meta{
		SelectedClass: "grade-7-sampaguita",
		ScheduleType:  "jhs",
		SchoolYear:    "2025-2026",
		Semester:      "1st",
	}
	key := timetable.StorageKey(meta.SelectedClass, meta.SchoolYear, meta.Semester)

	doc := decodeStoredDocument(payload, key, meta, now)

	if len(doc.Events) != 1 || doc.Events[0].Subject != "English" {
		t.Fatalf("expected the stored event to survive decoding, got %+v", doc.Events)
	}
	if doc.Meta != meta {
		t.Fatalf("expected request meta to win over stored meta, got %+v", doc.Meta)
	}
}

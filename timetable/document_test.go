package timetable

import (
	"testing"
	"time"
)

func TestStorageKey(t *testing.T) {
	tests := []struct {
		name     string
		class    string
		year     string
		semester string
		want     string
	}{
		{name: "with class", class: "grade-7-sampaguita", year: "2025-2026", semester: "1st", want: "schedule-events-grade-7-sampaguita-2025-2026-1st"},
		{name: "no class uses sentinel", class: "", year: "2025-2026", semester: "2nd", want: "schedule-events-all-2025-2026-2nd"},
		{name: "whitespace class uses sentinel", class: "  ", year: "2025-2026", semester: "1st", want: "schedule-events-all-2025-2026-1st"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := StorageKey(tc.class, tc.year, tc.semester); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDecodeDocumentLegacyDayField(t *testing.T) {
	raw := []byte(`{
		"meta": {"selectedClass": "grade-11-rizal", "scheduleType": "shs", "schoolYear": "2025-2026", "semester": "1st"},
		"events": [
			{"day": "Friday", "start": "8:00 AM", "end": "9:00 AM", "subject": "Research"}
		],
		"savedAt": "2025-06-01T08:00:00Z"
	}`)

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	doc, err := DecodeDocument(raw, now)
	if err != nil {
		t.Fatalf("legacy record must decode without error: %v", err)
	}
	if len(doc.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(doc.Events))
	}
	e := doc.Events[0]
	if len(e.Days) != 1 || e.Days[0] != "Friday" {
		t.Fatalf("singular day must upconvert to a one-element set, got %v", e.Days)
	}
	if e.ID == "" {
		t.Fatal("missing id must be synthesized")
	}
	if e.CreatedBy != "unknown" {
		t.Fatalf("missing createdBy must default to unknown, got %q", e.CreatedBy)
	}
	if !e.CreatedAt.Equal(now) {
		t.Fatalf("missing createdAt must default to now, got %v", e.CreatedAt)
	}
	if e.Teacher != TBDPlaceholder || e.Room != TBDPlaceholder {
		t.Fatalf("missing teacher/room must default to %s", TBDPlaceholder)
	}
}

func TestDecodeDocumentModernShape(t *testing.T) {
	doc := Document{
		Meta: Meta{SelectedClass: "grade-7-sampaguita", ScheduleType: "jhs", SchoolYear: "2025-2026", Semester: "1st"},
		Events: []Event{{
			ID:        NewEventID(),
			Days:      []string{"Monday", "Tuesday"},
			Start:     "8:00 AM",
			End:       "9:00 AM",
			Subject:   "Mathematics",
			Teacher:   "Cruz",
			Room:      "201",
			CreatedBy: "registrar",
			CreatedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		}},
		SavedAt: time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
	}

	data, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := DecodeDocument(data, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(decoded.Events))
	}
	if decoded.Events[0].ID != doc.Events[0].ID {
		t.Fatal("existing ids must survive the round trip")
	}
	if !sameStringSet(decoded.Events[0].Days, doc.Events[0].Days) {
		t.Fatalf("days mismatch: %v", decoded.Events[0].Days)
	}
	if decoded.Meta != doc.Meta {
		t.Fatalf("meta mismatch: %+v", decoded.Meta)
	}
}

func TestDecodeDocumentSkipsDaylessEvents(t *testing.T) {
	raw := []byte(`{"meta": {}, "events": [{"start": "8:00 AM", "end": "9:00 AM", "subject": "Orphan"}]}`)
	doc, err := DecodeDocument(raw, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Events) != 0 {
		t.Fatalf("dayless events cannot be placed and must be skipped, got %d", len(doc.Events))
	}
}

func TestDecodeDocumentMalformed(t *testing.T) {
	if _, err := DecodeDocument([]byte("{not json"), time.Now()); err == nil {
		t.Fatal("expected decode error")
	}
}

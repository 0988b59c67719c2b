package timetable

import "testing"

func TestGenerateSlots(t *testing.T) {
	slots, err := GenerateSlots("7:45 AM", "5:15 PM", 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 9.5 hour window, trailing half hour dropped
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d", len(slots))
	}
	if slots[0].StartLabel() != "7:45 AM" || slots[0].EndLabel() != "8:45 AM" {
		t.Fatalf("unexpected first slot: %s - %s", slots[0].StartLabel(), slots[0].EndLabel())
	}
	if slots[8].EndLabel() != "4:45 PM" {
		t.Fatalf("expected last slot to end at 4:45 PM, got %s", slots[8].EndLabel())
	}
	for _, s := range slots {
		if s.Kind != KindTeaching {
			t.Fatalf("expected teaching slot, got %s", s.Kind)
		}
	}
}

func TestGenerateSlotsContiguous(t *testing.T) {
	slots, err := GenerateSlots("8:00 AM", "12:00 PM", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < len(slots)-1; i++ {
		if slots[i].End != slots[i+1].Start {
			t.Fatalf("slots %d and %d are not contiguous: %d != %d", i, i+1, slots[i].End, slots[i+1].Start)
		}
	}
}

func TestGenerateSlotsWrapsPastMidnight(t *testing.T) {
	slots, err := GenerateSlots("10:00 PM", "2:00 AM", 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots across midnight, got %d", len(slots))
	}
	if slots[3].StartLabel() != "1:00 AM" {
		t.Fatalf("expected wrapped slot start 1:00 AM, got %s", slots[3].StartLabel())
	}
}

func TestGenerateSlotsRejectsBadStep(t *testing.T) {
	if _, err := GenerateSlots("8:00 AM", "5:00 PM", 0); err == nil {
		t.Fatal("expected error for zero step")
	}
}

func TestGenerateSlotsWithBreaksSchoolDay(t *testing.T) {
	slots, err := GenerateSlotsWithBreaks("7:45 AM", "5:15 PM", 60, []BreakSpec{
		{Start: "9:45 AM", End: "10:00 AM", Step: 15, Label: "Morning Recess"},
		{Start: "12:00 PM", End: "1:00 PM", Step: 60, Label: "Lunch"},
		{Start: "3:00 PM", End: "3:15 PM", Step: 15, Label: "Afternoon Recess"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 11 {
		t.Fatalf("expected 11 slots, got %d", len(slots))
	}
	third := slots[2]
	if third.Kind != KindBreak || third.Label != "Morning Recess" {
		t.Fatalf("expected third slot to be the morning recess, got kind=%s label=%q", third.Kind, third.Label)
	}
	if third.StartLabel() != "9:45 AM" || third.EndLabel() != "10:00 AM" {
		t.Fatalf("unexpected recess bounds: %s - %s", third.StartLabel(), third.EndLabel())
	}
	if slots[5].Kind != KindBreak || slots[5].Label != "Lunch" {
		t.Fatalf("expected slot 5 to be lunch, got kind=%s label=%q", slots[5].Kind, slots[5].Label)
	}
	if slots[10].EndLabel() != "5:15 PM" {
		t.Fatalf("expected final slot to end at 5:15 PM, got %s", slots[10].EndLabel())
	}
	for i := 0; i < len(slots)-1; i++ {
		if slots[i].End != slots[i+1].Start {
			t.Fatalf("gap between slot %d and %d", i, i+1)
		}
	}
}

func TestGenerateSlotsWithBreaksMergesOverlaps(t *testing.T) {
	// a 15-minute recess overlapping a 60-minute lunch: the merged range
	// keeps the smaller step throughout
	slots, err := GenerateSlotsWithBreaks("11:00 AM", "2:00 PM", 60, []BreakSpec{
		{Start: "12:00 PM", End: "1:00 PM", Step: 60, Label: "Lunch"},
		{Start: "11:45 AM", End: "12:15 PM", Step: 15, Label: "Recess"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var breakSlots []Slot
	for _, s := range slots {
		if s.Kind == KindBreak {
			breakSlots = append(breakSlots, s)
		}
	}
	if len(breakSlots) == 0 {
		t.Fatal("expected break slots")
	}
	if breakSlots[0].StartLabel() != "11:45 AM" {
		t.Fatalf("merged break should start at 11:45 AM, got %s", breakSlots[0].StartLabel())
	}
	last := breakSlots[len(breakSlots)-1]
	if last.EndLabel() != "1:00 PM" {
		t.Fatalf("merged break should end at 1:00 PM, got %s", last.EndLabel())
	}
	for _, s := range breakSlots {
		if s.End-s.Start > 15 {
			t.Fatalf("merged break slot wider than the smaller step: %d minutes", s.End-s.Start)
		}
		// first non-empty label in sort order wins
		if s.Label != "Recess" {
			t.Fatalf("expected merged label Recess, got %q", s.Label)
		}
	}
}

func TestGenerateSlotsWithBreaksClampsToWindow(t *testing.T) {
	slots, err := GenerateSlotsWithBreaks("8:00 AM", "10:00 AM", 60, []BreakSpec{
		{Start: "9:30 AM", End: "11:00 AM", Step: 30, Label: "Overrun"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := slots[len(slots)-1]
	if last.EndLabel() != "10:00 AM" {
		t.Fatalf("break must be clamped to the window end, got %s", last.EndLabel())
	}
	if last.Kind != KindBreak {
		t.Fatalf("expected clamped tail to be a break slot, got %s", last.Kind)
	}
}

func TestGenerateSlotsWithBreaksDefaultLabel(t *testing.T) {
	slots, err := GenerateSlotsWithBreaks("8:00 AM", "10:00 AM", 60, []BreakSpec{
		{Start: "9:00 AM", End: "9:15 AM", Step: 15},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		if s.Kind == KindBreak && s.Label != DefaultBreakLabel {
			t.Fatalf("expected default break label, got %q", s.Label)
		}
	}
}

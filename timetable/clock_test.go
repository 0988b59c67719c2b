package timetable

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "morning", input: "7:45 AM", want: 7*60 + 45},
		{name: "afternoon", input: "5:15 PM", want: 17*60 + 15},
		{name: "noon", input: "12:00 PM", want: 12 * 60},
		{name: "midnight", input: "12:00 AM", want: 0},
		{name: "lowercase meridiem", input: "9:30 am", want: 9*60 + 30},
		{name: "mixed case meridiem", input: "3:05 Pm", want: 15*60 + 5},
		{name: "no space before meridiem", input: "8:00AM", want: 8 * 60},
		{name: "leading zero hour", input: "07:45 AM", want: 7*60 + 45},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseClock(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d minutes, got %d", tc.want, got)
			}
		})
	}
}

func TestParseClockInvalid(t *testing.T) {
	inputs := []string{
		"",
		"7:45",
		"13:00 PM",
		"0:30 AM",
		"7:60 AM",
		"7:5 AM",
		"seven forty-five",
		"19:45",
		"7.45 AM",
	}
	for _, input := range inputs {
		if _, err := ParseClock(input); err == nil {
			t.Fatalf("expected error for input %q", input)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    string
	}{
		{name: "midnight", minutes: 0, want: "12:00 AM"},
		{name: "noon", minutes: 720, want: "12:00 PM"},
		{name: "morning", minutes: 7*60 + 45, want: "7:45 AM"},
		{name: "evening", minutes: 17*60 + 15, want: "5:15 PM"},
		{name: "wraps past midnight", minutes: 1440 + 90, want: "1:30 AM"},
		{name: "wraps negative", minutes: -30, want: "11:30 PM"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatClock(tc.minutes); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestClockRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m++ {
		got, err := ParseClock(FormatClock(m))
		if err != nil {
			t.Fatalf("round-trip failed at %d: %v", m, err)
		}
		if got != m {
			t.Fatalf("round-trip mismatch: %d -> %q -> %d", m, FormatClock(m), got)
		}
	}
}

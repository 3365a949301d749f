package model

import (
	"testing"
	"time"
)

func TestParseDate_Formats(t *testing.T) {
	want := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	tests := []string{
		"12-06-2025",
		"12/06/2025",
		"12.06.2025",
		"2025-06-12",
		"2025/06/12",
		" 12-06-2025 ",
		"12th-06-2025", // stray letters stripped before parsing
	}
	for _, input := range tests {
		got, err := ParseDate(input)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", input, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "yesterday", "31-02-2025", "12-13-2025"} {
		if _, err := ParseDate(input); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", input)
		}
	}
}

func TestParseDate_PrimaryFormatWins(t *testing.T) {
	// 05-06-2025 is valid under both DD-MM and MM-DD readings; the
	// ordered format list makes the DD-MM reading authoritative.
	got, err := ParseDate("05-06-2025")
	if err != nil {
		t.Fatal(err)
	}
	if got.Day() != 5 || got.Month() != time.June {
		t.Errorf("ParseDate(05-06-2025) = %v, want 5 June 2025", got)
	}
}

func TestDateString_Canonical(t *testing.T) {
	d, err := ParseDate("2025-06-12")
	if err != nil {
		t.Fatal(err)
	}
	rec := ExpenseRecord{Date: d}
	if got := rec.DateString(); got != "12-06-2025" {
		t.Errorf("DateString = %q, want canonical 12-06-2025", got)
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input string
		year  int
		month time.Month
	}{
		{"2025-06", 2025, time.June},
		{"06-2025", 2025, time.June},
		{"2025/06", 2025, time.June},
		{"12.2024", 2024, time.December},
	}
	for _, tt := range tests {
		year, month, err := ParseMonth(tt.input)
		if err != nil {
			t.Errorf("ParseMonth(%q): %v", tt.input, err)
			continue
		}
		if year != tt.year || month != tt.month {
			t.Errorf("ParseMonth(%q) = %d/%v, want %d/%v", tt.input, year, month, tt.year, tt.month)
		}
	}

	if _, _, err := ParseMonth("June 2025"); err == nil {
		t.Error("ParseMonth(June 2025) succeeded, want error")
	}
}

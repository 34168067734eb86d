package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "valid date", input: "2024-01-15", want: Date(2024, time.January, 15)},
		{name: "leap day", input: "2024-02-29", want: Date(2024, time.February, 29)},
		{name: "invalid day", input: "2024-02-31", wantErr: true},
		{name: "wrong format", input: "01/15/2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDateKeepsCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	late := time.Date(2024, time.March, 10, 23, 30, 0, 0, loc)

	got := NormalizeDate(late)
	if !got.Equal(Date(2024, time.March, 10)) {
		t.Errorf("NormalizeDate() = %v, want 2024-03-10", got)
	}
}

func TestDaysBetween(t *testing.T) {
	start := Date(2024, time.January, 1)

	if got := DaysBetween(start, Date(2024, time.January, 1)); got != 0 {
		t.Errorf("same day = %d, want 0", got)
	}
	if got := DaysBetween(start, Date(2024, time.March, 1)); got != 60 {
		t.Errorf("Jan 1 -> Mar 1 (leap year) = %d, want 60", got)
	}
	if got := DaysBetween(start, Date(2023, time.December, 31)); got != -1 {
		t.Errorf("backwards = %d, want -1", got)
	}

	// Across a DST change in a real location
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	before := time.Date(2024, time.March, 9, 12, 0, 0, 0, ny)
	after := time.Date(2024, time.March, 11, 12, 0, 0, 0, ny)
	if got := DaysBetween(before, after); got != 2 {
		t.Errorf("across DST = %d, want 2", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2024-02")
	if err != nil {
		t.Fatalf("ParseMonth() error = %v", err)
	}
	if year != 2024 || month != time.February {
		t.Errorf("ParseMonth() = %d-%s, want 2024-February", year, month)
	}

	if _, _, err := ParseMonth("2024-13"); err == nil {
		t.Error("ParseMonth(\"2024-13\") should fail")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") || !ValidateTimezone("Local") {
		t.Error("empty and Local should be valid")
	}
	if ValidateTimezone("Not/AZone") {
		t.Error("Not/AZone should be invalid")
	}
}

func TestTodayInTimezone(t *testing.T) {
	today, err := TodayInTimezone("UTC")
	if err != nil {
		t.Fatalf("TodayInTimezone() error = %v", err)
	}
	if today.Hour() != 0 || today.Minute() != 0 || today.Location() != time.UTC {
		t.Errorf("TodayInTimezone() = %v, want normalized midnight UTC", today)
	}

	if _, err := TodayInTimezone("Not/AZone"); err == nil {
		t.Error("TodayInTimezone() should fail for invalid timezone")
	}
}

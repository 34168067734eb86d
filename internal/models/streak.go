package models

import "time"

// StreakInfo is derived from a habit's entries; it is never persisted.
type StreakInfo struct {
	CurrentStreak      int        `json:"current_streak"`
	LongestStreak      int        `json:"longest_streak"`
	LastCompletionDate *time.Time `json:"last_completion_date,omitempty"`
	ExpectedThisWeek   int        `json:"expected_this_week"`
	CompletedThisWeek  int        `json:"completed_this_week"`
	CompletionRate     int        `json:"completion_rate"` // percent, 0-100
}

// RangeStats summarizes completion over an arbitrary date range.
type RangeStats struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Expected       int       `json:"expected"`
	Completed      int       `json:"completed"`
	CompletionRate int       `json:"completion_rate"`
}

type DayStatus string

const (
	DayStatusCompleted      DayStatus = "completed"
	DayStatusMissed         DayStatus = "missed"
	DayStatusExpectedMissed DayStatus = "expected-missed"
	DayStatusNoEntry        DayStatus = "no-entry"
)

// CalendarDay is one cell of a month view.
type CalendarDay struct {
	Date          time.Time `json:"date"`
	DayOfMonth    int       `json:"day_of_month"`
	DayOfWeek     int       `json:"day_of_week"` // 0=Sunday
	Status        DayStatus `json:"status"`
	Reason        string    `json:"reason,omitempty"`
	IsExpectedDay bool      `json:"is_expected_day"`
}

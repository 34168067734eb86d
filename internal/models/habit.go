package models

import "time"

// Habit represents a recurring practice to track
type Habit struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	StartDate  string     `json:"start_date"` // YYYY-MM-DD format
	Frequency  Frequency  `json:"frequency"`
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// HabitEntry records whether a habit was done on a given day.
// Several entries may exist for the same day; the one with the
// highest Seq is authoritative.
type HabitEntry struct {
	ID        string     `json:"id"`
	HabitID   string     `json:"habit_id"`
	Day       string     `json:"day"` // YYYY-MM-DD format
	Completed bool       `json:"completed"`
	Reason    string     `json:"reason,omitempty"`
	Note      string     `json:"note"`
	Seq       int64      `json:"seq"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

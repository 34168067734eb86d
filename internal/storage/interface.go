package storage

import (
	"errors"

	"github.com/zerefez/habitcal/internal/migration"
	"github.com/zerefez/habitcal/internal/models"
)

// ErrNotFound is returned when a habit or entry does not exist.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	// Habit Entries
	// AddHabitEntry appends an entry and returns it with Seq assigned.
	// Entries are never overwritten; later entries for the same day win.
	AddHabitEntry(models.HabitEntry) (models.HabitEntry, error)
	GetHabitEntriesForHabit(habitID string, startDay, endDay string) ([]models.HabitEntry, error)
	GetAllHabitEntries(habitID string) ([]models.HabitEntry, error)
	GetHabitEntriesForDay(day string) ([]models.HabitEntry, error)
	// DeleteHabitEntriesForDay soft-deletes every entry of a habit on a day
	// and returns how many were removed.
	DeleteHabitEntriesForDay(habitID, day string) (int, error)
	RestoreHabitEntry(id string) error
}

// Migrator is implemented by stores backed by a versioned SQL schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (migration.Status, error)
}

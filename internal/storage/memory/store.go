// Package memory provides an in-process storage.Provider. Nothing is
// persisted; it backs command tests and throwaway sessions.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

type Store struct {
	mu      sync.RWMutex
	habits  []*models.Habit
	entries []*models.HabitEntry
	seq     int64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Init() error          { return nil }
func (s *Store) Load() error          { return nil }
func (s *Store) Close() error         { return nil }
func (s *Store) GetConfigPath() string { return ":memory:" }

func (s *Store) findHabit(id string) *models.Habit {
	for _, h := range s.habits {
		if h.ID == id {
			return h
		}
	}
	return nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h := s.findHabit(id); h != nil && h.DeletedAt == nil {
		return *h, nil
	}
	return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.habits {
		if h.Name == name && h.DeletedAt == nil {
			return *h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %s: %w", name, storage.ErrNotFound)
}

func (s *Store) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var habits []models.Habit
	for _, h := range s.habits {
		if h.DeletedAt != nil && !includeDeleted {
			continue
		}
		if h.ArchivedAt != nil && !includeArchived {
			continue
		}
		habits = append(habits, *h)
	}
	sort.SliceStable(habits, func(i, j int) bool {
		if !habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].CreatedAt.Before(habits[j].CreatedAt)
		}
		return habits[i].Name < habits[j].Name
	})
	return habits, nil
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if habit.DeletedAt == nil {
		for _, h := range s.habits {
			if h.ID != habit.ID && h.Name == habit.Name && h.DeletedAt == nil {
				return fmt.Errorf("habit %q already exists", habit.Name)
			}
		}
	}

	if existing := s.findHabit(habit.ID); existing != nil {
		created := existing.CreatedAt
		*existing = habit
		existing.CreatedAt = created
		return nil
	}
	h := habit
	s.habits = append(s.habits, &h)
	return nil
}

// mutateHabit applies fn to the habit with the given id. fn reports false
// when the habit is not in the state the change requires.
func (s *Store) mutateHabit(id, msg string, fn func(*models.Habit) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.findHabit(id)
	if h == nil || !fn(h) {
		return fmt.Errorf("%s: %w", msg, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) ArchiveHabit(id string) error {
	return s.mutateHabit(id, "habit not found or already archived/deleted", func(h *models.Habit) bool {
		if h.DeletedAt != nil || h.ArchivedAt != nil {
			return false
		}
		now := time.Now()
		h.ArchivedAt = &now
		return true
	})
}

func (s *Store) UnarchiveHabit(id string) error {
	return s.mutateHabit(id, "habit not found or not archived", func(h *models.Habit) bool {
		if h.DeletedAt != nil || h.ArchivedAt == nil {
			return false
		}
		h.ArchivedAt = nil
		return true
	})
}

func (s *Store) DeleteHabit(id string) error {
	return s.mutateHabit(id, "habit not found or already deleted", func(h *models.Habit) bool {
		if h.DeletedAt != nil {
			return false
		}
		now := time.Now()
		h.DeletedAt = &now
		return true
	})
}

func (s *Store) RestoreHabit(id string) error {
	return s.mutateHabit(id, "habit not found or not deleted", func(h *models.Habit) bool {
		if h.DeletedAt == nil {
			return false
		}
		for _, other := range s.habits {
			if other != h && other.Name == h.Name && other.DeletedAt == nil {
				return false
			}
		}
		h.DeletedAt = nil
		return true
	})
}

func (s *Store) AddHabitEntry(entry models.HabitEntry) (models.HabitEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findHabit(entry.HabitID) == nil {
		return models.HabitEntry{}, fmt.Errorf("failed to add habit entry: habit %s: %w", entry.HabitID, storage.ErrNotFound)
	}
	s.seq++
	entry.Seq = s.seq
	e := entry
	s.entries = append(s.entries, &e)
	return entry, nil
}

func (s *Store) selectEntries(keep func(*models.HabitEntry) bool) []models.HabitEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.HabitEntry
	for _, e := range s.entries {
		if e.DeletedAt == nil && keep(e) {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

func (s *Store) GetHabitEntriesForHabit(habitID string, startDay, endDay string) ([]models.HabitEntry, error) {
	return s.selectEntries(func(e *models.HabitEntry) bool {
		return e.HabitID == habitID && e.Day >= startDay && e.Day <= endDay
	}), nil
}

func (s *Store) GetAllHabitEntries(habitID string) ([]models.HabitEntry, error) {
	return s.selectEntries(func(e *models.HabitEntry) bool {
		return e.HabitID == habitID
	}), nil
}

func (s *Store) GetHabitEntriesForDay(day string) ([]models.HabitEntry, error) {
	return s.selectEntries(func(e *models.HabitEntry) bool {
		return e.Day == day
	}), nil
}

func (s *Store) DeleteHabitEntriesForDay(habitID, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	n := 0
	for _, e := range s.entries {
		if e.HabitID == habitID && e.Day == day && e.DeletedAt == nil {
			e.DeletedAt = &now
			n++
		}
	}
	return n, nil
}

func (s *Store) RestoreHabitEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id && e.DeletedAt != nil {
			e.DeletedAt = nil
			return nil
		}
	}
	return fmt.Errorf("habit entry not found or not deleted: %w", storage.ErrNotFound)
}

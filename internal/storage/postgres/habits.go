package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zerefez/habitcal/internal/constants"
	"github.com/zerefez/habitcal/internal/models"
	"github.com/zerefez/habitcal/internal/storage"
)

const habitColumns = "id, name, start_date, frequency, created_at, archived_at, deleted_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var startDate time.Time
	var frequency string
	var archivedAt, deletedAt sql.NullTime

	if err := row.Scan(&h.ID, &h.Name, &startDate, &frequency, &h.CreatedAt, &archivedAt, &deletedAt); err != nil {
		return models.Habit{}, err
	}
	h.StartDate = startDate.Format(constants.DateFormat)
	h.Frequency = models.ParseFrequency(frequency)
	h.ArchivedAt = timePtr(archivedAt)
	h.DeletedAt = timePtr(deletedAt)
	return h, nil
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return err
}

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1 AND deleted_at IS NULL`, id)
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, notFound(err, "habit "+id)
	}
	return h, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE name = $1 AND deleted_at IS NULL`, name)
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, notFound(err, "habit "+name)
	}
	return h, nil
}

func (s *Store) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE TRUE"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	query += " ORDER BY created_at, name"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, start_date, frequency, created_at, archived_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			start_date = EXCLUDED.start_date,
			frequency = EXCLUDED.frequency,
			archived_at = EXCLUDED.archived_at,
			deleted_at = EXCLUDED.deleted_at`,
		habit.ID, habit.Name, habit.StartDate, string(habit.Frequency),
		habit.CreatedAt, habit.ArchivedAt, habit.DeletedAt)
	return err
}

func (s *Store) execOne(msg string, query string, args ...any) error {
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", msg, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) ArchiveHabit(id string) error {
	return s.execOne("habit not found or already archived/deleted",
		`UPDATE habits SET archived_at = $1 WHERE id = $2 AND deleted_at IS NULL AND archived_at IS NULL`,
		time.Now(), id)
}

func (s *Store) UnarchiveHabit(id string) error {
	return s.execOne("habit not found or not archived",
		`UPDATE habits SET archived_at = NULL WHERE id = $1 AND deleted_at IS NULL AND archived_at IS NOT NULL`,
		id)
}

func (s *Store) DeleteHabit(id string) error {
	return s.execOne("habit not found or already deleted",
		`UPDATE habits SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now(), id)
}

func (s *Store) RestoreHabit(id string) error {
	return s.execOne("habit not found or not deleted",
		`UPDATE habits SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`,
		id)
}

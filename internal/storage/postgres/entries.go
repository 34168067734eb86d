package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/zerefez/habitcal/internal/constants"
	"github.com/zerefez/habitcal/internal/models"
)

const entryColumns = "id, seq, habit_id, day, completed, reason, note, created_at, updated_at, deleted_at"

func scanEntry(row rowScanner) (models.HabitEntry, error) {
	var e models.HabitEntry
	var day time.Time
	var deletedAt sql.NullTime

	err := row.Scan(&e.ID, &e.Seq, &e.HabitID, &day, &e.Completed, &e.Reason, &e.Note, &e.CreatedAt, &e.UpdatedAt, &deletedAt)
	if err != nil {
		return models.HabitEntry{}, err
	}
	e.Day = day.Format(constants.DateFormat)
	e.DeletedAt = timePtr(deletedAt)
	return e, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]models.HabitEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HabitEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) AddHabitEntry(entry models.HabitEntry) (models.HabitEntry, error) {
	err := s.db.QueryRow(`
		INSERT INTO habit_entries (id, habit_id, day, completed, reason, note, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq`,
		entry.ID, entry.HabitID, entry.Day, entry.Completed, entry.Reason, entry.Note,
		entry.CreatedAt, entry.UpdatedAt, entry.DeletedAt,
	).Scan(&entry.Seq)
	if err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to add habit entry: %w", err)
	}
	return entry, nil
}

func (s *Store) GetHabitEntriesForHabit(habitID string, startDay, endDay string) ([]models.HabitEntry, error) {
	return s.queryEntries(`
		SELECT `+entryColumns+` FROM habit_entries
		WHERE habit_id = $1 AND day >= $2 AND day <= $3 AND deleted_at IS NULL
		ORDER BY day, seq`, habitID, startDay, endDay)
}

func (s *Store) GetAllHabitEntries(habitID string) ([]models.HabitEntry, error) {
	return s.queryEntries(`
		SELECT `+entryColumns+` FROM habit_entries
		WHERE habit_id = $1 AND deleted_at IS NULL
		ORDER BY day, seq`, habitID)
}

func (s *Store) GetHabitEntriesForDay(day string) ([]models.HabitEntry, error) {
	return s.queryEntries(`
		SELECT `+entryColumns+` FROM habit_entries
		WHERE day = $1 AND deleted_at IS NULL
		ORDER BY seq`, day)
}

func (s *Store) DeleteHabitEntriesForDay(habitID, day string) (int, error) {
	result, err := s.db.Exec(`
		UPDATE habit_entries SET deleted_at = $1
		WHERE habit_id = $2 AND day = $3 AND deleted_at IS NULL`,
		time.Now(), habitID, day)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (s *Store) RestoreHabitEntry(id string) error {
	return s.execOne("habit entry not found or not deleted",
		`UPDATE habit_entries SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`,
		id)
}

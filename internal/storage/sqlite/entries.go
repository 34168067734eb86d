package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/zerefez/habitcal/internal/models"
)

const entryColumns = "id, seq, habit_id, day, completed, reason, note, created_at, updated_at, deleted_at"

func scanEntry(row rowScanner) (models.HabitEntry, error) {
	var e models.HabitEntry
	var createdAt, updatedAt string
	var deletedAt sql.NullString

	err := row.Scan(&e.ID, &e.Seq, &e.HabitID, &e.Day, &e.Completed, &e.Reason, &e.Note, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return models.HabitEntry{}, err
	}

	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to parse created_at for entry %s: %w", e.ID, err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to parse updated_at for entry %s: %w", e.ID, err)
	}
	if e.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to parse deleted_at for entry %s: %w", e.ID, err)
	}
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
		INSERT INTO habit_entries (id, seq, habit_id, day, completed, reason, note, created_at, updated_at, deleted_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM habit_entries), ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING seq`,
		entry.ID, entry.HabitID, entry.Day, entry.Completed, entry.Reason, entry.Note,
		entry.CreatedAt.Format(time.RFC3339), entry.UpdatedAt.Format(time.RFC3339), nullTime(entry.DeletedAt),
	).Scan(&entry.Seq)
	if err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to add habit entry: %w", err)
	}
	return entry, nil
}

func (s *Store) GetHabitEntriesForHabit(habitID string, startDay, endDay string) ([]models.HabitEntry, error) {
	return s.queryEntries(`
		SELECT `+entryColumns+` FROM habit_entries
		WHERE habit_id = ? AND day >= ? AND day <= ? AND deleted_at IS NULL
		ORDER BY day, seq`, habitID, startDay, endDay)
}

func (s *Store) GetAllHabitEntries(habitID string) ([]models.HabitEntry, error) {
	return s.queryEntries(`
		SELECT `+entryColumns+` FROM habit_entries
		WHERE habit_id = ? AND deleted_at IS NULL
		ORDER BY day, seq`, habitID)
}

func (s *Store) GetHabitEntriesForDay(day string) ([]models.HabitEntry, error) {
	return s.queryEntries(`
		SELECT `+entryColumns+` FROM habit_entries
		WHERE day = ? AND deleted_at IS NULL
		ORDER BY seq`, day)
}

func (s *Store) DeleteHabitEntriesForDay(habitID, day string) (int, error) {
	result, err := s.db.Exec(`
		UPDATE habit_entries SET deleted_at = ?
		WHERE habit_id = ? AND day = ? AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), habitID, day)
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
		`UPDATE habit_entries SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`,
		id)
}

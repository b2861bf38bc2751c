package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/soberly/internal/models"
)

func (s *Store) LoadMoodEntries() ([]models.MoodEntry, error) {
	rows, err := s.db.Query("SELECT id, timestamp, mood, notes FROM mood_entries ORDER BY position ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.MoodEntry{}
	for rows.Next() {
		var (
			e     models.MoodEntry
			ts    string
			mood  string
			notes sql.NullString
		)
		if err := rows.Scan(&e.ID, &ts, &mood, &notes); err != nil {
			return nil, err
		}
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("mood entry %s: bad timestamp %q: %w", e.ID, ts, err)
		}
		if e.Mood, err = models.ParseMood(mood); err != nil {
			return nil, fmt.Errorf("mood entry %s: %w", e.ID, err)
		}
		if notes.Valid {
			n := notes.String
			e.Notes = &n
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) SaveMoodEntries(entries []models.MoodEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM mood_entries"); err != nil {
		return fmt.Errorf("failed to clear mood entries: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO mood_entries (id, position, timestamp, mood, notes) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		var notes sql.NullString
		if e.Notes != nil {
			notes = sql.NullString{String: *e.Notes, Valid: true}
		}
		if _, err := stmt.Exec(e.ID, i, e.Timestamp.Format(time.RFC3339Nano), string(e.Mood), notes); err != nil {
			return fmt.Errorf("failed to save mood entry %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

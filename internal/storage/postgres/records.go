package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/storage"
)

func (s *Store) LoadProfile() (models.SobrietyProfile, error) {
	var p models.SobrietyProfile
	err := s.db.QueryRow(`
		SELECT start_date, monthly_alcohol_cost, monthly_related_cost, monthly_time_lost_days
		FROM profile WHERE id = 1`).
		Scan(&p.StartDate, &p.MonthlyAlcoholCost, &p.MonthlyRelatedCost, &p.MonthlyTimeLostDays)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SobrietyProfile{}, storage.ErrNotFound
		}
		return models.SobrietyProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return p, nil
}

func (s *Store) SaveProfile(p models.SobrietyProfile) error {
	_, err := s.db.Exec(`
		INSERT INTO profile (id, start_date, monthly_alcohol_cost, monthly_related_cost, monthly_time_lost_days, updated_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			start_date = EXCLUDED.start_date,
			monthly_alcohol_cost = EXCLUDED.monthly_alcohol_cost,
			monthly_related_cost = EXCLUDED.monthly_related_cost,
			monthly_time_lost_days = EXCLUDED.monthly_time_lost_days,
			updated_at = NOW()`,
		p.StartDate, p.MonthlyAlcoholCost, p.MonthlyRelatedCost, p.MonthlyTimeLostDays,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *Store) LoadSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(data) == 0 {
		return models.Settings{}, storage.ErrNotFound
	}
	return models.MapToSettings(data)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

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
			mood  string
			notes sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &mood, &notes); err != nil {
			return nil, err
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

	stmt, err := tx.Prepare("INSERT INTO mood_entries (id, position, timestamp, mood, notes) VALUES ($1, $2, $3, $4, $5)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		var notes sql.NullString
		if e.Notes != nil {
			notes = sql.NullString{String: *e.Notes, Valid: true}
		}
		if _, err := stmt.Exec(e.ID, i, e.Timestamp, string(e.Mood), notes); err != nil {
			return fmt.Errorf("failed to save mood entry %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

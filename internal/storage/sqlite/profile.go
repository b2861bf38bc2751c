package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/storage"
)

func (s *Store) LoadProfile() (models.SobrietyProfile, error) {
	var (
		p     models.SobrietyProfile
		start string
	)
	err := s.db.QueryRow(`
		SELECT start_date, monthly_alcohol_cost, monthly_related_cost, monthly_time_lost_days
		FROM profile WHERE id = 1`).
		Scan(&start, &p.MonthlyAlcoholCost, &p.MonthlyRelatedCost, &p.MonthlyTimeLostDays)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SobrietyProfile{}, storage.ErrNotFound
		}
		return models.SobrietyProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	p.StartDate, err = time.Parse(time.RFC3339Nano, start)
	if err != nil {
		return models.SobrietyProfile{}, fmt.Errorf("failed to parse start_date %q: %w", start, err)
	}
	return p, nil
}

func (s *Store) SaveProfile(p models.SobrietyProfile) error {
	_, err := s.db.Exec(`
		INSERT INTO profile (id, start_date, monthly_alcohol_cost, monthly_related_cost, monthly_time_lost_days, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_date = excluded.start_date,
			monthly_alcohol_cost = excluded.monthly_alcohol_cost,
			monthly_related_cost = excluded.monthly_related_cost,
			monthly_time_lost_days = excluded.monthly_time_lost_days,
			updated_at = excluded.updated_at`,
		p.StartDate.Format(time.RFC3339Nano),
		p.MonthlyAlcoholCost.String(),
		p.MonthlyRelatedCost.String(),
		p.MonthlyTimeLostDays.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

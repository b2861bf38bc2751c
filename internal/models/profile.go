package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SobrietyProfile is the single source-of-truth record describing when the
// user quit and what drinking used to cost them each month.
type SobrietyProfile struct {
	StartDate           time.Time       `json:"start_date"`
	MonthlyAlcoholCost  decimal.Decimal `json:"monthly_alcohol_cost"`
	MonthlyRelatedCost  decimal.Decimal `json:"monthly_related_cost"`   // taxis, food, etc.
	MonthlyTimeLostDays decimal.Decimal `json:"monthly_time_lost_days"` // days lost to hangovers and recovery
}

// MonthlyCost returns the combined monthly spend the profile represents.
func (p SobrietyProfile) MonthlyCost() decimal.Decimal {
	return p.MonthlyAlcoholCost.Add(p.MonthlyRelatedCost)
}

// Equal reports whether two profiles carry the same values. Start dates are
// compared as instants.
func (p SobrietyProfile) Equal(other SobrietyProfile) bool {
	return p.StartDate.Equal(other.StartDate) &&
		p.MonthlyAlcoholCost.Equal(other.MonthlyAlcoholCost) &&
		p.MonthlyRelatedCost.Equal(other.MonthlyRelatedCost) &&
		p.MonthlyTimeLostDays.Equal(other.MonthlyTimeLostDays)
}

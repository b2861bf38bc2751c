// Package sobriety derives elapsed-time, savings and projection figures from
// a SobrietyProfile. Every value is recomputed from the profile and the
// supplied current time on each call.
package sobriety

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/soberly/internal/constants"
	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/timemath"
)

// TimeUnit names the unit chosen for the headline duration.
type TimeUnit string

const (
	UnitDay   TimeUnit = "day"
	UnitWeek  TimeUnit = "week"
	UnitMonth TimeUnit = "month"
	UnitYear  TimeUnit = "year"
)

// Display is the headline duration: the largest non-zero unit and its magnitude.
type Display struct {
	Value int
	Unit  TimeUnit
}

// Metrics holds every figure derived from a profile at a point in time.
type Metrics struct {
	DaysSober   int
	WeeksSober  int
	MonthsSober int
	YearsSober  int

	MoneySaved               decimal.Decimal
	TimeSaved                decimal.Decimal // days
	ProjectedSavings6Months  decimal.Decimal
	ProjectedSavings12Months decimal.Decimal

	Display Display
}

// Compute derives all metrics for profile as of now.
func Compute(profile models.SobrietyProfile, now time.Time) Metrics {
	elapsed := timemath.Between(profile.StartDate, now)
	monthly := profile.MonthlyCost()

	return Metrics{
		DaysSober:                elapsed.Days,
		WeeksSober:               elapsed.Weeks,
		MonthsSober:              elapsed.Months,
		YearsSober:               elapsed.Years,
		MoneySaved:               Interpolate(monthly, elapsed),
		TimeSaved:                Interpolate(profile.MonthlyTimeLostDays, elapsed),
		ProjectedSavings6Months:  Projection(monthly, 6),
		ProjectedSavings12Months: Projection(monthly, 12),
		Display:                  DisplayFor(elapsed),
	}
}

// Interpolate bills every full calendar month at the monthly rate and the
// remaining days (days mod 30) pro rata against a 30-day month.
//
// The remainder uses a fixed 30-day month while full months are calendar
// months. When day 30, 60, ... arrives before the matching month
// anniversary (a start on the 1st of a 31-day month), the remainder resets
// to zero with no full month to replace it, and the total drops by 29/30 of
// the monthly rate until the anniversary. Between those days the result
// never decreases.
func Interpolate(monthly decimal.Decimal, elapsed timemath.Elapsed) decimal.Decimal {
	perMonth := constants.DaysPerInterpolatedMonth
	full := monthly.Mul(decimal.NewFromInt(int64(elapsed.Months)))
	extraDays := decimal.NewFromInt(int64(elapsed.Days % perMonth))
	partial := monthly.Div(decimal.NewFromInt(int64(perMonth))).Mul(extraDays)
	return full.Add(partial)
}

// Projection extrapolates the monthly rate over the given number of months.
func Projection(monthly decimal.Decimal, months int) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(int64(months)))
}

// DisplayFor picks the largest unit with a non-zero count. Zero days still
// yields a day display.
func DisplayFor(e timemath.Elapsed) Display {
	switch {
	case e.Years >= 1:
		return Display{Value: e.Years, Unit: UnitYear}
	case e.Months >= 1:
		return Display{Value: e.Months, Unit: UnitMonth}
	case e.Weeks >= 1:
		return Display{Value: e.Weeks, Unit: UnitWeek}
	default:
		return Display{Value: e.Days, Unit: UnitDay}
	}
}

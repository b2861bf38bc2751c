// Package validation checks onboarding and profile-edit input before it is
// turned into a models.SobrietyProfile.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/soberly/internal/constants"
	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/timemath"
)

// ErrInvalidInput is wrapped by every *Error.
var ErrInvalidInput = errors.New("invalid input")

// ProblemType identifies why a field was rejected.
type ProblemType string

const (
	ProblemMissing     ProblemType = "missing"
	ProblemNotNumeric  ProblemType = "not_numeric"
	ProblemNegative    ProblemType = "negative"
	ProblemInvalidDate ProblemType = "invalid_date"
	ProblemFutureDate  ProblemType = "future_date"

	ProblemInvalidCurrency ProblemType = "invalid_currency"
)

// Field names reported in Error.Field.
const (
	FieldStartDate    = "start_date"
	FieldAlcoholCost  = "alcohol_cost"
	FieldRelatedCost  = "related_cost"
	FieldTimeLostDays = "time_lost_days"
)

// Error describes a single rejected field.
type Error struct {
	Field string
	Type  ProblemType
	Value string
}

func (e *Error) Error() string {
	switch e.Type {
	case ProblemMissing:
		return fmt.Sprintf("%s: value is required", e.Field)
	case ProblemNotNumeric:
		return fmt.Sprintf("%s: %q is not a number", e.Field, e.Value)
	case ProblemNegative:
		return fmt.Sprintf("%s: %s must not be negative", e.Field, e.Value)
	case ProblemInvalidDate:
		return fmt.Sprintf("%s: %q is not a date (expected %s)", e.Field, e.Value, constants.DateFormat)
	case ProblemFutureDate:
		return fmt.Sprintf("%s: %s is in the future", e.Field, e.Value)
	case ProblemInvalidCurrency:
		return fmt.Sprintf("%s: %q is not a three-letter currency code", e.Field, e.Value)
	default:
		return fmt.Sprintf("%s: invalid value %q", e.Field, e.Value)
	}
}

func (e *Error) Unwrap() error {
	return ErrInvalidInput
}

// ProfileInput is the raw text a user entered for a profile.
type ProfileInput struct {
	StartDate    string
	AlcoholCost  string
	RelatedCost  string
	TimeLostDays string
}

// ParseAmount parses a non-negative decimal. Both "." and "," are accepted
// as the decimal separator.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Zero, &Error{Field: field, Type: ProblemMissing}
	}
	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return decimal.Zero, &Error{Field: field, Type: ProblemNotNumeric, Value: raw}
	}
	if d.IsNegative() {
		return decimal.Zero, &Error{Field: field, Type: ProblemNegative, Value: raw}
	}
	return d, nil
}

// ParseStartDate parses a YYYY-MM-DD date in now's location and rejects
// dates after now's calendar day.
func ParseStartDate(s string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, &Error{Field: FieldStartDate, Type: ProblemMissing}
	}
	t, err := time.ParseInLocation(constants.DateFormat, raw, now.Location())
	if err != nil {
		return time.Time{}, &Error{Field: FieldStartDate, Type: ProblemInvalidDate, Value: raw}
	}
	if t.After(timemath.StartOfDay(now)) {
		return time.Time{}, &Error{Field: FieldStartDate, Type: ProblemFutureDate, Value: raw}
	}
	return t, nil
}

// ValidateStartTime rejects a start instant later than now.
func ValidateStartTime(start, now time.Time) error {
	if start.After(now) {
		return &Error{Field: FieldStartDate, Type: ProblemFutureDate, Value: start.Format(constants.DateFormat)}
	}
	return nil
}

// Profile validates every field and returns the first problem found, in
// form order. Nothing partial is returned on failure.
func Profile(in ProfileInput, now time.Time) (models.SobrietyProfile, error) {
	start, err := ParseStartDate(in.StartDate, now)
	if err != nil {
		return models.SobrietyProfile{}, err
	}
	alcohol, err := ParseAmount(FieldAlcoholCost, in.AlcoholCost)
	if err != nil {
		return models.SobrietyProfile{}, err
	}
	related, err := ParseAmount(FieldRelatedCost, in.RelatedCost)
	if err != nil {
		return models.SobrietyProfile{}, err
	}
	timeLost, err := ParseAmount(FieldTimeLostDays, in.TimeLostDays)
	if err != nil {
		return models.SobrietyProfile{}, err
	}

	return models.SobrietyProfile{
		StartDate:           start,
		MonthlyAlcoholCost:  alcohol,
		MonthlyRelatedCost:  related,
		MonthlyTimeLostDays: timeLost,
	}, nil
}

// StoredProfile checks a profile read back from storage: every amount must
// be non-negative and the start must not be after now.
func StoredProfile(p models.SobrietyProfile, now time.Time) error {
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{FieldAlcoholCost, p.MonthlyAlcoholCost},
		{FieldRelatedCost, p.MonthlyRelatedCost},
		{FieldTimeLostDays, p.MonthlyTimeLostDays},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return &Error{Field: a.field, Type: ProblemNegative, Value: a.value.String()}
		}
	}
	return ValidateStartTime(p.StartDate, now)
}

// ProfileToInput renders a stored profile back into form text, for editing.
func ProfileToInput(p models.SobrietyProfile) ProfileInput {
	return ProfileInput{
		StartDate:    p.StartDate.Format(constants.DateFormat),
		AlcoholCost:  p.MonthlyAlcoholCost.String(),
		RelatedCost:  p.MonthlyRelatedCost.String(),
		TimeLostDays: p.MonthlyTimeLostDays.String(),
	}
}

// AmountValidator returns a func suitable for interactive form fields.
func AmountValidator(field string) func(string) error {
	return func(s string) error {
		_, err := ParseAmount(field, s)
		return err
	}
}

// DateValidator returns a form-field validator bound to now.
func DateValidator(now func() time.Time) func(string) error {
	return func(s string) error {
		_, err := ParseStartDate(s, now())
		return err
	}
}

// Currency validates a three-letter ISO 4217 style code.
func Currency(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", &Error{Field: constants.SettingCurrency, Type: ProblemInvalidCurrency, Value: code}
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", &Error{Field: constants.SettingCurrency, Type: ProblemInvalidCurrency, Value: code}
		}
	}
	return c, nil
}

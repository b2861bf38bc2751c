package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/soberly/internal/models"
)

var now = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func validInput() ProfileInput {
	return ProfileInput{
		StartDate:    "2024-01-15",
		AlcoholCost:  "300",
		RelatedCost:  "50.5",
		TimeLostDays: "3",
	}
}

func TestProfile_Valid(t *testing.T) {
	p, err := Profile(validInput(), now)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	wantStart := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !p.StartDate.Equal(wantStart) {
		t.Errorf("StartDate = %v, want %v", p.StartDate, wantStart)
	}
	if !p.MonthlyRelatedCost.Equal(decimal.RequireFromString("50.5")) {
		t.Errorf("MonthlyRelatedCost = %s, want 50.5", p.MonthlyRelatedCost)
	}
	if !p.MonthlyCost().Equal(decimal.RequireFromString("350.5")) {
		t.Errorf("MonthlyCost() = %s, want 350.5", p.MonthlyCost())
	}
}

func TestProfile_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ProfileInput)
		wantField string
		wantType  ProblemType
	}{
		{"non-numeric alcohol", func(in *ProfileInput) { in.AlcoholCost = "abc" }, FieldAlcoholCost, ProblemNotNumeric},
		{"negative related", func(in *ProfileInput) { in.RelatedCost = "-1" }, FieldRelatedCost, ProblemNegative},
		{"empty time lost", func(in *ProfileInput) { in.TimeLostDays = "  " }, FieldTimeLostDays, ProblemMissing},
		{"bad date", func(in *ProfileInput) { in.StartDate = "15/01/2024" }, FieldStartDate, ProblemInvalidDate},
		{"future date", func(in *ProfileInput) { in.StartDate = "2024-06-16" }, FieldStartDate, ProblemFutureDate},
		{"missing date", func(in *ProfileInput) { in.StartDate = "" }, FieldStartDate, ProblemMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			p, err := Profile(in, now)
			if err == nil {
				t.Fatalf("Profile() expected error, got %+v", p)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error %v does not wrap ErrInvalidInput", err)
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if verr.Field != tt.wantField || verr.Type != tt.wantType {
				t.Errorf("got %s/%s, want %s/%s", verr.Field, verr.Type, tt.wantField, tt.wantType)
			}
			if !p.MonthlyAlcoholCost.IsZero() || !p.StartDate.IsZero() {
				t.Errorf("partial profile returned: %+v", p)
			}
		})
	}
}

func TestParseStartDate_TodayAllowed(t *testing.T) {
	if _, err := ParseStartDate("2024-06-15", now); err != nil {
		t.Errorf("today rejected: %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0", "0", false},
		{"12.50", "12.5", false},
		{"12,50", "12.5", false},
		{" 7 ", "7", false},
		{"1e2", "100", false},
		{"-0.01", "", true},
		{"ten", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAmount("x", tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAmount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestValidateStartTime(t *testing.T) {
	if err := ValidateStartTime(now.Add(-time.Minute), now); err != nil {
		t.Errorf("past instant rejected: %v", err)
	}
	if err := ValidateStartTime(now.Add(time.Minute), now); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("future instant error = %v, want ErrInvalidInput", err)
	}
}

func TestStoredProfile(t *testing.T) {
	valid, err := Profile(validInput(), now)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	tests := []struct {
		name      string
		mutate    func(p *models.SobrietyProfile)
		wantField string
	}{
		{"valid", func(*models.SobrietyProfile) {}, ""},
		{"start now", func(p *models.SobrietyProfile) { p.StartDate = now }, ""},
		{"negative alcohol", func(p *models.SobrietyProfile) { p.MonthlyAlcoholCost = decimal.NewFromInt(-500) }, FieldAlcoholCost},
		{"negative related", func(p *models.SobrietyProfile) { p.MonthlyRelatedCost = decimal.RequireFromString("-0.01") }, FieldRelatedCost},
		{"negative time lost", func(p *models.SobrietyProfile) { p.MonthlyTimeLostDays = decimal.NewFromInt(-1) }, FieldTimeLostDays},
		{"future start", func(p *models.SobrietyProfile) { p.StartDate = now.AddDate(5, 0, 0) }, FieldStartDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := StoredProfile(p, now)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("StoredProfile() error = %v", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) || verr.Field != tt.wantField {
				t.Errorf("StoredProfile() error = %v, want field %s", err, tt.wantField)
			}
		})
	}
}

func TestProfileToInput_RoundTrip(t *testing.T) {
	p, err := Profile(validInput(), now)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	again, err := Profile(ProfileToInput(p), now)
	if err != nil {
		t.Fatalf("Profile(ProfileToInput()) error = %v", err)
	}
	if !p.Equal(again) {
		t.Errorf("round trip mismatch: %+v vs %+v", p, again)
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"eur", "EUR", false},
		{" RUB ", "RUB", false},
		{"US", "", true},
		{"EU1", "", true},
	}
	for _, tt := range tests {
		got, err := Currency(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Currency(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestValidators(t *testing.T) {
	if err := AmountValidator(FieldAlcoholCost)("5"); err != nil {
		t.Errorf("AmountValidator(5) = %v", err)
	}
	if err := AmountValidator(FieldAlcoholCost)("-5"); err == nil {
		t.Error("AmountValidator(-5) = nil, want error")
	}
	clock := func() time.Time { return now }
	if err := DateValidator(clock)("2099-01-01"); err == nil {
		t.Error("DateValidator(future) = nil, want error")
	}
}

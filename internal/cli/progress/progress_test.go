package progress

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/cli/clitest"
	"github.com/julianstephens/soberly/internal/validation"
)

// onboarded returns an env whose profile started 31 days before clitest.Now.
func onboarded(t *testing.T) *clitest.Env {
	t.Helper()
	env := clitest.New(t, nil)
	_, err := env.Tracker.SaveProfile(context.Background(), validation.ProfileInput{
		StartDate:    "2026-02-07",
		AlcoholCost:  "300",
		RelatedCost:  "60",
		TimeLostDays: "3",
	})
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	return env
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatus(t *testing.T) {
	env := onboarded(t)
	if err := (&StatusCmd{}).Run(env.Context); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertContains(t, env.Buf.String(),
		"Sober since 2026-02-07",
		"Days streak",
		"372",
		"3.1 days",
		"Next milestone",
		"Healthier heart",
		"59 days remaining",
	)
}

func TestDaysRemaining_SingularOnFirstDay(t *testing.T) {
	env := clitest.New(t, nil)
	_, err := env.Tracker.SaveProfile(context.Background(), validation.ProfileInput{
		StartDate:    "2026-03-10",
		AlcoholCost:  "300",
		RelatedCost:  "0",
		TimeLostDays: "0",
	})
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	commands := map[string]interface{ Run(*cli.Context) error }{
		"status":       &StatusCmd{},
		"health":       &HealthCmd{},
		"achievements": &AchievementsCmd{},
	}
	for name, cmd := range commands {
		t.Run(name, func(t *testing.T) {
			env.Buf.Reset()
			if err := cmd.Run(env.Context); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			out := env.Buf.String()
			if strings.Contains(out, "1 days") {
				t.Errorf("unpluralized day count:\n%s", out)
			}
			if !strings.Contains(out, "1 day") {
				t.Errorf("output missing %q:\n%s", "1 day", out)
			}
		})
	}
}

func TestStatus_NotOnboarded(t *testing.T) {
	env := clitest.New(t, nil)
	if err := (&StatusCmd{}).Run(env.Context); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertContains(t, env.Buf.String(), "soberly onboard")
}

func TestHealth(t *testing.T) {
	env := onboarded(t)
	if err := (&HealthCmd{}).Run(env.Context); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertContains(t, env.Buf.String(),
		"5 of 8 milestones achieved",
		"Mental clarity",
		"Healthier heart",
		"59 days remaining",
	)
}

func TestHealth_NotOnboarded(t *testing.T) {
	env := clitest.New(t, nil)
	if err := (&HealthCmd{}).Run(env.Context); !errors.Is(err, cli.ErrNotOnboarded) {
		t.Fatalf("Run() error = %v, want ErrNotOnboarded", err)
	}
}

func TestAchievements(t *testing.T) {
	env := onboarded(t)
	if err := (&AchievementsCmd{}).Run(env.Context); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertContains(t, env.Buf.String(),
		"5 / 10",
		"One Month",
		"On Fire",
		"in 29 days",
	)
}

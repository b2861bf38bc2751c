// Package milestones evaluates the fixed health-milestone and achievement
// catalogs against a days-sober count.
package milestones

import (
	"time"

	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/timemath"
)

// Progress partitions the milestone catalog for a days-sober count.
// Achieved, Next and Upcoming together reconstruct the catalog in order.
type Progress struct {
	Achieved []models.HealthMilestone
	Next     *models.HealthMilestone
	Upcoming []models.HealthMilestone
}

// IsAchieved reports whether the milestone has been reached.
func IsAchieved(m models.HealthMilestone, daysSober int) bool {
	return daysSober >= m.DaysRequired
}

// IsUnlocked reports whether the achievement has been earned.
func IsUnlocked(a models.Achievement, daysSober int) bool {
	return daysSober >= a.DaysRequired
}

// Achieved returns the reached milestones in catalog order.
func Achieved(daysSober int) []models.HealthMilestone {
	out := []models.HealthMilestone{}
	for _, m := range healthMilestones {
		if IsAchieved(m, daysSober) {
			out = append(out, m)
		}
	}
	return out
}

// Next returns the first milestone not yet reached. ok is false once every
// milestone has been achieved.
func Next(daysSober int) (next models.HealthMilestone, ok bool) {
	for _, m := range healthMilestones {
		if !IsAchieved(m, daysSober) {
			return m, true
		}
	}
	return models.HealthMilestone{}, false
}

// Upcoming returns the unreached milestones after the next one.
func Upcoming(daysSober int) []models.HealthMilestone {
	out := []models.HealthMilestone{}
	skippedNext := false
	for _, m := range healthMilestones {
		if IsAchieved(m, daysSober) {
			continue
		}
		if !skippedNext {
			skippedNext = true
			continue
		}
		out = append(out, m)
	}
	return out
}

// Evaluate returns the full milestone partition for daysSober.
func Evaluate(daysSober int) Progress {
	p := Progress{
		Achieved: Achieved(daysSober),
		Upcoming: Upcoming(daysSober),
	}
	if next, ok := Next(daysSober); ok {
		p.Next = &next
	}
	return p
}

// Unlocked returns the earned achievements in catalog order.
func Unlocked(daysSober int) []models.Achievement {
	out := []models.Achievement{}
	for _, a := range achievements {
		if IsUnlocked(a, daysSober) {
			out = append(out, a)
		}
	}
	return out
}

// Locked returns the achievements not yet earned in catalog order.
func Locked(daysSober int) []models.Achievement {
	out := []models.Achievement{}
	for _, a := range achievements {
		if !IsUnlocked(a, daysSober) {
			out = append(out, a)
		}
	}
	return out
}

// DaysRemaining returns how many days are left until daysRequired is
// reached. ok is false when the threshold is already met, in which case no
// countdown should be shown.
func DaysRemaining(daysRequired, daysSober int) (remaining int, ok bool) {
	if daysSober >= daysRequired {
		return 0, false
	}
	return daysRequired - daysSober, true
}

// ReachedAt returns the calendar instant on which a milestone is reached for
// a given start date: midnight of the start date plus DaysRequired days.
func ReachedAt(start time.Time, m models.HealthMilestone) time.Time {
	return timemath.StartOfDay(start).AddDate(0, 0, m.DaysRequired)
}

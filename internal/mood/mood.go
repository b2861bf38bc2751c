// Package mood aggregates recorded mood entries into summary statistics.
package mood

import "github.com/julianstephens/soberly/internal/models"

// Tier classifies an average mood score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierOkay      Tier = "okay"
	TierBad       Tier = "bad"
	TierTerrible  Tier = "terrible"
)

// LocalizationKey returns the resource key for the tier label.
func (t Tier) LocalizationKey() string {
	return "mood.tier." + string(t)
}

// Summary holds aggregate statistics over a set of mood entries.
type Summary struct {
	Average    float64
	Tier       Tier
	Total      int
	MostCommon models.Mood
	Counts     map[models.Mood]int
}

// Classify maps an average score onto a tier. Lower bounds are inclusive.
func Classify(average float64) Tier {
	switch {
	case average >= 4.5:
		return TierExcellent
	case average >= 3.5:
		return TierGood
	case average >= 2.5:
		return TierOkay
	case average >= 1.5:
		return TierBad
	default:
		return TierTerrible
	}
}

// Summarize aggregates entries. ok is false when there are no entries, since
// no average exists; a zero average would be indistinguishable from the
// terrible tier.
func Summarize(entries []models.MoodEntry) (summary Summary, ok bool) {
	if len(entries) == 0 {
		return Summary{}, false
	}

	counts := make(map[models.Mood]int, len(models.AllMoods))
	total := 0.0
	for _, e := range entries {
		counts[e.Mood]++
		total += e.Mood.Score()
	}

	avg := total / float64(len(entries))
	return Summary{
		Average:    avg,
		Tier:       Classify(avg),
		Total:      len(entries),
		MostCommon: mostCommon(counts),
		Counts:     counts,
	}, true
}

// Average returns the mean score of entries; ok is false for no entries.
func Average(entries []models.MoodEntry) (avg float64, ok bool) {
	s, ok := Summarize(entries)
	return s.Average, ok
}

// mostCommon picks the highest count, breaking ties by declaration order.
func mostCommon(counts map[models.Mood]int) models.Mood {
	best := models.AllMoods[0]
	bestCount := -1
	for _, m := range models.AllMoods {
		if counts[m] > bestCount {
			best = m
			bestCount = counts[m]
		}
	}
	return best
}

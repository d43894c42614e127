// Package insights aggregates diary drafts into mood/intensity trends,
// tag frequencies and item recommendations.
package insights

import (
	"fmt"
	"sort"

	"journaldb/pkg/models"
)

// deltaThreshold is the minimum averaged change that counts as a trend.
const deltaThreshold = 0.001

// Average returns the mean of values, or nil for an empty input so
// "no data" is distinguishable from an average of zero.
func Average(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}

// DeltaDirection classifies a delta as "up", "down" or "flat" using the
// trend threshold.
func DeltaDirection(delta float64) string {
	switch {
	case delta > deltaThreshold:
		return "up"
	case delta < -deltaThreshold:
		return "down"
	default:
		return "flat"
	}
}

// FormatSigned renders a delta with an explicit sign and two decimals,
// e.g. "+0.50" or "-1.25".
func FormatSigned(delta float64) string {
	return fmt.Sprintf("%+.2f", delta)
}

// WeeklyComparison holds the trailing week's averages against the week
// before. Averages and deltas are nil when the window has no scored
// entries.
type WeeklyComparison struct {
	MoodAvg          *float64 `json:"moodAvg"`
	MoodPrevAvg      *float64 `json:"moodPrevAvg"`
	MoodDelta        *float64 `json:"moodDelta"`
	IntensityAvg     *float64 `json:"intensityAvg"`
	IntensityPrevAvg *float64 `json:"intensityPrevAvg"`
	IntensityDelta   *float64 `json:"intensityDelta"`
	Entries          int      `json:"entries"`
	PrevEntries      int      `json:"prevEntries"`
}

func moods(drafts []models.DiaryDraft) []float64 {
	out := make([]float64, 0, len(drafts))
	for _, d := range drafts {
		if d.Mood != nil {
			out = append(out, float64(*d.Mood))
		}
	}
	return out
}

func intensities(drafts []models.DiaryDraft) []float64 {
	out := make([]float64, 0, len(drafts))
	for _, d := range drafts {
		if d.Intensity != nil {
			out = append(out, float64(*d.Intensity))
		}
	}
	return out
}

// CompareWeeks computes the weekly comparison between the trailing week
// and the one before it. A delta is present only when both windows have
// a value.
func CompareWeeks(thisWeek, lastWeek []models.DiaryDraft) WeeklyComparison {
	c := WeeklyComparison{
		MoodAvg:          Average(moods(thisWeek)),
		MoodPrevAvg:      Average(moods(lastWeek)),
		IntensityAvg:     Average(intensities(thisWeek)),
		IntensityPrevAvg: Average(intensities(lastWeek)),
		Entries:          len(thisWeek),
		PrevEntries:      len(lastWeek),
	}
	if c.MoodAvg != nil && c.MoodPrevAvg != nil {
		d := *c.MoodAvg - *c.MoodPrevAvg
		c.MoodDelta = &d
	}
	if c.IntensityAvg != nil && c.IntensityPrevAvg != nil {
		d := *c.IntensityAvg - *c.IntensityPrevAvg
		c.IntensityDelta = &d
	}
	return c
}

// TagCount pairs a tag with its occurrence count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagFrequency counts tag occurrences across drafts and returns them
// sorted by count descending. Ties keep first-appearance order.
func TagFrequency(drafts []models.DiaryDraft) []TagCount {
	counts := map[string]int{}
	var order []string
	for _, d := range drafts {
		for _, t := range d.Tags {
			if t == "" {
				continue
			}
			if _, ok := counts[t]; !ok {
				order = append(order, t)
			}
			counts[t]++
		}
	}
	out := make([]TagCount, 0, len(order))
	for _, t := range order {
		out = append(out, TagCount{Tag: t, Count: counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopTags returns the most frequent tags across drafts, at most limit.
func TopTags(drafts []models.DiaryDraft, limit int) []string {
	freq := TagFrequency(drafts)
	if limit > 0 && len(freq) > limit {
		freq = freq[:limit]
	}
	out := make([]string, 0, len(freq))
	for _, tc := range freq {
		out = append(out, tc.Tag)
	}
	return out
}

// RecommendLimit caps the number of recommended feed items.
const RecommendLimit = 6

// Recommend scores feed items by tag overlap with the user's interest
// tags and returns the positively scored ones, highest first. Ties keep
// input order.
func Recommend(items []models.CommunityItem, interestTags []string, limit int) []models.CommunityItem {
	if limit <= 0 {
		limit = RecommendLimit
	}
	interest := make(map[string]struct{}, len(interestTags))
	for _, t := range interestTags {
		if t != "" {
			interest[t] = struct{}{}
		}
	}
	type scored struct {
		item  models.CommunityItem
		score int
	}
	var ranked []scored
	for _, it := range items {
		score := 0
		for _, t := range it.Tags {
			if _, ok := interest[t]; ok {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{item: it, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]models.CommunityItem, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.item)
	}
	return out
}

// WeeklyFallbackSummary renders a deterministic weekly summary used
// when no language model is reachable.
func WeeklyFallbackSummary(c WeeklyComparison, topTags []string) string {
	if c.Entries == 0 {
		return "No journal entries this week yet. Write a little each day to see your trends here."
	}
	s := fmt.Sprintf("You logged %d entries this week.", c.Entries)
	if c.MoodAvg != nil {
		s += fmt.Sprintf(" Average mood %.2f", *c.MoodAvg)
		if c.MoodDelta != nil {
			s += fmt.Sprintf(" (%s vs last week, %s)", FormatSigned(*c.MoodDelta), DeltaDirection(*c.MoodDelta))
		}
		s += "."
	}
	if c.IntensityAvg != nil {
		s += fmt.Sprintf(" Average intensity %.2f", *c.IntensityAvg)
		if c.IntensityDelta != nil {
			s += fmt.Sprintf(" (%s vs last week, %s)", FormatSigned(*c.IntensityDelta), DeltaDirection(*c.IntensityDelta))
		}
		s += "."
	}
	if len(topTags) > 0 {
		s += " Recurring themes: "
		for i, t := range topTags {
			if i > 0 {
				s += ", "
			}
			s += t
		}
		s += "."
	}
	return s
}

// MonthlyFallbackSummary renders a deterministic monthly summary.
func MonthlyFallbackSummary(entries int, moodAvg, intensityAvg *float64, topTags []string) string {
	if entries == 0 {
		return "No journal entries this month yet."
	}
	s := fmt.Sprintf("You logged %d entries this month.", entries)
	if moodAvg != nil {
		s += fmt.Sprintf(" Average mood %.2f.", *moodAvg)
	}
	if intensityAvg != nil {
		s += fmt.Sprintf(" Average intensity %.2f.", *intensityAvg)
	}
	if len(topTags) > 0 {
		s += " Recurring themes: "
		for i, t := range topTags {
			if i > 0 {
				s += ", "
			}
			s += t
		}
		s += "."
	}
	return s
}

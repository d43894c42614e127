package insights

import (
	"testing"

	"journaldb/pkg/models"
)

func intp(v int) *int { return &v }

func draft(date string, mood, intensity int, tags ...string) models.DiaryDraft {
	d := models.DiaryDraft{Date: date, Tags: tags}
	if mood > 0 {
		d.Mood = intp(mood)
	}
	if intensity > 0 {
		d.Intensity = intp(intensity)
	}
	return d
}

func TestAverageEmptyIsNil(t *testing.T) {
	if Average(nil) != nil {
		t.Fatalf("empty input should yield nil, not zero")
	}
	got := Average([]float64{2, 4})
	if got == nil || *got != 3 {
		t.Fatalf("unexpected average: %v", got)
	}
}

func TestDeltaDirection(t *testing.T) {
	cases := []struct {
		delta float64
		want  string
	}{
		{0.5, "up"},
		{-0.5, "down"},
		{0, "flat"},
		{0.0005, "flat"},
		{-0.0005, "flat"},
		{0.002, "up"},
	}
	for _, c := range cases {
		if got := DeltaDirection(c.delta); got != c.want {
			t.Fatalf("delta %v: got %s want %s", c.delta, got, c.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSigned(0.5); got != "+0.50" {
		t.Fatalf("got %q", got)
	}
	if got := FormatSigned(-1.25); got != "-1.25" {
		t.Fatalf("got %q", got)
	}
	if got := FormatSigned(0); got != "+0.00" {
		t.Fatalf("got %q", got)
	}
}

func TestCompareWeeks(t *testing.T) {
	thisWeek := []models.DiaryDraft{
		draft("2026-01-10", 4, 2),
		draft("2026-01-09", 3, 4),
	}
	lastWeek := []models.DiaryDraft{
		draft("2026-01-03", 3, 3),
	}
	c := CompareWeeks(thisWeek, lastWeek)
	if c.MoodAvg == nil || *c.MoodAvg != 3.5 {
		t.Fatalf("mood avg: %v", c.MoodAvg)
	}
	if c.MoodDelta == nil || *c.MoodDelta != 0.5 {
		t.Fatalf("mood delta: %v", c.MoodDelta)
	}
	if FormatSigned(*c.MoodDelta) != "+0.50" || DeltaDirection(*c.MoodDelta) != "up" {
		t.Fatalf("mood trend rendering wrong")
	}
	if c.Entries != 2 || c.PrevEntries != 1 {
		t.Fatalf("counts: %d %d", c.Entries, c.PrevEntries)
	}
}

func TestCompareWeeksEmptyWindows(t *testing.T) {
	c := CompareWeeks(nil, nil)
	if c.MoodAvg != nil || c.MoodDelta != nil || c.IntensityAvg != nil {
		t.Fatalf("empty windows should yield nils: %+v", c)
	}
}

func TestCompareWeeksDeltaNeedsBothWindows(t *testing.T) {
	c := CompareWeeks([]models.DiaryDraft{draft("2026-01-10", 4, 0)}, nil)
	if c.MoodAvg == nil {
		t.Fatalf("this week's average missing")
	}
	if c.MoodDelta != nil {
		t.Fatalf("delta should be nil without a previous window")
	}
}

func TestTagFrequency(t *testing.T) {
	drafts := []models.DiaryDraft{
		draft("2026-01-10", 0, 0, "sleep", "stress"),
		draft("2026-01-09", 0, 0, "sleep"),
		draft("2026-01-08", 0, 0, "mood", "stress", "sleep"),
	}
	freq := TagFrequency(drafts)
	if len(freq) != 3 {
		t.Fatalf("unexpected freq: %+v", freq)
	}
	if freq[0].Tag != "sleep" || freq[0].Count != 3 {
		t.Fatalf("top tag wrong: %+v", freq[0])
	}
	if freq[1].Tag != "stress" || freq[2].Tag != "mood" {
		t.Fatalf("tie-break/order wrong: %+v", freq)
	}
}

func TestTopTagsLimit(t *testing.T) {
	drafts := []models.DiaryDraft{draft("2026-01-10", 0, 0, "a", "b", "c")}
	got := TopTags(drafts, 2)
	if len(got) != 2 {
		t.Fatalf("limit not applied: %v", got)
	}
}

func TestRecommendScoringAndOrder(t *testing.T) {
	items := []models.CommunityItem{
		{ID: "item1", Tags: []string{"sleep"}},
		{ID: "item2", Tags: []string{"caffeine"}},
		{ID: "item3", Tags: []string{"sleep", "stress"}},
	}
	got := Recommend(items, []string{"sleep", "stress"}, 6)
	if len(got) != 2 {
		t.Fatalf("zero-score item leaked in: %+v", got)
	}
	if got[0].ID != "item3" || got[1].ID != "item1" {
		t.Fatalf("order wrong: %v %v", got[0].ID, got[1].ID)
	}
}

func TestRecommendLimit(t *testing.T) {
	var items []models.CommunityItem
	for i := 0; i < 10; i++ {
		items = append(items, models.CommunityItem{ID: string(rune('a' + i)), Tags: []string{"sleep"}})
	}
	got := Recommend(items, []string{"sleep"}, 0)
	if len(got) != RecommendLimit {
		t.Fatalf("default limit not applied: %d", len(got))
	}
}

func TestWeeklyFallbackSummary(t *testing.T) {
	empty := WeeklyFallbackSummary(WeeklyComparison{}, nil)
	if empty == "" {
		t.Fatalf("empty summary should still produce text")
	}
	thisWeek := []models.DiaryDraft{draft("2026-01-10", 4, 2, "sleep")}
	lastWeek := []models.DiaryDraft{draft("2026-01-03", 3, 3)}
	s := WeeklyFallbackSummary(CompareWeeks(thisWeek, lastWeek), []string{"sleep"})
	if s == "" || s == empty {
		t.Fatalf("summary not data-driven: %q", s)
	}
}

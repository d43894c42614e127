package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"journaldb/pkg/insights"
	"journaldb/pkg/llm"
	"journaldb/pkg/logger"
	"journaldb/pkg/models"
	"journaldb/pkg/sleepday"
	"journaldb/pkg/utils"
)

const (
	topTagLimit      = 5
	interestTagLimit = 8
)

type weeklyInsightsResponse struct {
	insights.WeeklyComparison
	MoodTrend      string              `json:"moodTrend"`
	IntensityTrend string              `json:"intensityTrend"`
	TopTags        []insights.TagCount `json:"topTags"`
}

func (a *API) weeklyWindows() ([]models.DiaryDraft, []models.DiaryDraft, error) {
	now := a.now()
	thisWeek, err := a.Diary.LoadDates(sleepday.LastN(now, 7, 0))
	if err != nil {
		return nil, nil, err
	}
	lastWeek, err := a.Diary.LoadDates(sleepday.LastN(now, 7, 7))
	if err != nil {
		return nil, nil, err
	}
	return thisWeek, lastWeek, nil
}

// getWeeklyInsights handles GET /v1/insights/weekly: the trailing
// seven sleep-days compared against the seven before them.
func (a *API) getWeeklyInsights(w http.ResponseWriter, r *http.Request) {
	thisWeek, lastWeek, err := a.weeklyWindows()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	cmp := insights.CompareWeeks(thisWeek, lastWeek)
	out := weeklyInsightsResponse{
		WeeklyComparison: cmp,
		MoodTrend:        "flat",
		IntensityTrend:   "flat",
		TopTags:          insights.TagFrequency(thisWeek),
	}
	if cmp.MoodDelta != nil {
		out.MoodTrend = insights.DeltaDirection(*cmp.MoodDelta)
	}
	if cmp.IntensityDelta != nil {
		out.IntensityTrend = insights.DeltaDirection(*cmp.IntensityDelta)
	}
	_ = utils.JSONWrite(w, http.StatusOK, out)
}

type monthlyInsightsResponse struct {
	Year         int                 `json:"year"`
	Month        int                 `json:"month"`
	Entries      int                 `json:"entries"`
	MoodAvg      *float64            `json:"moodAvg"`
	IntensityAvg *float64            `json:"intensityAvg"`
	TopTags      []insights.TagCount `json:"topTags"`
}

func (a *API) monthlyStats(year int, month time.Month) (monthlyInsightsResponse, error) {
	drafts, err := a.Diary.LoadDates(sleepday.MonthDays(year, month))
	if err != nil {
		return monthlyInsightsResponse{}, err
	}
	var moods, intensities []float64
	for _, d := range drafts {
		if d.Mood != nil {
			moods = append(moods, float64(*d.Mood))
		}
		if d.Intensity != nil {
			intensities = append(intensities, float64(*d.Intensity))
		}
	}
	return monthlyInsightsResponse{
		Year:         year,
		Month:        int(month),
		Entries:      len(drafts),
		MoodAvg:      insights.Average(moods),
		IntensityAvg: insights.Average(intensities),
		TopTags:      insights.TagFrequency(drafts),
	}, nil
}

// getMonthlyInsights handles GET /v1/insights/monthly?year=&month=,
// defaulting to the current local month.
func (a *API) getMonthlyInsights(w http.ResponseWriter, r *http.Request) {
	now := a.now()
	year := now.Year()
	month := now.Month()
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			utils.JSONError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(n)
	}
	out, err := a.monthlyStats(year, month)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, out)
}

// getInsightsSummary handles GET /v1/insights/summary?window=weekly|monthly.
// With a configured model it asks for a narrative summary; otherwise it
// falls back to a deterministic local one.
func (a *API) getInsightsSummary(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("window")
	if window == "" {
		window = "weekly"
	}
	switch window {
	case "weekly":
		thisWeek, lastWeek, err := a.weeklyWindows()
		if err != nil {
			utils.JSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		cmp := insights.CompareWeeks(thisWeek, lastWeek)
		tags := insights.TopTags(thisWeek, topTagLimit)
		fallback := insights.WeeklyFallbackSummary(cmp, tags)
		text, source := a.summarize(r, "Summarize the user's past week of journaling in 2-3 sentences.", cmp, fallback)
		_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"window": window, "text": text, "source": source})
	case "monthly":
		now := a.now()
		stats, err := a.monthlyStats(now.Year(), now.Month())
		if err != nil {
			utils.JSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		tags := make([]string, 0, len(stats.TopTags))
		for i, tc := range stats.TopTags {
			if i >= topTagLimit {
				break
			}
			tags = append(tags, tc.Tag)
		}
		fallback := insights.MonthlyFallbackSummary(stats.Entries, stats.MoodAvg, stats.IntensityAvg, tags)
		text, source := a.summarize(r, "Summarize the user's past month of journaling in 2-3 sentences.", stats, fallback)
		_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"window": window, "text": text, "source": source})
	default:
		utils.JSONError(w, http.StatusBadRequest, "invalid window: want weekly or monthly")
	}
}

// summarize asks the configured model for a narrative summary of the
// aggregated data. It returns the text plus its source, "model" or
// "local"; the deterministic fallback is used when no model is
// configured or the call fails.
func (a *API) summarize(r *http.Request, prompt string, data any, fallback string) (string, string) {
	if !a.LLM.Configured() {
		return fallback, "local"
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fallback, "local"
	}
	user := prompt + "\n\nHere is the user's data (JSON):\n" + string(payload)
	text, err := a.LLM.Complete(r.Context(), llm.SummarySystemPrompt, user)
	if err != nil {
		logger.Warn("insights_summary_fallback", "error", err.Error())
		return fallback, "local"
	}
	if text == "" {
		return llm.NoSummaryText, "model"
	}
	return text, "model"
}

// getRecommendations handles GET /v1/insights/recommendations: feed
// items ranked by overlap with the trailing week's top tags.
func (a *API) getRecommendations(w http.ResponseWriter, r *http.Request) {
	now := a.now()
	recent, err := a.Diary.LoadDates(sleepday.LastN(now, 7, 0))
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	interest := insights.TopTags(recent, interestTagLimit)
	items, err := a.Community.Feed("", false)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	recs := insights.Recommend(items, interest, insights.RecommendLimit)
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		InterestTags []string               `json:"interestTags"`
		Items        []models.CommunityItem `json:"items"`
	}{InterestTags: interest, Items: recs})
}

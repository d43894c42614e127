package llm

import (
	"encoding/json"
	"strings"

	"journaldb/pkg/models"
)

// System prompts for the two assisted modes.
const (
	SummarySystemPrompt = "You are a supportive wellness companion. Write concise, empathetic summaries. Output only the summary text."
	ChatSystemPrompt    = "You are a supportive wellness companion. Return ONLY valid JSON with keys: assistant_text, tags, mood, intensity, diary_text, cards. No extra text."
)

// NoSummaryText is returned when the upstream produced no summary.
const NoSummaryText = "No summary generated."

// Structured is the companion chat's structured reply: the visible
// assistant text plus the diary fields extracted from the conversation.
type Structured struct {
	AssistantText string        `json:"assistant_text"`
	Tags          []string      `json:"tags"`
	Mood          int           `json:"mood"`
	Intensity     int           `json:"intensity"`
	DiaryText     string        `json:"diary_text"`
	Cards         []models.Card `json:"cards"`
}

// ParseStructured decodes a structured companion reply. When the raw
// text is not valid JSON the raw text itself becomes the assistant
// message (or an apology when empty) with neutral scores, so a chat
// turn never hard-fails on model formatting.
func ParseStructured(raw string) Structured {
	raw = strings.TrimSpace(raw)
	var out Structured
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		if out.Tags == nil {
			out.Tags = []string{}
		}
		out.Cards = models.NormalizeCards(out.Cards)
		return out
	}
	text := raw
	if text == "" {
		text = "Sorry, I couldn't generate a response."
	}
	return Structured{
		AssistantText: text,
		Tags:          []string{},
		Mood:          3,
		Intensity:     3,
		DiaryText:     "",
		Cards:         []models.Card{},
	}
}

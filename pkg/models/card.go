package models

// CardType tags a suggestion card variant. The set is closed; anything
// the model emits outside it is normalized to the tip-shaped fallback
// rather than rejected.
type CardType string

const (
	CardTrendDelta CardType = "trend_delta"
	CardExercise   CardType = "exercise"
	CardTip        CardType = "tip"
)

// Card is a UI suggestion record produced by the assistant. One struct
// covers all variants; which fields are meaningful depends on Type:
//
//	trend_delta: Window, Delta, Text
//	exercise:    ID, Title, DurationMin
//	tip:         ID, Title, Text
type Card struct {
	Type        CardType `json:"type"`
	Window      string   `json:"window,omitempty"`
	Delta       float64  `json:"delta,omitempty"`
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Text        string   `json:"text,omitempty"`
	DurationMin int      `json:"duration_min,omitempty"`
}

// Normalize coerces an unrecognized card type to the tip fallback,
// keeping whatever title/text the record carried.
func (c Card) Normalize() Card {
	switch c.Type {
	case CardTrendDelta, CardExercise, CardTip:
		return c
	}
	c.Type = CardTip
	return c
}

// NormalizeCards applies Normalize to a decoded card list. A nil input
// yields an empty, non-nil slice so stored records always round-trip a
// JSON array.
func NormalizeCards(cards []Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Normalize())
	}
	return out
}

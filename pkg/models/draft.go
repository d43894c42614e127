package models

import "time"

// Visibility controls whether a diary draft is projected into the
// community feed.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// DiaryDraft is the single mutable journal record for one sleep-day.
// There is exactly one draft per date key; drafts are created lazily on
// first merge and never deleted.
type DiaryDraft struct {
	Date          string     `json:"date"`
	Mood          *int       `json:"mood,omitempty"`
	Intensity     *int       `json:"intensity,omitempty"`
	Tags          []string   `json:"tags"`
	Text          string     `json:"text"`
	Visibility    Visibility `json:"visibility,omitempty"`
	FromSessionID string     `json:"fromSessionId,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Vis normalizes the stored visibility: anything that is not an
// explicit "public" reads as private, so older records without the
// field stay private.
func (d *DiaryDraft) Vis() Visibility {
	if d != nil && d.Visibility == VisibilityPublic {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

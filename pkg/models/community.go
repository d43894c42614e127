package models

import "time"

// CommunityItemType distinguishes the two shareable variants: a
// published diary projection and a free-standing memo.
type CommunityItemType string

const (
	CommunityDiary CommunityItemType = "diary"
	CommunityMemo  CommunityItemType = "memo"
)

// CommunityItem is a shareable unit in the community feed.
//
// Diary items are computed projections of public diary drafts and are
// never stored under community keys; their feed id is "diary:<date>".
// Memo items are stored records addressed by the memo index; their feed
// id is "memo:<id>".
type CommunityItem struct {
	ID         string            `json:"id"`
	Type       CommunityItemType `json:"type"`
	DateISO    string            `json:"dateISO,omitempty"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Tags       []string          `json:"tags"`
	Mood       *int              `json:"mood,omitempty"`
	Intensity  *int              `json:"intensity,omitempty"`
	Visibility Visibility        `json:"visibility,omitempty"`
	CreatedAt  *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time        `json:"updatedAt,omitempty"`
}

// SortKey returns the recency key the unified feed orders by: date for
// diary projections, creation time for memos.
func (it CommunityItem) SortKey() string {
	if it.Type == CommunityDiary {
		return it.DateISO
	}
	if it.CreatedAt != nil {
		return it.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return ""
}

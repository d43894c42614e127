// Package diary manages the per-sleep-day draft records. Each date has
// at most one draft; writes are shallow merges so concurrent surfaces
// (manual edits, chat-session summaries) can update disjoint fields.
package diary

import (
	"strings"
	"time"

	"journaldb/pkg/models"
	"journaldb/pkg/records"
)

// Patch is a partial draft update. Nil fields are left untouched; a
// non-nil Tags slice replaces the stored tags wholesale.
type Patch struct {
	Mood          *int
	Intensity     *int
	Tags          []string
	Text          *string
	Visibility    *models.Visibility
	FromSessionID *string
}

// Store reads and writes diary drafts over a records.KV backend.
type Store struct {
	kv records.KV
}

func NewStore(kv records.KV) *Store { return &Store{kv: kv} }

// KeyPrefix is the namespace for all diary draft records.
const KeyPrefix = records.Prefix + "diaryDraft:"

// KeyFor returns the storage key for a date's draft.
func KeyFor(date string) string { return KeyPrefix + date }

func defaults(date string) models.DiaryDraft {
	return models.DiaryDraft{Date: date, Tags: []string{}, Text: ""}
}

// cleanTags drops empty strings and duplicates, preserving first-seen
// order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Merge applies a shallow patch to the date's draft, creating it from
// defaults when absent, and returns the persisted result. UpdatedAt is
// always refreshed, even for an empty patch.
func (s *Store) Merge(date string, p Patch) (models.DiaryDraft, error) {
	return records.Merge(s.kv, KeyFor(date), defaults(date), func(d *models.DiaryDraft) {
		d.Date = date
		if p.Mood != nil {
			d.Mood = p.Mood
		}
		if p.Intensity != nil {
			d.Intensity = p.Intensity
		}
		if p.Tags != nil {
			d.Tags = p.Tags
		}
		if p.Text != nil {
			d.Text = *p.Text
		}
		if p.Visibility != nil {
			d.Visibility = *p.Visibility
		}
		if p.FromSessionID != nil {
			d.FromSessionID = *p.FromSessionID
		}
		d.Tags = cleanTags(d.Tags)
		d.UpdatedAt = time.Now().UTC()
	})
}

// AppendText appends a paragraph to the date's draft text, separated by
// a blank line. Whitespace-only input appends nothing but still touches
// the draft so UpdatedAt moves.
func (s *Store) AppendText(date, text string) (models.DiaryDraft, error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return s.Merge(date, Patch{})
	}
	cur, err := s.Load(date)
	if err != nil {
		return models.DiaryDraft{}, err
	}
	next := clean
	if cur != nil && cur.Text != "" {
		next = cur.Text + "\n\n" + clean
	}
	return s.Merge(date, Patch{Text: &next})
}

// Load returns the draft for a date, or nil when none is stored.
func (s *Store) Load(date string) (*models.DiaryDraft, error) {
	return records.Load[models.DiaryDraft](s.kv, KeyFor(date))
}

// LoadDates loads the drafts for the given date keys, skipping dates
// with no record. Result order follows the input order.
func (s *Store) LoadDates(dates []string) ([]models.DiaryDraft, error) {
	out := make([]models.DiaryDraft, 0, len(dates))
	for _, d := range dates {
		draft, err := s.Load(d)
		if err != nil {
			return nil, err
		}
		if draft != nil {
			out = append(out, *draft)
		}
	}
	return out, nil
}

// All returns every stored draft, in ascending date order (the key
// order of the underlying store).
func (s *Store) All() ([]models.DiaryDraft, error) {
	keys, err := s.kv.ListKeys(KeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]models.DiaryDraft, 0, len(keys))
	for _, k := range keys {
		draft, err := records.Load[models.DiaryDraft](s.kv, k)
		if err != nil {
			return nil, err
		}
		if draft != nil {
			out = append(out, *draft)
		}
	}
	return out, nil
}

// Range returns stored drafts with from <= date <= to, ascending.
// Empty bounds are open.
func (s *Store) Range(from, to string) ([]models.DiaryDraft, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	out := make([]models.DiaryDraft, 0, len(all))
	for _, d := range all {
		if from != "" && d.Date < from {
			continue
		}
		if to != "" && d.Date > to {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

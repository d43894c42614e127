// Package community assembles the shareable feed: stored memos plus
// read-only projections of public diary drafts.
package community

import (
	"sort"
	"strings"
	"time"

	"journaldb/pkg/diary"
	"journaldb/pkg/models"
	"journaldb/pkg/records"
	"journaldb/pkg/utils"
)

const (
	indexKey   = records.Prefix + "community:index"
	itemPrefix = records.Prefix + "community:item:"
)

func itemKey(id string) string { return itemPrefix + id }

// Store manages memos and computes the unified feed.
type Store struct {
	kv    records.KV
	diary *diary.Store
}

func NewStore(kv records.KV, d *diary.Store) *Store {
	return &Store{kv: kv, diary: d}
}

// MemoInput is the caller-supplied portion of a new memo.
type MemoInput struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	Mood      *int     `json:"mood,omitempty"`
	Intensity *int     `json:"intensity,omitempty"`
}

// CreateMemo persists a memo and front-inserts its id into the memo
// index.
func (s *Store) CreateMemo(in MemoInput) (models.CommunityItem, error) {
	now := time.Now().UTC()
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	item := models.CommunityItem{
		ID:        utils.GenMemoID(),
		Type:      models.CommunityMemo,
		Title:     in.Title,
		Body:      in.Body,
		Tags:      tags,
		Mood:      in.Mood,
		Intensity: in.Intensity,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	if err := records.Save(s.kv, itemKey(item.ID), item); err != nil {
		return models.CommunityItem{}, err
	}
	if err := s.indexInsert(item.ID); err != nil {
		return models.CommunityItem{}, err
	}
	return item, nil
}

func (s *Store) indexInsert(id string) error {
	idx, err := records.Load[[]string](s.kv, indexKey)
	if err != nil {
		return err
	}
	var cur []string
	if idx != nil {
		cur = *idx
	}
	next := make([]string, 0, len(cur)+1)
	next = append(next, id)
	for _, v := range cur {
		if v != id {
			next = append(next, v)
		}
	}
	return records.Save(s.kv, indexKey, next)
}

// Memos returns the stored memos, newest first. Ids with no loadable
// record are skipped.
func (s *Store) Memos() ([]models.CommunityItem, error) {
	idx, err := records.Load[[]string](s.kv, indexKey)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return []models.CommunityItem{}, nil
	}
	out := make([]models.CommunityItem, 0, len(*idx))
	for _, id := range *idx {
		it, err := records.Load[models.CommunityItem](s.kv, itemKey(id))
		if err != nil {
			return nil, err
		}
		if it == nil {
			continue
		}
		out = append(out, *it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		var ti, tj time.Time
		if out[i].CreatedAt != nil {
			ti = *out[i].CreatedAt
		}
		if out[j].CreatedAt != nil {
			tj = *out[j].CreatedAt
		}
		return ti.After(tj)
	})
	return out, nil
}

// PublicDiaries projects public diary drafts into feed items, newest
// date first. The projection id is "diary:<date>".
func (s *Store) PublicDiaries() ([]models.CommunityItem, error) {
	drafts, err := s.diary.All()
	if err != nil {
		return nil, err
	}
	out := make([]models.CommunityItem, 0, len(drafts))
	for i := range drafts {
		d := drafts[i]
		if d.Vis() != models.VisibilityPublic {
			continue
		}
		tags := d.Tags
		if tags == nil {
			tags = []string{}
		}
		up := d.UpdatedAt
		out = append(out, models.CommunityItem{
			ID:        "diary:" + d.Date,
			Type:      models.CommunityDiary,
			DateISO:   d.Date,
			Title:     "Diary • " + d.Date,
			Body:      d.Text,
			Tags:      tags,
			Mood:      d.Mood,
			Intensity: d.Intensity,
			UpdatedAt: &up,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateISO > out[j].DateISO })
	return out, nil
}

// Feed returns the community feed filtered by query: memos first
// (newest first), then public diary projections (newest date first).
// With unified=true the two groups are interleaved by recency instead.
func (s *Store) Feed(query string, unified bool) ([]models.CommunityItem, error) {
	memos, err := s.Memos()
	if err != nil {
		return nil, err
	}
	diaries, err := s.PublicDiaries()
	if err != nil {
		return nil, err
	}
	items := make([]models.CommunityItem, 0, len(memos)+len(diaries))
	items = append(items, memos...)
	items = append(items, diaries...)
	if unified {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SortKey() > items[j].SortKey()
		})
	}
	out := make([]models.CommunityItem, 0, len(items))
	for _, it := range items {
		if Matches(it, query) {
			out = append(out, it)
		}
	}
	return out, nil
}

// Get returns a single feed item by feed id ("memo:<id>" or
// "diary:<date>"), or nil when not found.
func (s *Store) Get(feedID string) (*models.CommunityItem, error) {
	if strings.HasPrefix(feedID, "diary:") {
		diaries, err := s.PublicDiaries()
		if err != nil {
			return nil, err
		}
		for i := range diaries {
			if diaries[i].ID == feedID {
				return &diaries[i], nil
			}
		}
		return nil, nil
	}
	id := strings.TrimPrefix(feedID, "memo:")
	return records.Load[models.CommunityItem](s.kv, itemKey(id))
}

// Matches reports whether a feed item matches a free-text query using
// case-insensitive substring search over title, body, date and tags.
// An empty query matches everything.
func Matches(it models.CommunityItem, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(it.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Body), q) {
		return true
	}
	if strings.Contains(strings.ToLower(it.DateISO), q) {
		return true
	}
	for _, t := range it.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

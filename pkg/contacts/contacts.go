// Package contacts manages DM-style threads anchored to community feed
// items. Threads are append-only message logs with an id index for
// listing.
package contacts

import (
	"sort"
	"time"

	"journaldb/pkg/models"
	"journaldb/pkg/records"
	"journaldb/pkg/utils"
)

const (
	indexKey     = records.Prefix + "contact:index"
	threadPrefix = records.Prefix + "contact:thread:"
)

func threadKey(id string) string { return threadPrefix + id }

// Store reads and writes contact threads over a records.KV backend.
type Store struct {
	kv records.KV
}

func NewStore(kv records.KV) *Store { return &Store{kv: kv} }

// Ensure returns the existing thread for the given feed item, creating
// one when none exists. itemTitle is snapshotted at creation time.
func (s *Store) Ensure(itemID, itemTitle string) (models.ContactThread, error) {
	existing, err := s.findByItem(itemID)
	if err != nil {
		return models.ContactThread{}, err
	}
	if existing != nil {
		return *existing, nil
	}
	now := time.Now().UTC()
	th := models.ContactThread{
		ThreadID:  utils.GenThreadID(),
		ItemID:    itemID,
		ItemTitle: itemTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []models.ContactMessage{},
	}
	if err := records.Save(s.kv, threadKey(th.ThreadID), th); err != nil {
		return models.ContactThread{}, err
	}
	if err := s.indexInsert(th.ThreadID); err != nil {
		return models.ContactThread{}, err
	}
	return th, nil
}

func (s *Store) findByItem(itemID string) (*models.ContactThread, error) {
	ids, err := s.ids()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		th, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		if th != nil && th.ItemID == itemID {
			return th, nil
		}
	}
	return nil, nil
}

func (s *Store) ids() ([]string, error) {
	idx, err := records.Load[[]string](s.kv, indexKey)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return []string{}, nil
	}
	return *idx, nil
}

func (s *Store) indexInsert(id string) error {
	cur, err := s.ids()
	if err != nil {
		return err
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

// Get returns a thread by id, or nil when not found.
func (s *Store) Get(threadID string) (*models.ContactThread, error) {
	return records.Load[models.ContactThread](s.kv, threadKey(threadID))
}

// AppendMessage appends a message to a thread and bumps UpdatedAt.
// Appending to a missing thread is a silent no-op and returns nil.
func (s *Store) AppendMessage(threadID string, role models.ContactRole, text string) (*models.ContactThread, error) {
	th, err := s.Get(threadID)
	if err != nil {
		return nil, err
	}
	if th == nil {
		return nil, nil
	}
	now := time.Now().UTC()
	th.Messages = append(th.Messages, models.ContactMessage{
		ID:        utils.GenMessageID(),
		Role:      role,
		Text:      text,
		CreatedAt: now,
	})
	th.UpdatedAt = now
	if err := records.Save(s.kv, threadKey(threadID), *th); err != nil {
		return nil, err
	}
	return th, nil
}

// List returns all threads sorted by UpdatedAt descending. Ids with no
// loadable record are skipped.
func (s *Store) List() ([]models.ContactThread, error) {
	ids, err := s.ids()
	if err != nil {
		return nil, err
	}
	out := make([]models.ContactThread, 0, len(ids))
	for _, id := range ids {
		th, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		if th == nil {
			continue
		}
		out = append(out, *th)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

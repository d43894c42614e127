// Package workspace manages the per-sleep-day chat workspace: the
// companion transcript plus the latest suggestion cards.
package workspace

import (
	"time"

	"journaldb/pkg/models"
	"journaldb/pkg/records"
)

// Patch is a partial workspace update. Nil slices leave the stored
// value untouched; non-nil slices replace it wholesale.
type Patch struct {
	Messages []models.ChatMessage
	Cards    []models.Card
}

// Store reads and writes workspace state over a records.KV backend.
type Store struct {
	kv records.KV
}

func NewStore(kv records.KV) *Store { return &Store{kv: kv} }

// KeyPrefix is the namespace for all workspace records.
const KeyPrefix = records.Prefix + "workspace:"

// KeyFor returns the storage key for a date's workspace.
func KeyFor(date string) string { return KeyPrefix + date }

func defaults(date string) models.WorkspaceState {
	return models.WorkspaceState{Date: date, Messages: []models.ChatMessage{}, Cards: []models.Card{}}
}

// Merge applies a patch to the date's workspace, creating it from
// defaults when absent. Unknown card types are normalized to tips.
func (s *Store) Merge(date string, p Patch) (models.WorkspaceState, error) {
	return records.Merge(s.kv, KeyFor(date), defaults(date), func(w *models.WorkspaceState) {
		w.Date = date
		if p.Messages != nil {
			w.Messages = p.Messages
		}
		if p.Cards != nil {
			w.Cards = p.Cards
		}
		if w.Messages == nil {
			w.Messages = []models.ChatMessage{}
		}
		w.Cards = models.NormalizeCards(w.Cards)
		w.UpdatedAt = time.Now().UTC()
	})
}

// Load returns the workspace for a date, or nil when none is stored.
func (s *Store) Load(date string) (*models.WorkspaceState, error) {
	return records.Load[models.WorkspaceState](s.kv, KeyFor(date))
}

// Clear removes the date's workspace record entirely. The next merge
// starts from a fresh transcript.
func (s *Store) Clear(date string) error {
	return records.Remove(s.kv, KeyFor(date))
}

// Dates lists the dates that currently have a workspace record.
func (s *Store) Dates() ([]string, error) {
	keys, err := s.kv.ListKeys(KeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k[len(KeyPrefix):])
	}
	return out, nil
}

package contacts

import (
	"testing"
	"time"

	"journaldb/pkg/models"
	"journaldb/pkg/records"
)

func newTestStore() *Store {
	return NewStore(records.NewMemory())
}

func TestEnsureIsIdempotent(t *testing.T) {
	s := newTestStore()
	first, err := s.Ensure("memo_1", "Night sweats")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	second, err := s.Ensure("memo_1", "A different title")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if first.ThreadID != second.ThreadID {
		t.Fatalf("ensure created a second thread for the same item")
	}
	if second.ItemTitle != "Night sweats" {
		t.Fatalf("title snapshot rewritten: %q", second.ItemTitle)
	}
	threads, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(threads) != 1 {
		t.Fatalf("index holds %d threads, want 1", len(threads))
	}
}

func TestAppendMessage(t *testing.T) {
	s := newTestStore()
	th, err := s.Ensure("memo_1", "t")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	got, err := s.AppendMessage(th.ThreadID, models.ContactRoleMe, "hello there")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if got == nil || len(got.Messages) != 1 {
		t.Fatalf("message not appended: %+v", got)
	}
	m := got.Messages[0]
	if m.ID == "" || m.Role != models.ContactRoleMe || m.Text != "hello there" {
		t.Fatalf("unexpected message: %+v", m)
	}
	if !got.UpdatedAt.After(th.UpdatedAt) && !got.UpdatedAt.Equal(m.CreatedAt) {
		t.Fatalf("updatedAt not bumped")
	}
}

func TestAppendMissingThreadIsNoop(t *testing.T) {
	s := newTestStore()
	got, err := s.AppendMessage("thread_missing", models.ContactRoleMe, "hi")
	if err != nil {
		t.Fatalf("append to missing thread errored: %v", err)
	}
	if got != nil {
		t.Fatalf("append to missing thread returned a thread: %+v", got)
	}
}

func TestListSortedByActivity(t *testing.T) {
	s := newTestStore()
	a, err := s.Ensure("memo_a", "a")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := s.Ensure("memo_b", "b"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := s.AppendMessage(a.ThreadID, models.ContactRoleThem, "bump"); err != nil {
		t.Fatalf("append: %v", err)
	}
	threads, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(threads) != 2 || threads[0].ItemID != "memo_a" {
		t.Fatalf("threads not sorted by activity: %+v", threads)
	}
}

func TestLastMessagePreview(t *testing.T) {
	s := newTestStore()
	th, err := s.Ensure("memo_1", "t")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if th.LastMessage() != nil {
		t.Fatalf("empty thread has a last message")
	}
	got, err := s.AppendMessage(th.ThreadID, models.ContactRoleMe, "one")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err = s.AppendMessage(th.ThreadID, models.ContactRoleThem, "two")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	last := got.LastMessage()
	if last == nil || last.Text != "two" {
		t.Fatalf("unexpected preview: %+v", last)
	}
}

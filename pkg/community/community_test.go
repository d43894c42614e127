package community

import (
	"testing"
	"time"

	"journaldb/pkg/diary"
	"journaldb/pkg/models"
	"journaldb/pkg/records"
)

func newTestStore() (*Store, *diary.Store) {
	kv := records.NewMemory()
	d := diary.NewStore(kv)
	return NewStore(kv, d), d
}

func strp(v string) *string { return &v }

func TestCreateMemoAndList(t *testing.T) {
	s, _ := newTestStore()
	first, err := s.CreateMemo(MemoInput{Title: "Hot flashes at night", Body: "anyone else?", Tags: []string{"sleep"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := s.CreateMemo(MemoInput{Title: "Morning walks", Body: "helped a lot"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	memos, err := s.Memos()
	if err != nil {
		t.Fatalf("memos: %v", err)
	}
	if len(memos) != 2 {
		t.Fatalf("expected 2 memos, got %d", len(memos))
	}
	if memos[0].ID != second.ID || memos[1].ID != first.ID {
		t.Fatalf("memos not newest-first: %v, %v", memos[0].ID, memos[1].ID)
	}
	if memos[0].Tags == nil {
		t.Fatalf("nil tags stored")
	}
}

func TestPublicDiariesProjection(t *testing.T) {
	s, d := newTestStore()
	pub := models.VisibilityPublic
	if _, err := d.Merge("2026-01-09", diary.Patch{Text: strp("slept badly"), Visibility: &pub}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if _, err := d.Merge("2026-01-10", diary.Patch{Text: strp("private thoughts")}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	items, err := s.PublicDiaries()
	if err != nil {
		t.Fatalf("public diaries: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("private draft leaked into feed: %+v", items)
	}
	it := items[0]
	if it.ID != "diary:2026-01-09" || it.Type != models.CommunityDiary {
		t.Fatalf("unexpected projection: %+v", it)
	}
	if it.Title != "Diary • 2026-01-09" || it.Body != "slept badly" {
		t.Fatalf("unexpected projection content: %+v", it)
	}
}

func TestFeedOrderMemosFirst(t *testing.T) {
	s, d := newTestStore()
	pub := models.VisibilityPublic
	if _, err := d.Merge("2026-01-09", diary.Patch{Text: strp("a public day"), Visibility: &pub}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	memo, err := s.CreateMemo(MemoInput{Title: "m", Body: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	items, err := s.Feed("", false)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(items) != 2 || items[0].ID != memo.ID || items[1].ID != "diary:2026-01-09" {
		t.Fatalf("feed order wrong: %+v", items)
	}
}

func TestFeedFilter(t *testing.T) {
	s, d := newTestStore()
	pub := models.VisibilityPublic
	if _, err := d.Merge("2026-01-09", diary.Patch{Text: strp("woke up with hot flashes"), Visibility: &pub}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if _, err := s.CreateMemo(MemoInput{Title: "Cold showers", Body: "tried them", Tags: []string{"HOT"}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Feed("hot", false)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("case-insensitive filter should match both items, got %d", len(got))
	}
	got, err = s.Feed("xyz", false)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("no item should match xyz: %+v", got)
	}
	got, err = s.Feed("", false)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("empty query should match everything, got %d", len(got))
	}
}

func TestMatchesFields(t *testing.T) {
	it := models.CommunityItem{
		Title:   "Night sweats",
		Body:    "third time this week",
		DateISO: "2026-01-09",
		Tags:    []string{"sleep", "stress"},
	}
	for _, q := range []string{"night", "THIRD", "2026-01", "stre"} {
		if !Matches(it, q) {
			t.Fatalf("query %q should match", q)
		}
	}
	if Matches(it, "caffeine") {
		t.Fatalf("query should not match")
	}
}

func TestGetByFeedID(t *testing.T) {
	s, d := newTestStore()
	pub := models.VisibilityPublic
	if _, err := d.Merge("2026-01-09", diary.Patch{Text: strp("x"), Visibility: &pub}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	memo, err := s.CreateMemo(MemoInput{Title: "m", Body: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.Get(memo.ID)
	if err != nil || got == nil || got.ID != memo.ID {
		t.Fatalf("memo lookup failed: %+v %v", got, err)
	}
	got, err = s.Get("diary:2026-01-09")
	if err != nil || got == nil || got.Type != models.CommunityDiary {
		t.Fatalf("diary lookup failed: %+v %v", got, err)
	}
	got, err = s.Get("diary:2026-02-02")
	if err != nil || got != nil {
		t.Fatalf("unknown diary should be nil: %+v %v", got, err)
	}
}

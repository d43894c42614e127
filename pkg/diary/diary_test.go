package diary

import (
	"testing"
	"time"

	"journaldb/pkg/models"
	"journaldb/pkg/records"
)

func newTestStore() *Store {
	return NewStore(records.NewMemory())
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestMergeCreatesDraft(t *testing.T) {
	s := newTestStore()
	d, err := s.Merge("2026-01-10", Patch{Mood: intp(4)})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if d.Date != "2026-01-10" || d.Mood == nil || *d.Mood != 4 {
		t.Fatalf("unexpected draft: %+v", d)
	}
	if d.Tags == nil || d.Text != "" {
		t.Fatalf("defaults not applied: %+v", d)
	}
	if d.UpdatedAt.IsZero() {
		t.Fatalf("updatedAt not set")
	}
}

func TestMergeEmptyPatchPersistsDefaults(t *testing.T) {
	s := newTestStore()
	if _, err := s.Merge("2026-01-10", Patch{}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	d, err := s.Load("2026-01-10")
	if err != nil || d == nil {
		t.Fatalf("defaults not persisted: %+v %v", d, err)
	}
}

func TestMergeLeavesUnpatchedFields(t *testing.T) {
	s := newTestStore()
	if _, err := s.Merge("2026-01-10", Patch{Mood: intp(2), Text: strp("rough night")}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	d, err := s.Merge("2026-01-10", Patch{Intensity: intp(5)})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if d.Mood == nil || *d.Mood != 2 || d.Text != "rough night" {
		t.Fatalf("patch clobbered other fields: %+v", d)
	}
}

func TestMergeTagsReplaceAndClean(t *testing.T) {
	s := newTestStore()
	if _, err := s.Merge("2026-01-10", Patch{Tags: []string{"sleep", "stress"}}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	d, err := s.Merge("2026-01-10", Patch{Tags: []string{"mood", "", "mood", "sleep"}})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	want := []string{"mood", "sleep"}
	if len(d.Tags) != len(want) {
		t.Fatalf("tags not replaced+deduped: %v", d.Tags)
	}
	for i := range want {
		if d.Tags[i] != want[i] {
			t.Fatalf("tags order: got %v want %v", d.Tags, want)
		}
	}
}

func TestAppendText(t *testing.T) {
	s := newTestStore()
	d, err := s.AppendText("2026-01-10", "  first entry  ")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if d.Text != "first entry" {
		t.Fatalf("first append should store trimmed text verbatim: %q", d.Text)
	}
	d, err = s.AppendText("2026-01-10", "second entry")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if d.Text != "first entry\n\nsecond entry" {
		t.Fatalf("appends must be blank-line separated: %q", d.Text)
	}
}

func TestAppendBlankTouchesDraft(t *testing.T) {
	s := newTestStore()
	before, err := s.AppendText("2026-01-10", "entry")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	after, err := s.AppendText("2026-01-10", "   \n\t ")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if after.Text != "entry" {
		t.Fatalf("blank append changed text: %q", after.Text)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("blank append should still touch updatedAt")
	}
}

func TestRange(t *testing.T) {
	s := newTestStore()
	for _, date := range []string{"2026-01-08", "2026-01-09", "2026-01-10"} {
		if _, err := s.Merge(date, Patch{}); err != nil {
			t.Fatalf("merge: %v", err)
		}
	}
	got, err := s.Range("2026-01-09", "2026-01-10")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2026-01-09" || got[1].Date != "2026-01-10" {
		t.Fatalf("unexpected range: %+v", got)
	}
}

func TestVisibilityDefaultsPrivate(t *testing.T) {
	s := newTestStore()
	d, err := s.Merge("2026-01-10", Patch{})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if d.Vis() != models.VisibilityPrivate {
		t.Fatalf("unset visibility should read private")
	}
	vis := models.VisibilityPublic
	d, err = s.Merge("2026-01-10", Patch{Visibility: &vis})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if d.Vis() != models.VisibilityPublic {
		t.Fatalf("visibility patch not applied")
	}
}

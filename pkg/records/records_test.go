package records

import (
	"testing"
)

type rec struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

func TestLoadAbsent(t *testing.T) {
	kv := NewMemory()
	got, err := Load[rec](kv, Prefix+"r:1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent key, got %+v", got)
	}
}

func TestLoadMalformedReadsAsAbsent(t *testing.T) {
	kv := NewMemory()
	if err := kv.Set(Prefix+"r:1", []byte("{not json")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := Load[rec](kv, Prefix+"r:1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("malformed value should read as absent, got %+v", got)
	}
}

func TestMergeCreatesFromDefaults(t *testing.T) {
	kv := NewMemory()
	out, err := Merge(kv, Prefix+"r:1", rec{Name: "d", Tags: []string{}}, nil)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if out.Name != "d" {
		t.Fatalf("expected defaults, got %+v", out)
	}
	// an empty merge onto a missing key must persist the defaults
	stored, err := Load[rec](kv, Prefix+"r:1")
	if err != nil || stored == nil {
		t.Fatalf("defaults not persisted: %+v %v", stored, err)
	}
}

func TestMergeAppliesMutation(t *testing.T) {
	kv := NewMemory()
	if _, err := Merge(kv, Prefix+"r:1", rec{Name: "d"}, func(r *rec) { r.Count = 2 }); err != nil {
		t.Fatalf("merge: %v", err)
	}
	out, err := Merge(kv, Prefix+"r:1", rec{Name: "other"}, func(r *rec) { r.Count++ })
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if out.Name != "d" || out.Count != 3 {
		t.Fatalf("merge did not load existing record: %+v", out)
	}
}

func TestRemove(t *testing.T) {
	kv := NewMemory()
	if err := Save(kv, Prefix+"r:1", rec{Name: "x"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := Remove(kv, Prefix+"r:1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ := Load[rec](kv, Prefix+"r:1")
	if got != nil {
		t.Fatalf("record still present after remove")
	}
	// deleting again is a no-op
	if err := Remove(kv, Prefix+"r:1"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestMemoryListKeys(t *testing.T) {
	kv := NewMemory()
	for _, k := range []string{Prefix + "b:2", Prefix + "a:1", "other:x"} {
		if err := kv.Set(k, []byte("{}")); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	keys, err := kv.ListKeys(Prefix)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0] != Prefix+"a:1" || keys[1] != Prefix+"b:2" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

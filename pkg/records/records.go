// Package records holds the namespaced record conventions shared by
// every feature store: the mc: key prefix, a minimal KV interface the
// backends implement, and typed load/save/merge helpers on top of it.
package records

import (
	"encoding/json"

	"journaldb/pkg/logger"
)

// Prefix namespaces every journal record in the underlying store.
// Feature keys are built as Prefix + "<kind>:<id>".
const Prefix = "mc:"

// KV is the storage surface the feature stores are built on. The
// production backend is Pebble; tests use the in-memory backend.
type KV interface {
	// Get returns the stored value and whether the key exists. A
	// missing key is (nil, false, nil), not an error.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// ListKeys returns all keys with the given prefix in ascending
	// byte order.
	ListKeys(prefix string) ([]string, error)
}

// Load reads and decodes the record at key. Both an absent key and a
// malformed stored value yield (nil, nil): corrupt records degrade to
// "not present" rather than failing the caller, since every write path
// rebuilds from defaults.
func Load[T any](kv KV, key string) (*T, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("record_malformed", "key", key, "error", err.Error())
		return nil, nil
	}
	return &v, nil
}

// Save encodes and writes the record at key.
func Save[T any](kv KV, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(key, raw)
}

// Merge loads the record at key, substituting defaults when it is
// absent or malformed, applies the mutation, and persists the result.
// An apply that changes nothing still persists, so merging an empty
// patch onto a missing key materializes the defaults.
func Merge[T any](kv KV, key string, defaults T, apply func(*T)) (T, error) {
	cur, err := Load[T](kv, key)
	if err != nil {
		return defaults, err
	}
	if cur == nil {
		cur = &defaults
	}
	if apply != nil {
		apply(cur)
	}
	if err := Save(kv, key, *cur); err != nil {
		return *cur, err
	}
	return *cur, nil
}

// Remove deletes the record at key. Deleting a missing key is a no-op.
func Remove(kv KV, key string) error {
	return kv.Delete(key)
}

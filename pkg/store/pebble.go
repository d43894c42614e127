// Package store owns the Pebble database handle. It exposes raw key
// operations plus a records.KV adapter the feature stores consume.
package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"journaldb/pkg/logger"
	"journaldb/pkg/records"
)

var (
	db     *pebble.DB
	dbPath string
)

// Open opens (or creates) a Pebble database at the given path and keeps
// a global handle for simple usage in this package.
func Open(path string) error {
	var err error
	logger.Info("opening_pebble_db", "path", path)
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "error", err.Error())
		return err
	}
	dbPath = path
	logger.Info("pebble_opened", "path", path)
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	dbPath = ""
	logger.Info("pebble_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool {
	return db != nil
}

// GetKey returns the raw value for the given key. A missing key is
// reported via the bool, not as an error.
func GetKey(key string) ([]byte, bool, error) {
	if db == nil {
		return nil, false, fmt.Errorf("pebble not opened; call store.Open first")
	}
	v, closer, err := db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, false, nil
		}
		logger.Error("get_key_failed", "key", key, "error", err.Error())
		opErrors.WithLabelValues("get").Inc()
		return nil, false, err
	}
	out := append([]byte(nil), v...)
	if closer != nil {
		_ = closer.Close()
	}
	ops.WithLabelValues("get").Inc()
	return out, true, nil
}

// SaveKey stores a key/value pair with a synced write.
func SaveKey(key string, value []byte) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	if err := db.Set([]byte(key), value, pebble.Sync); err != nil {
		logger.Error("save_key_failed", "key", key, "error", err.Error())
		opErrors.WithLabelValues("set").Inc()
		return err
	}
	ops.WithLabelValues("set").Inc()
	logger.Debug("save_key_ok", "key", key, "len", len(value))
	return nil
}

// DeleteKey removes a key. Deleting a missing key is not an error.
func DeleteKey(key string) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	if err := db.Delete([]byte(key), pebble.Sync); err != nil {
		logger.Error("delete_key_failed", "key", key, "error", err.Error())
		opErrors.WithLabelValues("delete").Inc()
		return err
	}
	ops.WithLabelValues("delete").Inc()
	logger.Debug("delete_key_ok", "key", key)
	return nil
}

// ListKeys returns all keys (as strings) that start with the given prefix.
// If prefix is empty it returns all keys in the DB.
func ListKeys(prefix string) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []string
	if prefix == "" {
		for iter.First(); iter.Valid(); iter.Next() {
			out = append(out, string(append([]byte(nil), iter.Key()...)))
		}
	} else {
		pfx := []byte(prefix)
		for iter.SeekGE(pfx); iter.Valid(); iter.Next() {
			if !bytes.HasPrefix(iter.Key(), pfx) {
				break
			}
			out = append(out, string(append([]byte(nil), iter.Key()...)))
		}
	}
	ops.WithLabelValues("list").Inc()
	return out, iter.Error()
}

// kvAdapter exposes the global Pebble handle through the records.KV
// interface so feature stores do not import this package's globals.
type kvAdapter struct{}

func (kvAdapter) Get(key string) ([]byte, bool, error) { return GetKey(key) }
func (kvAdapter) Set(key string, value []byte) error   { return SaveKey(key, value) }
func (kvAdapter) Delete(key string) error              { return DeleteKey(key) }
func (kvAdapter) ListKeys(prefix string) ([]string, error) {
	return ListKeys(prefix)
}

// NewKV returns a records.KV view over the opened database.
func NewKV() records.KV { return kvAdapter{} }

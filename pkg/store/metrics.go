package store

import (
	"io/fs"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "journaldb_store_ops_total",
		Help: "Storage operations by kind.",
	}, []string{"op"})

	opErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "journaldb_store_op_errors_total",
		Help: "Failed storage operations by kind.",
	}, []string{"op"})

	diskBytes = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "journaldb_store_disk_bytes",
		Help: "Best-effort on-disk size of the database directory.",
	}, func() float64 { return float64(DiskUsageBytes()) })
)

// DiskUsageBytes walks the database directory and sums file sizes.
// Returns 0 when the store is closed.
func DiskUsageBytes() uint64 {
	if db == nil || dbPath == "" {
		return 0
	}
	var total uint64
	_ = filepath.WalkDir(dbPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		total += uint64(fi.Size())
		return nil
	})
	return total
}

package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iho/payengine/internal/domain"
)

// SnapshotWriter renders account snapshots as CSV with fixed
// fractional precision.
type SnapshotWriter struct {
	csv       *csv.Writer
	precision int32
}

// NewSnapshotWriter creates a snapshot writer emitting amounts with
// the given number of decimal places.
func NewSnapshotWriter(w io.Writer, precision int32) *SnapshotWriter {
	return &SnapshotWriter{
		csv:       csv.NewWriter(w),
		precision: precision,
	}
}

// Write emits the header followed by one row per snapshot, in the
// order given.
func (w *SnapshotWriter) Write(snapshots []domain.AccountSnapshot) error {
	if err := w.csv.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	for _, s := range snapshots {
		row := []string{
			strconv.FormatUint(uint64(s.ClientID), 10),
			s.Available.StringFixed(w.precision),
			s.Held.StringFixed(w.precision),
			s.Total.StringFixed(w.precision),
			strconv.FormatBool(s.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}

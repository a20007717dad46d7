package writer

import (
	"time"

	"github.com/nndjoli/eqty/internal/model"
)

// RecordWriter receives completed quote records as they finalize.
// Implementations must accept records in any order.
type RecordWriter interface {
	Write(rec model.QuoteRecord) error
	Close() error
}

// WriterConfig holds buffered-writer settings.
type WriterConfig struct {
	BatchSize     int
	FlushInterval time.Duration
	BufferSize    int
}

// WriterMetrics tracks writer activity.
type WriterMetrics struct {
	Inserts   int64
	Conflicts int64
	Flushes   int64
	Errors    int64
}

// Multi fans one record out to several writers.
type Multi []RecordWriter

func (m Multi) Write(rec model.QuoteRecord) error {
	for _, w := range m {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var firstErr error
	for _, w := range m {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

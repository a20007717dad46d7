package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nndjoli/eqty/internal/model"
	"github.com/nndjoli/eqty/internal/queue"
)

// QuoteWriter buffers quote records and batch-inserts them into the
// quotes table as JSONB documents, one row per (run, ticker).
type QuoteWriter struct {
	cfg    WriterConfig
	db     *pgxpool.Pool
	runID  uuid.UUID
	logger *slog.Logger

	buf  *queue.Buffer[model.QuoteRecord]
	kick chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	metrics WriterMetrics
}

// NewQuoteWriter creates a QuoteWriter for one harvest run.
func NewQuoteWriter(cfg WriterConfig, db *pgxpool.Pool, runID uuid.UUID, logger *slog.Logger) *QuoteWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuoteWriter{
		cfg:    cfg,
		db:     db,
		runID:  runID,
		logger: logger,
		buf:    queue.NewBuffer[model.QuoteRecord](cfg.BufferSize),
		kick:   make(chan struct{}, 1),
	}
}

// Start begins the background flush loop.
func (w *QuoteWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("quote writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Write buffers one record. A full batch triggers an early flush.
func (w *QuoteWriter) Write(rec model.QuoteRecord) error {
	if !w.buf.Push(rec) {
		return fmt.Errorf("quote writer is closed")
	}
	if w.buf.Len() >= w.cfg.BatchSize {
		select {
		case w.kick <- struct{}{}:
		default:
		}
	}
	return nil
}

// Close stops the flush loop and writes out everything still buffered.
func (w *QuoteWriter) Close() error {
	w.buf.Close()
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()

	// Final flush with its own deadline; w.ctx is already canceled.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	w.flush(ctx)

	w.logger.Info("quote writer stopped",
		"inserts", w.Stats().Inserts,
		"errors", w.Stats().Errors,
	)
	return nil
}

// Stats returns current metrics.
func (w *QuoteWriter) Stats() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// flushLoop flushes on the interval and on early-flush signals.
func (w *QuoteWriter) flushLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.flush(w.ctx)
		case <-w.kick:
			w.flush(w.ctx)
		}
	}
}

// flush drains the buffer in batches and inserts them.
func (w *QuoteWriter) flush(ctx context.Context) {
	for {
		batch := w.buf.Drain(w.cfg.BatchSize)
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		conflicts, err := w.batchInsert(ctx, batch)
		if err != nil {
			w.logger.Error("batch insert failed", "error", err, "count", len(batch))
			w.mu.Lock()
			w.metrics.Errors++
			w.mu.Unlock()
			continue
		}

		w.mu.Lock()
		w.metrics.Inserts += int64(len(batch) - conflicts)
		w.metrics.Conflicts += int64(conflicts)
		w.metrics.Flushes++
		w.mu.Unlock()

		w.logger.Debug("flushed quotes",
			"count", len(batch),
			"conflicts", conflicts,
			"duration", time.Since(start),
		)
	}
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (w *QuoteWriter) batchInsert(ctx context.Context, records []model.QuoteRecord) (conflicts int, err error) {
	now := time.Now().UTC()

	batch := &pgx.Batch{}
	for _, rec := range records {
		fields, err := json.Marshal(rec.Fields)
		if err != nil {
			return 0, fmt.Errorf("marshal fields for %s: %w", rec.Ticker, err)
		}
		batch.Queue(`
			INSERT INTO quotes (run_id, ticker, harvested_at, fields)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (run_id, ticker) DO NOTHING
		`, w.runID, rec.Ticker, now, fields)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}

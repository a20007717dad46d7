package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nndjoli/eqty/internal/api"
	"github.com/nndjoli/eqty/internal/model"
	"github.com/nndjoli/eqty/internal/session"
	"github.com/nndjoli/eqty/internal/writer"
)

// State is the coordinator's current phase.
type State int

const (
	StateIdle State = iota
	StateAcquiringSession
	StateDiscovering
	StateFetching
	StateFinalizing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiringSession:
		return "acquiring_session"
	case StateDiscovering:
		return "discovering"
	case StateFetching:
		return "fetching"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// QuoteAPI is the slice of the API client the coordinator drives.
type QuoteAPI interface {
	Screen(ctx context.Context, q api.ScreenerQuery) (*api.ScreenerPage, error)
	Quotes(ctx context.Context, symbols []string) ([]model.QuoteRecord, error)
}

// Config holds the run parameters for a harvest.
type Config struct {
	Regions     []string
	PageSize    int
	BatchSize   int
	Concurrency int
	BatchDelay  time.Duration
}

// Coordinator runs a harvest end to end and reports per-ticker
// outcomes. A batch that succeeds is never retried within a run;
// failed tickers surface in the summary for a follow-up run.
type Coordinator struct {
	cfg      Config
	client   QuoteAPI
	sessions *session.Store
	out      writer.RecordWriter
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// New creates a coordinator. sessions may be nil when the client
// manages credentials on its own, in which case the warm-up phase is
// skipped.
func New(cfg Config, client QuoteAPI, sessions *session.Store, out writer.RecordWriter, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Coordinator{
		cfg:      cfg,
		client:   client,
		sessions: sessions,
		out:      out,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the coordinator's current phase.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.logger.Debug("harvest state changed", "state", s.String())
}

// Run executes a full harvest: warm up the session, discover the
// ticker universe, fetch quotes in batches, and report outcomes. Only
// session acquisition failure aborts the run; everything after that is
// accounted per ticker.
func (c *Coordinator) Run(ctx context.Context) (*Summary, error) {
	job := NewJob()
	c.logger.Info("harvest starting",
		"job_id", job.ID.String(),
		"regions", c.cfg.Regions)

	if err := c.warmUp(ctx); err != nil {
		return nil, err
	}

	c.setState(StateDiscovering)
	symbols, infos, err := discover(ctx, c.client, c.cfg.Regions, c.cfg.PageSize, c.logger)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}
	job.SetTotal(len(symbols))
	c.logger.Info("discovery complete",
		"job_id", job.ID.String(),
		"tickers", len(symbols))

	c.fetch(ctx, job, symbols, infos)

	return c.finalize(job)
}

// RunSymbols harvests an explicit symbol list, skipping discovery.
// Used to re-run the failed remainder of an earlier job.
func (c *Coordinator) RunSymbols(ctx context.Context, symbols []string) (*Summary, error) {
	job := NewJob()
	job.SetTotal(len(symbols))
	c.logger.Info("harvest starting from symbol list",
		"job_id", job.ID.String(),
		"tickers", len(symbols))

	if err := c.warmUp(ctx); err != nil {
		return nil, err
	}

	c.fetch(ctx, job, symbols, nil)

	return c.finalize(job)
}

func (c *Coordinator) warmUp(ctx context.Context) error {
	c.setState(StateAcquiringSession)
	if c.sessions == nil {
		return nil
	}
	if _, err := c.sessions.GetValid(ctx); err != nil {
		return fmt.Errorf("session warm-up: %w", err)
	}
	return nil
}

func (c *Coordinator) fetch(ctx context.Context, job *Job, symbols []string, infos map[string]model.TickerInfo) {
	c.setState(StateFetching)
	batches := partition(symbols, c.cfg.BatchSize)

	if c.cfg.Concurrency == 1 {
		for i, batch := range batches {
			if ctx.Err() != nil {
				c.logger.Warn("fetch interrupted",
					"job_id", job.ID.String(),
					"batches_remaining", len(batches)-i)
				return
			}
			c.fetchBatch(ctx, job, batch, infos)
			if c.cfg.BatchDelay > 0 && i < len(batches)-1 {
				select {
				case <-time.After(c.cfg.BatchDelay):
				case <-ctx.Done():
				}
			}
		}
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for _, batch := range batches {
		g.Go(func() error {
			c.fetchBatch(gctx, job, batch, infos)
			return nil
		})
	}
	g.Wait()
}

// fetchBatch retrieves one chunk of symbols and accounts every symbol
// in it. The retry controller inside the client already handled
// backoff and session refresh, so an error here is final for the
// batch.
func (c *Coordinator) fetchBatch(ctx context.Context, job *Job, batch []string, infos map[string]model.TickerInfo) {
	records, err := c.client.Quotes(ctx, batch)
	if err != nil {
		kind := api.KindOf(err)
		c.logger.Error("batch fetch failed",
			"job_id", job.ID.String(),
			"tickers", len(batch),
			"kind", string(kind),
			"error", err)
		for _, sym := range batch {
			job.MarkFailed(sym, kind)
		}
		return
	}

	returned := make(map[string]struct{}, len(records))
	for _, rec := range records {
		returned[rec.Ticker] = struct{}{}
		c.enrich(&rec, infos)
		if err := c.out.Write(rec); err != nil {
			c.logger.Error("record write failed",
				"job_id", job.ID.String(),
				"ticker", rec.Ticker,
				"error", err)
		}
		job.MarkFetched(rec.Ticker)
	}

	for _, sym := range batch {
		if _, ok := returned[sym]; !ok {
			job.MarkFailed(sym, api.KindNoData)
		}
	}
}

// enrich backfills identity attributes from discovery when the quote
// payload left them empty.
func (c *Coordinator) enrich(rec *model.QuoteRecord, infos map[string]model.TickerInfo) {
	info, ok := infos[rec.Ticker]
	if !ok {
		return
	}
	if rec.Fields["sector"] == nil && info.Sector != "" {
		rec.Fields["sector"] = info.Sector
	}
	if rec.Fields["industry"] == nil && info.Industry != "" {
		rec.Fields["industry"] = info.Industry
	}
	if rec.Fields["region"] == nil && info.Region != "" {
		rec.Fields["region"] = info.Region
	}
}

func (c *Coordinator) finalize(job *Job) (*Summary, error) {
	c.setState(StateFinalizing)
	summary := job.Summary()

	kinds := make(map[string]int)
	for _, kind := range summary.Failed {
		kinds[string(kind)]++
	}
	c.logger.Info("harvest complete",
		"job_id", summary.JobID.String(),
		"total", summary.Total,
		"fetched", summary.Fetched,
		"failed", len(summary.Failed),
		"failure_kinds", kinds,
		"duration", summary.Duration.Round(time.Millisecond))

	c.setState(StateDone)
	return summary, nil
}

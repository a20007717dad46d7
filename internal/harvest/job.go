package harvest

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nndjoli/eqty/internal/api"
)

// Job tracks the per-ticker outcome of a single harvest run. Every
// discovered ticker ends up either fetched or failed, never both and
// never neither.
type Job struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu      sync.Mutex
	total   int
	fetched map[string]struct{}
	failed  map[string]api.ErrKind
}

// NewJob creates a job with a fresh run identifier.
func NewJob() *Job {
	return &Job{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		fetched:   make(map[string]struct{}),
		failed:    make(map[string]api.ErrKind),
	}
}

// SetTotal records the number of discovered tickers.
func (j *Job) SetTotal(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.total = n
}

// MarkFetched records a successfully retrieved ticker.
func (j *Job) MarkFetched(symbol string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fetched[symbol] = struct{}{}
	delete(j.failed, symbol)
}

// MarkFailed records a failed ticker with its outcome kind. A ticker
// already marked fetched stays fetched.
func (j *Job) MarkFailed(symbol string, kind api.ErrKind) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.fetched[symbol]; ok {
		return
	}
	j.failed[symbol] = kind
}

// Summary snapshots the job state.
func (j *Job) Summary() *Summary {
	j.mu.Lock()
	defer j.mu.Unlock()

	failed := make(map[string]api.ErrKind, len(j.failed))
	for sym, kind := range j.failed {
		failed[sym] = kind
	}

	return &Summary{
		JobID:    j.ID,
		Total:    j.total,
		Fetched:  len(j.fetched),
		Failed:   failed,
		Duration: time.Since(j.StartedAt),
	}
}

// Summary is the final report of a harvest run.
type Summary struct {
	JobID    uuid.UUID
	Total    int
	Fetched  int
	Failed   map[string]api.ErrKind
	Duration time.Duration
}

// FailedSymbols returns the failed tickers, for feeding into a
// follow-up run.
func (s *Summary) FailedSymbols() []string {
	out := make([]string, 0, len(s.Failed))
	for sym := range s.Failed {
		out = append(out, sym)
	}
	return out
}

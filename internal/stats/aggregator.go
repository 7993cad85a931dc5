package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/civiclink/civiclink/internal/store"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

// Aggregator owns the cumulative statistics. Every Record mutates the
// in-memory tally and then hands the full snapshot to the store.
type Aggregator struct {
	mu     sync.Mutex
	stats  Stats
	repo   store.SnapshotRepo
	logger *slog.Logger
}

// New creates an aggregator with zeroed stats. repo may be nil, in which
// case nothing is persisted.
func New(repo store.SnapshotRepo, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		stats:  Zero(),
		repo:   repo,
		logger: logger.With("component", "stats"),
	}
}

// Load creates an aggregator seeded from the persisted snapshot, if any.
func Load(ctx context.Context, repo store.SnapshotRepo, logger *slog.Logger) (*Aggregator, error) {
	a := New(repo, logger)
	if repo == nil {
		return a, nil
	}

	var persisted Stats
	found, err := repo.Load(ctx, store.KeyProblemStats, &persisted)
	if err != nil {
		return nil, fmt.Errorf("load problem stats: %w", err)
	}
	if found {
		a.stats = merge(persisted)
	}
	return a, nil
}

// Record counts one classified problem. An unknown category is counted
// under the catch-all category and its catch-all sub-category; a valid
// category with an unknown sub-category falls back to that category's own
// catch-all sub-category. Record never fails: a persistence error is logged
// and the in-memory tally stays updated.
func (a *Aggregator) Record(ctx context.Context, category taxonomy.Category, sub taxonomy.SubCategory) {
	a.mu.Lock()
	defer a.mu.Unlock()

	c, sc := taxonomy.Normalize(category, sub)
	if c != category || sc != sub {
		a.logger.Debug("classification rerouted",
			"category", category, "sub_category", sub,
			"recorded_category", c, "recorded_sub_category", sc)
	}

	cs := a.stats[c]
	cs.Count++
	cs.SubCategories[sc]++
	a.stats[c] = cs

	a.persist(ctx)
}

// Reset zeroes every counter and persists the result.
func (a *Aggregator) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats = Zero()
	if a.repo == nil {
		return nil
	}
	if err := a.repo.Save(ctx, store.KeyProblemStats, a.stats); err != nil {
		return fmt.Errorf("save problem stats: %w", err)
	}
	return nil
}

// Snapshot returns a deep copy of the current stats.
func (a *Aggregator) Snapshot() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats.Clone()
}

// Total returns the number of problems recorded.
func (a *Aggregator) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats.Total()
}

// Ranked returns categories ordered by count.
func (a *Aggregator) Ranked() []Ranking {
	return a.Snapshot().Ranked()
}

// persist must be called with a.mu held.
func (a *Aggregator) persist(ctx context.Context) {
	if a.repo == nil {
		return
	}
	if err := a.repo.Save(ctx, store.KeyProblemStats, a.stats); err != nil {
		a.logger.Warn("failed to persist problem stats", "error", err)
	}
}

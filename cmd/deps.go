package cmd

import (
	"context"
	"fmt"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/classifier"
	"github.com/civiclink/civiclink/internal/llm"
	"github.com/civiclink/civiclink/internal/quiz"
	"github.com/civiclink/civiclink/internal/quizgen"
	"github.com/civiclink/civiclink/internal/region"
	"github.com/civiclink/civiclink/internal/responder"
	"github.com/civiclink/civiclink/internal/stats"
	"github.com/civiclink/civiclink/internal/store"
)

// deps is everything a command may need, built from one store.
type deps struct {
	store   *store.Store
	stats   *stats.Aggregator
	log     *chat.Log
	regions *region.Selector
	catalog *quiz.Catalog

	// chat and provider are nil when no LLM provider could be created;
	// providerErr says why.
	chat        *chat.Service
	provider    llm.Provider
	providerErr error
}

// openDeps opens the store and loads the persisted state. When withLLM is
// set it also builds the LLM-backed services; a provider failure is
// recorded in providerErr rather than returned.
func openDeps(ctx context.Context, withLLM bool) (*deps, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &deps{store: st}
	if err := d.load(ctx, withLLM); err != nil {
		st.Close()
		return nil, err
	}
	return d, nil
}

func (d *deps) load(ctx context.Context, withLLM bool) error {
	snapshots := d.store.SnapshotRepo()

	var err error
	if d.stats, err = stats.Load(ctx, snapshots, logger); err != nil {
		return err
	}
	if d.log, err = chat.LoadLog(ctx, snapshots, logger); err != nil {
		return err
	}
	if d.regions, err = region.NewSelector(ctx, snapshots, logger); err != nil {
		return err
	}
	if cfg.Region != "" {
		if _, err := d.regions.Select(ctx, cfg.Region); err != nil {
			return err
		}
	}

	var gen quiz.Generator
	if withLLM {
		d.provider, d.providerErr = llm.NewProvider(ctx, cfg.LLM, d.store.EventRepo(), logger)
	}
	if d.provider != nil {
		gen = quizgen.New(d.provider, quizgen.DefaultConfig(), logger)

		rcfg := responder.DefaultConfig()
		rcfg.WebSearch = cfg.WebSearchEnabled()
		d.chat = chat.NewService(
			d.log,
			responder.New(d.provider, rcfg),
			classifier.New(d.provider, classifier.DefaultConfig(), logger),
			d.stats,
			d.regions,
			logger,
		)
	}

	if d.catalog, err = quiz.LoadCatalog(ctx, gen, snapshots, logger); err != nil {
		return err
	}
	return nil
}

// requireLLM returns an error explaining why AI features are unavailable.
func (d *deps) requireLLM() error {
	if d.chat != nil {
		return nil
	}
	if d.providerErr != nil {
		return fmt.Errorf("LLM provider not configured: %w", d.providerErr)
	}
	return fmt.Errorf("LLM provider not configured")
}

func (d *deps) Close() error {
	return d.store.Close()
}

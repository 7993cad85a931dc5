package region

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/civiclink/civiclink/internal/store"
)

// Selector tracks the selected region and persists every change.
type Selector struct {
	mu       sync.Mutex
	profiles []Profile
	current  int
	repo     store.SnapshotRepo
	logger   *slog.Logger
}

// NewSelector loads the bundled profiles and the persisted selection.
// repo may be nil. A persisted name without a profile falls back to
// DefaultRegion.
func NewSelector(ctx context.Context, repo store.SnapshotRepo, logger *slog.Logger) (*Selector, error) {
	profiles, err := Profiles()
	if err != nil {
		return nil, err
	}
	return newSelector(ctx, profiles, repo, logger)
}

func newSelector(ctx context.Context, profiles []Profile, repo store.SnapshotRepo, logger *slog.Logger) (*Selector, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Selector{
		profiles: profiles,
		repo:     repo,
		logger:   logger.With("component", "region"),
	}
	s.current = max(s.index(DefaultRegion), 0)

	if repo == nil {
		return s, nil
	}
	var name string
	found, err := repo.Load(ctx, store.KeySelectedRegion, &name)
	if err != nil {
		return nil, fmt.Errorf("load selected region: %w", err)
	}
	if found {
		if i := s.index(name); i >= 0 {
			s.current = i
		} else {
			s.logger.Warn("persisted region has no profile, using default", "region", name)
		}
	}
	return s, nil
}

// Profiles returns every selectable region in display order.
func (s *Selector) Profiles() []Profile {
	return slices.Clone(s.profiles)
}

// Current returns the selected region.
func (s *Selector) Current() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles[s.current]
}

// Select makes name the current region. Names match case-insensitively.
func (s *Selector) Select(ctx context.Context, name string) (Profile, error) {
	i := s.index(name)
	if i < 0 {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = i
	p := s.profiles[i]
	if s.repo != nil {
		if err := s.repo.Save(ctx, store.KeySelectedRegion, p.Name); err != nil {
			s.logger.Warn("failed to persist selected region", "region", p.Name, "error", err)
		}
	}
	return p, nil
}

// Context returns the prompt context for the selected region.
func (s *Selector) Context() string {
	return s.Current().Context()
}

func (s *Selector) index(name string) int {
	for i, p := range s.profiles {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civiclink/civiclink/internal/store"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

// Generator produces quiz questions about a problem.
type Generator interface {
	Generate(ctx context.Context, problem string, category taxonomy.Category, sub taxonomy.SubCategory) ([]Question, error)
}

// Catalog is the append-only list of generated quizzes.
type Catalog struct {
	mu         sync.Mutex
	quizzes    []DynamicQuiz
	generating bool

	gen    Generator
	repo   store.SnapshotRepo
	logger *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewCatalog creates an empty catalog. repo may be nil, in which case
// nothing is persisted.
func NewCatalog(gen Generator, repo store.SnapshotRepo, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		gen:    gen,
		repo:   repo,
		logger: logger.With("component", "quiz-catalog"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// LoadCatalog creates a catalog holding the persisted quizzes, if any.
func LoadCatalog(ctx context.Context, gen Generator, repo store.SnapshotRepo, logger *slog.Logger) (*Catalog, error) {
	c := NewCatalog(gen, repo, logger)
	if repo == nil {
		return c, nil
	}
	if _, err := repo.Load(ctx, store.KeyDynamicQuizzes, &c.quizzes); err != nil {
		return nil, fmt.Errorf("load quiz catalog: %w", err)
	}
	return c, nil
}

// CreateFrom generates a quiz about problem and appends it to the catalog.
// Either a complete quiz of QuestionsPerQuiz well-formed questions is
// appended, or the catalog is left unchanged and an error wrapping
// ErrGenerationFailed is returned.
func (c *Catalog) CreateFrom(ctx context.Context, problem string, category taxonomy.Category, sub taxonomy.SubCategory) (DynamicQuiz, error) {
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return DynamicQuiz{}, fmt.Errorf("empty problem: %w", ErrInvalidSeed)
	}
	if !taxonomy.IsSubCategoryOf(category, sub) {
		return DynamicQuiz{}, fmt.Errorf("%s/%s is not in the taxonomy: %w", category, sub, ErrInvalidSeed)
	}
	if c.gen == nil {
		return DynamicQuiz{}, fmt.Errorf("%w: no generator configured", ErrGenerationFailed)
	}

	c.mu.Lock()
	if c.generating {
		c.mu.Unlock()
		return DynamicQuiz{}, ErrGenerationInProgress
	}
	c.generating = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.generating = false
		c.mu.Unlock()
	}()

	questions, err := c.gen.Generate(ctx, problem, category, sub)
	if err != nil {
		c.logger.Warn("quiz generation failed", "category", category, "sub_category", sub, "error", err)
		return DynamicQuiz{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if err := checkBatch(questions); err != nil {
		c.logger.Warn("quiz generation returned unusable questions", "error", err)
		return DynamicQuiz{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	createdAt := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	q := DynamicQuiz{
		ID:             c.uniqueQuizID(),
		Title:          Title(category, sub),
		Questions:      c.assignIDs(questions, category, sub, createdAt),
		BasedOnProblem: problem,
		Category:       category,
		SubCategory:    sub,
		CreatedAt:      createdAt,
	}
	c.quizzes = append(c.quizzes, q)
	c.persist(ctx)

	c.logger.Info("quiz created", "quiz_id", q.ID, "category", category, "sub_category", sub)
	return q, nil
}

// CreateFromSeed generates a quiz from an eligible chat message.
func (c *Catalog) CreateFromSeed(ctx context.Context, seed Seed) (DynamicQuiz, error) {
	return c.CreateFrom(ctx, seed.Problem, seed.Category, seed.SubCategory)
}

// Generating reports whether a generation is in flight.
func (c *Catalog) Generating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generating
}

// Quizzes returns the catalog in insertion order.
func (c *Catalog) Quizzes() []DynamicQuiz {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.quizzes)
}

// Get returns the quiz with the given ID.
func (c *Catalog) Get(id string) (DynamicQuiz, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, q := range c.quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return DynamicQuiz{}, false
}

// Len returns the number of quizzes.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.quizzes)
}

// checkBatch rejects anything but exactly QuestionsPerQuiz well-formed
// questions.
func checkBatch(questions []Question) error {
	if len(questions) != QuestionsPerQuiz {
		return fmt.Errorf("got %d questions, want %d", len(questions), QuestionsPerQuiz)
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// assignIDs copies the batch, giving every question an ID that is unique
// within the batch and across the catalog. Question classifications outside
// the taxonomy are replaced by the quiz's own pair. Must be called with
// c.mu held.
func (c *Catalog) assignIDs(questions []Question, category taxonomy.Category, sub taxonomy.SubCategory, createdAt time.Time) []Question {
	used := make(map[string]bool)
	for _, q := range c.quizzes {
		for _, qq := range q.Questions {
			used[qq.ID] = true
		}
	}

	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = slices.Clone(q.Options)
		q.ID = strings.TrimSpace(q.ID)
		if q.ID == "" {
			q.ID = fmt.Sprintf("%d-%d", createdAt.UnixMilli(), i)
		}
		for used[q.ID] {
			q.ID = c.newID()
		}
		used[q.ID] = true

		if !taxonomy.IsSubCategoryOf(q.Category, q.SubCategory) {
			q.Category, q.SubCategory = category, sub
		}
		out[i] = q
	}
	return out
}

// uniqueQuizID must be called with c.mu held.
func (c *Catalog) uniqueQuizID() string {
	for {
		id := c.newID()
		if !slices.ContainsFunc(c.quizzes, func(q DynamicQuiz) bool { return q.ID == id }) {
			return id
		}
	}
}

// persist must be called with c.mu held.
func (c *Catalog) persist(ctx context.Context) {
	if c.repo == nil {
		return
	}
	if err := c.repo.Save(ctx, store.KeyDynamicQuizzes, c.quizzes); err != nil {
		c.logger.Warn("failed to persist quiz catalog", "error", err)
	}
}

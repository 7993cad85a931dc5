// Package quizgen generates multiple-choice quizzes about a civic problem
// with an LLM provider.
package quizgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/civiclink/civiclink/internal/llm"
	"github.com/civiclink/civiclink/internal/quiz"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

// LLMGenerator implements quiz.Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

var _ quiz.Generator = (*LLMGenerator)(nil)

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger.With("component", "quizgen")}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// Generate produces quiz.QuestionsPerQuiz questions about the problem.
func (g *LLMGenerator) Generate(ctx context.Context, problem string, category taxonomy.Category, sub taxonomy.SubCategory) ([]quiz.Question, error) {
	return g.GenerateInput(ctx, Input{Problem: problem, Category: category, SubCategory: sub})
}

// GenerateInput is Generate with an explicit Input. A batch failing a
// retryable validator is regenerated up to Config.MaxAttempts times in
// total.
func (g *LLMGenerator) GenerateInput(ctx context.Context, input Input) ([]quiz.Question, error) {
	attempts := max(g.config.MaxAttempts, 1)

	var lastErr error
	for attempt := range attempts {
		qs, err := g.generateOnce(ctx, input)
		if err == nil {
			return qs, nil
		}
		lastErr = err

		var valErr *ValidationError
		if !errors.As(err, &valErr) || !valErr.Retryable {
			return nil, err
		}
		g.logger.Info("regenerating quiz after validation failure",
			"attempt", attempt+1, "validator", valErr.Validator, "reason", valErr.Message)
	}
	return nil, lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context, input Input) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := llm.Decode(resp, &raw); err != nil {
		return nil, fmt.Errorf("parse quiz batch: %w", err)
	}

	if len(raw.Questions) != quiz.QuestionsPerQuiz {
		return nil, &ValidationError{
			Validator: "count",
			Message:   fmt.Sprintf("got %d questions, want %d", len(raw.Questions), quiz.QuestionsPerQuiz),
			Retryable: true,
		}
	}

	out := make([]quiz.Question, 0, len(raw.Questions))
	seen := make([]string, 0, len(raw.Questions))
	for _, r := range raw.Questions {
		q := quiz.Question{
			Question:     r.Question,
			Options:      r.Options,
			CorrectIndex: r.CorrectIndex,
			Explanation:  r.Explanation,
			Category:     input.Category,
			SubCategory:  input.SubCategory,
		}

		in := input
		in.PriorQuestions = seen
		// Run validators in order.
		for _, v := range g.config.Validators {
			if verr := v.Validate(&q, in); verr != nil {
				return nil, verr
			}
		}

		seen = append(seen, q.Question)
		out = append(out, q)
	}
	return out, nil
}

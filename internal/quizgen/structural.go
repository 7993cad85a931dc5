package quizgen

import (
	"strings"

	"github.com/civiclink/civiclink/internal/quiz"
)

const (
	maxQuestionLen    = 400
	maxOptionLen      = 200
	maxExplanationLen = 1000
)

// StructuralValidator checks the shape of a question and its length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *quiz.Question, _ Input) *ValidationError {
	if err := q.Validate(); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error(), Retryable: true}
	}
	if len(q.Question) > maxQuestionLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question exceeds 400 characters",
			Retryable: true,
		}
	}
	for _, opt := range q.Options {
		if len(opt) > maxOptionLen {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "option exceeds 200 characters",
				Retryable: true,
			}
		}
	}
	if len(q.Explanation) > maxExplanationLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation exceeds 1000 characters",
			Retryable: true,
		}
	}
	return nil
}

// DistinctOptionsValidator rejects questions whose options repeat, which
// would make the correct index ambiguous.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(q *quiz.Question, _ Input) *ValidationError {
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		key := normalizeText(opt)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "duplicate option " + quote(opt),
				Retryable: true,
			}
		}
		seen[key] = true
	}
	return nil
}

// DuplicateValidator rejects a question that repeats one already accepted
// in the same batch.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *quiz.Question, input Input) *ValidationError {
	key := normalizeText(q.Question)
	for _, prior := range input.PriorQuestions {
		if normalizeText(prior) == key {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "question repeats an earlier one in the quiz",
				Retryable: true,
			}
		}
	}
	return nil
}

func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func quote(s string) string {
	return "\"" + s + "\""
}

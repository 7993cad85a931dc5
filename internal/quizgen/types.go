package quizgen

import "github.com/civiclink/civiclink/internal/taxonomy"

// Input holds the context needed to generate a quiz.
type Input struct {
	// Problem is the user's original problem description.
	Problem string

	// Category and SubCategory are the problem's classification. Every
	// generated question is tagged with them.
	Category    taxonomy.Category
	SubCategory taxonomy.SubCategory

	// PriorQuestions holds the question texts already accepted in the
	// current batch. Filled in by the generator for its validators.
	PriorQuestions []string
}

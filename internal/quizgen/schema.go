package quizgen

import (
	"github.com/civiclink/civiclink/internal/llm"
	"github.com/civiclink/civiclink/internal/quiz"
)

// QuizSchema defines the JSON schema for LLM quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "civic-quiz",
	Description: "A short multiple-choice quiz about a local civic problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"minItems":    quiz.QuestionsPerQuiz,
				"maxItems":    quiz.QuestionsPerQuiz,
				"description": "Exactly 4 questions",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the user",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    quiz.OptionCount,
							"maxItems":    quiz.OptionCount,
							"description": "Exactly 4 answer options, one of them correct",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     quiz.OptionCount - 1,
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right, shown after answering",
						},
					},
					"required":             []any{"question", "options", "correct_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators run on every
	// generated question. The first failure stops the pipeline.
	Validators []Validator

	// MaxAttempts is how many batches may be requested before a
	// retryable validation failure is returned to the caller.
	MaxAttempts int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
			&DuplicateValidator{},
		},
		MaxAttempts: 2,
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

package llm

import "context"

// Purposes tag requests so logs and usage reports can tell them apart.
const (
	PurposeChat     = "chat"
	PurposeClassify = "classify"
	PurposeQuizGen  = "quiz-gen"
)

type purposeKey struct{}

func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns "unknown" for untagged contexts.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}

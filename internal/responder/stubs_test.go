package responder

import (
	"context"

	"github.com/civiclink/civiclink/internal/taxonomy"
)

type stubClassifier struct{}

func (stubClassifier) Classify(context.Context, string) (taxonomy.Category, taxonomy.SubCategory) {
	return taxonomy.CategoryHealth, taxonomy.SubHealthPromotion
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, taxonomy.Category, taxonomy.SubCategory) {}

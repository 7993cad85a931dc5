package quiz

import (
	"strings"
	"time"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

// Seed is a chat message eligible as the basis of a new quiz.
type Seed struct {
	MessageID   string
	Problem     string
	Category    taxonomy.Category
	SubCategory taxonomy.SubCategory
	CreatedAt   time.Time
}

// SeedFrom reports whether m can seed a quiz: it must be a model reply
// carrying the original problem text and a classification that is valid
// within the taxonomy.
func SeedFrom(m chat.Message) (Seed, bool) {
	if m.Role != chat.RoleModel {
		return Seed{}, false
	}
	problem := strings.TrimSpace(m.OriginalProblem)
	if problem == "" {
		return Seed{}, false
	}
	if !taxonomy.IsSubCategoryOf(m.Category, m.SubCategory) {
		return Seed{}, false
	}
	return Seed{
		MessageID:   m.ID,
		Problem:     problem,
		Category:    m.Category,
		SubCategory: m.SubCategory,
		CreatedAt:   m.CreatedAt,
	}, true
}

// Seeds filters msgs down to quiz seeds, keeping log order.
func Seeds(msgs []chat.Message) []Seed {
	var out []Seed
	for _, m := range msgs {
		if s, ok := SeedFrom(m); ok {
			out = append(out, s)
		}
	}
	return out
}

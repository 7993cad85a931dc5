package classifier

import (
	"github.com/civiclink/civiclink/internal/llm"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

// ClassificationSchema defines the JSON schema for classification responses.
// Both fields are closed enums built from the taxonomy, so a response that
// validates always names declared values. Whether the pair belongs together
// is left to the statistics fallback.
var ClassificationSchema = &llm.Schema{
	Name:        "problem-classification",
	Description: "Category and sub-category of a local civic problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]any{
				"type":        "string",
				"enum":        categoryEnum(),
				"description": "The category that best fits the problem",
			},
			"sub_category": map[string]any{
				"type":        "string",
				"enum":        subCategoryEnum(),
				"description": "A sub-category belonging to the chosen category",
			},
		},
		"required":             []any{"category", "sub_category"},
		"additionalProperties": false,
	},
}

func categoryEnum() []any {
	var out []any
	for _, c := range taxonomy.Categories() {
		out = append(out, string(c))
	}
	return out
}

func subCategoryEnum() []any {
	var out []any
	for _, s := range taxonomy.AllSubCategories() {
		out = append(out, string(s))
	}
	return out
}

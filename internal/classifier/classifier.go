package classifier

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/civiclink/civiclink/internal/llm"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

// Config holds configuration for the LLM classifier.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   128,
		Temperature: 0,
	}
}

// Classifier maps a problem description onto the taxonomy with an LLM.
type Classifier struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// New creates an LLM-backed classifier.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		provider: provider,
		cfg:      cfg,
		logger:   logger.With("component", "classifier"),
	}
}

// Result is a classification as returned by the model.
type Result struct {
	Category    taxonomy.Category
	SubCategory taxonomy.SubCategory
}

// classificationOutput is the raw LLM response.
type classificationOutput struct {
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
}

// Classify never fails: any provider or decoding error yields the
// catch-all pair.
func (c *Classifier) Classify(ctx context.Context, problem string) (taxonomy.Category, taxonomy.SubCategory) {
	res, err := c.ClassifyResult(ctx, problem)
	if err != nil {
		c.logger.Warn("classification failed, using catch-all", "error", err)
		return taxonomy.CatchAll, taxonomy.CatchAllSub
	}
	return res.Category, res.SubCategory
}

// ClassifyResult asks the model for a classification and reports errors.
func (c *Classifier) ClassifyResult(ctx context.Context, problem string) (Result, error) {
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return Result{}, fmt.Errorf("classify: empty problem")
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeClassify)

	userMsg, err := buildClassifyMessage(problem)
	if err != nil {
		return Result{}, fmt.Errorf("build classification prompt: %w", err)
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ClassificationSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return Result{}, fmt.Errorf("LLM classification failed: %w", err)
	}

	var raw classificationOutput
	if err := llm.Decode(resp, &raw); err != nil {
		return Result{}, fmt.Errorf("parse classification: %w", err)
	}

	return Result{
		Category:    taxonomy.Category(raw.Category),
		SubCategory: taxonomy.SubCategory(raw.SubCategory),
	}, nil
}

const systemPrompt = `You classify local civic problems reported by residents of a Japanese prefecture.

Instructions:
- Pick exactly one category and one sub-category from the table provided.
- The sub-category must be listed under the chosen category.
- Use "Other" when nothing fits. Do not invent new values.
- Respond only with the requested JSON object.`

type tableRow struct {
	Category string
	Subs     string
}

var classifyTemplate = template.Must(template.New("classify").Parse(`Categories and their sub-categories:
{{range .Table}}- {{.Category}}: {{.Subs}}
{{end}}
Problem:
{{.Problem}}
`))

func buildClassifyMessage(problem string) (string, error) {
	var rows []tableRow
	for _, cat := range taxonomy.Categories() {
		var subs []string
		for _, s := range taxonomy.SubCategoriesOf(cat) {
			subs = append(subs, string(s))
		}
		rows = append(rows, tableRow{Category: string(cat), Subs: strings.Join(subs, ", ")})
	}

	var buf bytes.Buffer
	err := classifyTemplate.Execute(&buf, struct {
		Table   []tableRow
		Problem string
	}{rows, problem})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

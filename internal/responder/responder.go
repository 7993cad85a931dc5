// Package responder produces conversational advice for a civic problem
// with an LLM provider and web search grounding.
package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/llm"
)

// Config holds configuration for the responder.
type Config struct {
	// WebSearch grounds replies on a web search when the provider
	// supports it.
	WebSearch   bool
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		WebSearch:   true,
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Responder implements chat.Responder.
type Responder struct {
	provider llm.Provider
	cfg      Config
}

var _ chat.Responder = (*Responder)(nil)

// New creates a responder.
func New(provider llm.Provider, cfg Config) *Responder {
	return &Responder{provider: provider, cfg: cfg}
}

// Respond asks the model for advice on prompt. regionContext, when
// non-empty, is placed ahead of the problem.
func (r *Responder) Respond(ctx context.Context, prompt, regionContext string) (chat.Reply, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)

	resp, err := r.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(prompt, regionContext)},
		},
		WebSearch:   r.cfg.WebSearch,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return chat.Reply{}, fmt.Errorf("LLM response failed: %w", err)
	}

	reply := chat.Reply{Text: strings.TrimSpace(resp.Text())}
	for _, s := range resp.Sources {
		reply.URLs = append(reply.URLs, chat.Source{URI: s.URI, Title: s.Title})
	}
	return reply, nil
}

const systemPrompt = `You are LINK, a personal trainer for solving local civic problems.

Instructions:
- Restate the resident's problem concretely in one or two sentences.
- Propose practical solutions tailored to the resident's region, naming local programs, organizations or events where you know them.
- When regional figures are provided, refer to the specific numbers that support your advice.
- Keep the answer under 300 words and use short paragraphs or a brief list.`

func buildUserMessage(prompt, regionContext string) string {
	var b strings.Builder
	if rc := strings.TrimSpace(regionContext); rc != "" {
		b.WriteString(rc)
		b.WriteString("\n\n")
	}
	b.WriteString("Resident's problem:\n")
	b.WriteString(strings.TrimSpace(prompt))
	return b.String()
}

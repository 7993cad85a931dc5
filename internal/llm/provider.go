// Package llm talks to the hosted language models behind CivicLink's
// advisor, classifier and quiz generator. Every backend implements
// Provider; retry, timeout and request logging wrap it as decorators.
package llm

import (
	"context"
	"encoding/json"
)

type Provider interface {
	// Generate sends one request. With req.Schema set, the returned
	// Content is JSON that passed the schema.
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured output. Nil means free text.
	Schema *Schema

	// WebSearch grounds a free-text answer on a live search. Backends
	// without a search tool, and any request with a Schema, ignore it.
	WebSearch bool

	MaxTokens int

	// Temperature of zero leaves the backend default in place.
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema is a JSON Schema plus the name backends and the validator cache
// know it by.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Sources []Source
	Usage   Usage
	Model   string

	// StopReason is "end" or "max_tokens" whatever the backend calls them.
	StopReason string
}

func (r *Response) Text() string {
	return string(r.Content)
}

// Source is a page a grounded answer cites.
type Source struct {
	URI   string
	Title string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// dedupSources keeps the first source per URI and drops those without one.
func dedupSources(in []Source) []Source {
	seen := make(map[string]struct{}, len(in))
	var out []Source
	for _, s := range in {
		if _, dup := seen[s.URI]; dup || s.URI == "" {
			continue
		}
		seen[s.URI] = struct{}{}
		out = append(out, s)
	}
	return out
}

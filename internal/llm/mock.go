package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one canned reply. A non-nil Err is returned instead of
// a response.
type MockResponse struct {
	Content json.RawMessage
	Sources []Source
	Usage   Usage
	Err     error
}

// MockProvider replays canned replies in order and records every request.
// Replies queued with For are only handed to calls of that purpose, which
// lets one mock serve the chat, classify and quiz-gen calls of a single
// user turn.
type MockProvider struct {
	mu        sync.Mutex
	shared    []MockResponse
	byPurpose map[string][]MockResponse

	Calls    []Request
	Purposes []string
}

var errMockExhausted = errors.New("mock has no reply queued")

// NewMockProvider returns a mock holding the given replies.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{shared: responses, byPurpose: make(map[string][]MockResponse)}
}

// For queues replies for calls tagged with purpose via WithPurpose.
func (m *MockProvider) For(purpose string, responses ...MockResponse) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPurpose[purpose] = append(m.byPurpose[purpose], responses...)
	return m
}

// AddResponse appends a reply to the shared queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shared = append(m.shared, resp)
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	purpose := PurposeFrom(ctx)
	m.Calls = append(m.Calls, req)
	m.Purposes = append(m.Purposes, purpose)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next, ok := m.pop(purpose)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: errMockExhausted}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Sources:    next.Sources,
		Usage:      next.Usage,
		Model:      m.ModelID(),
		StopReason: "end",
	}, nil
}

// pop must be called with m.mu held.
func (m *MockProvider) pop(purpose string) (MockResponse, bool) {
	if q := m.byPurpose[purpose]; len(q) > 0 {
		m.byPurpose[purpose] = q[1:]
		return q[0], true
	}
	if len(m.shared) == 0 {
		return MockResponse{}, false
	}
	next := m.shared[0]
	m.shared = m.shared[1:]
	return next, true
}

func (m *MockProvider) ModelID() string { return "mock" }
func (m *MockProvider) Name() string { return "mock" }

// CallCount returns how many times Generate ran.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

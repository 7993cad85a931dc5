package chat

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civiclink/civiclink/internal/store"
)

// Log is the append-only conversation log. Every append is persisted
// before Append returns.
type Log struct {
	mu       sync.Mutex
	messages []Message
	repo     store.SnapshotRepo
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewLog creates an empty log. repo may be nil, in which case nothing is
// persisted.
func NewLog(repo store.SnapshotRepo, logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{
		repo:   repo,
		logger: logger.With("component", "chat-log"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// LoadLog creates a log holding the persisted history, if any.
func LoadLog(ctx context.Context, repo store.SnapshotRepo, logger *slog.Logger) (*Log, error) {
	l := NewLog(repo, logger)
	if repo == nil {
		return l, nil
	}
	if _, err := repo.Load(ctx, store.KeyChatHistory, &l.messages); err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	return l, nil
}

// Append adds m to the end of the log, filling in a missing ID and
// timestamp, and returns the stored message.
func (l *Log) Append(ctx context.Context, m Message) Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	if m.ID == "" {
		m.ID = l.newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = l.now()
	}
	m.URLs = slices.Clone(m.URLs)
	l.messages = append(l.messages, m)
	l.persist(ctx)
	return m
}

// Resolve clears the pending mark of the message with the given ID.
func (l *Log) Resolve(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.messages {
		if l.messages[i].ID == id {
			l.messages[i].Pending = false
			return
		}
	}
}

// Messages returns the log in append order.
func (l *Log) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.messages)
}

// Get returns the message with the given ID.
func (l *Log) Get(id string) (Message, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// Len returns the number of messages.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

// Pending reports whether any message still waits for a reply.
func (l *Log) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.ContainsFunc(l.messages, func(m Message) bool { return m.Pending })
}

// Clear removes the whole history, in memory and in the store.
func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = nil
	if l.repo == nil {
		return nil
	}
	if err := l.repo.Delete(ctx, store.KeyChatHistory); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}

// persist must be called with l.mu held.
func (l *Log) persist(ctx context.Context) {
	if l.repo == nil {
		return
	}
	if err := l.repo.Save(ctx, store.KeyChatHistory, l.messages); err != nil {
		l.logger.Warn("failed to persist chat history", "error", err)
	}
}

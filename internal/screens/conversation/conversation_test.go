package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

type stubResponder struct {
	reply chat.Reply
	err   error
}

func (r stubResponder) Respond(context.Context, string, string) (chat.Reply, error) {
	return r.reply, r.err
}

type stubClassifier struct{}

func (stubClassifier) Classify(context.Context, string) (taxonomy.Category, taxonomy.SubCategory) {
	return taxonomy.CategoryDisasterPrevention, taxonomy.SubEvacuation
}

type stubRecorder struct{ n int }

func (r *stubRecorder) Record(context.Context, taxonomy.Category, taxonomy.SubCategory) { r.n++ }

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newScreen(resp stubResponder) (*ConversationScreen, *stubRecorder) {
	log := chat.NewLog(nil, nil)
	rec := &stubRecorder{}
	svc := chat.NewService(log, resp, stubClassifier{}, rec, nil, nil)
	return New(svc, log), rec
}

// runUntilReply executes cmd, expanding batches, and feeds the reply back.
func runUntilReply(t *testing.T, s *ConversationScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if reply, ok := c().(replyMsg); ok {
				s.Update(reply)
				return
			}
		}
		t.Fatal("no reply in batch")
	case replyMsg:
		s.Update(msg)
	default:
		t.Fatalf("unexpected message %T", msg)
	}
}

func TestConversationScreen_SendShowsPendingThenReply(t *testing.T) {
	s, rec := newScreen(stubResponder{reply: chat.Reply{
		Text: "Check the hazard map and register with the evacuation center.",
		URLs: []chat.Source{{URI: "https://example.org/hazard", Title: "Hazard map"}},
	}})

	s.input.Model.SetValue("Nobody knows where to evacuate")
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	if !s.busy {
		t.Fatal("expected screen to wait for the reply")
	}
	if !s.log.Pending() {
		t.Error("expected the user message to be pending")
	}
	if s.input.Value() != "" {
		t.Error("expected input to be cleared")
	}
	if !strings.Contains(s.View(100, 30), "sending") {
		t.Error("expected pending marker in view")
	}

	runUntilReply(t, s, cmd)

	if s.busy {
		t.Error("expected screen to accept input again")
	}
	if s.log.Len() != 2 {
		t.Fatalf("log length = %d, want 2", s.log.Len())
	}
	if rec.n != 1 {
		t.Errorf("recorded = %d, want 1", rec.n)
	}
	view := s.View(120, 40)
	for _, want := range []string{"Hazard map", "Evacuation"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestConversationScreen_ResponderFailureShowsPlaceholder(t *testing.T) {
	s, rec := newScreen(stubResponder{err: errors.New("offline")})

	s.input.Model.SetValue("Clinic hours are too short")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	runUntilReply(t, s, cmd)

	msgs := s.log.Messages()
	if len(msgs) != 2 || msgs[1].Text != chat.PlaceholderError {
		t.Fatalf("unexpected log: %+v", msgs)
	}
	if rec.n != 0 {
		t.Errorf("recorded = %d, want 0", rec.n)
	}
}

func TestConversationScreen_EmptyInputIgnored(t *testing.T) {
	s, _ := newScreen(stubResponder{})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command for empty input")
	}
	if s.log.Len() != 0 {
		t.Error("expected nothing appended")
	}
}

func TestConversationScreen_ReadOnlyWithoutService(t *testing.T) {
	log := chat.NewLog(nil, nil)
	log.Append(context.Background(), chat.Message{Role: chat.RoleUser, Text: "Old question"})
	s := New(nil, log)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command without a service")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Old question") || !strings.Contains(view, "API key") {
		t.Error("expected history and API key hint")
	}
}

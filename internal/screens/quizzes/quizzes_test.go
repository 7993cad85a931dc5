package quizzes

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/quiz"
	"github.com/civiclink/civiclink/internal/router"
	"github.com/civiclink/civiclink/internal/screens/play"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

type stubGenerator struct {
	err error
}

func (g stubGenerator) Generate(_ context.Context, problem string, c taxonomy.Category, sub taxonomy.SubCategory) ([]quiz.Question, error) {
	if g.err != nil {
		return nil, g.err
	}
	out := make([]quiz.Question, quiz.QuestionsPerQuiz)
	for i := range out {
		out[i] = quiz.Question{
			Question:     "What helps with: " + problem + "?",
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: i % quiz.OptionCount,
			Explanation:  "Because.",
			Category:     c,
			SubCategory:  sub,
		}
	}
	return out, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func seededLog() *chat.Log {
	log := chat.NewLog(nil, nil)
	ctx := context.Background()
	log.Append(ctx, chat.Message{Role: chat.RoleUser, Text: "Bus stops are far from the hospital"})
	log.Append(ctx, chat.Message{
		Role:            chat.RoleModel,
		Text:            "Ask about community buses.",
		Category:        taxonomy.CategoryHealth,
		SubCategory:     taxonomy.SubCaregiving,
		OriginalProblem: "Bus stops are far from the hospital",
	})
	return log
}

// runGenerate executes the creation command, skipping the animation tick.
func runGenerate(t *testing.T, s *QuizzesScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatal("expected a batch")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(generatedMsg); ok {
			s.Update(msg)
			return
		}
	}
	t.Fatal("no generation result in batch")
}

func TestQuizzesScreen_FocusesSeedsWhenCatalogEmpty(t *testing.T) {
	s := New(quiz.NewCatalog(stubGenerator{}, nil, nil), seededLog())
	if s.focus != sectionSeeds {
		t.Errorf("focus = %d, want seeds", s.focus)
	}
	view := s.View(100, 30)
	for _, want := range []string{"No quizzes yet", "Bus stops are far"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuizzesScreen_CreateFromSeed(t *testing.T) {
	catalog := quiz.NewCatalog(stubGenerator{}, nil, nil)
	s := New(catalog, seededLog())

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if !s.generating {
		t.Fatal("expected generating state")
	}
	if !strings.Contains(s.View(100, 30), "Creating quiz") {
		t.Error("expected progress text")
	}

	runGenerate(t, s, cmd)

	if s.generating {
		t.Error("expected generation to finish")
	}
	if catalog.Len() != 1 {
		t.Fatalf("catalog length = %d, want 1", catalog.Len())
	}
	if s.focus != sectionQuizzes {
		t.Error("expected focus to move to the new quiz")
	}
	if !strings.Contains(s.status, "Health & Care Quiz: Caregiving") {
		t.Errorf("status = %q", s.status)
	}
}

func TestQuizzesScreen_GenerationFailureShowsError(t *testing.T) {
	catalog := quiz.NewCatalog(stubGenerator{err: errors.New("rate limited")}, nil, nil)
	s := New(catalog, seededLog())

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	runGenerate(t, s, cmd)

	if catalog.Len() != 0 {
		t.Error("expected catalog unchanged")
	}
	if !strings.Contains(s.View(100, 30), "Could not create a quiz") {
		t.Error("expected error message")
	}
}

func TestQuizzesScreen_EnterPlaysQuiz(t *testing.T) {
	catalog := quiz.NewCatalog(stubGenerator{}, nil, nil)
	if _, err := catalog.CreateFrom(context.Background(), "Flooded underpass", taxonomy.CategoryDisasterPrevention, taxonomy.SubInfrastructure); err != nil {
		t.Fatal(err)
	}
	s := New(catalog, nil)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*play.PlayScreen); !ok {
		t.Errorf("pushed %T, want *play.PlayScreen", push.Screen)
	}
}

func TestQuizzesScreen_TabAndNavigation(t *testing.T) {
	s := New(quiz.NewCatalog(stubGenerator{}, nil, nil), seededLog())

	s.Update(specialKey(tea.KeyTab))
	if s.focus != sectionQuizzes {
		t.Error("tab should switch to quizzes")
	}

	// Empty list: enter does nothing.
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command on empty list")
	}

	s.Update(keyPress('j'))
	if s.cursor[sectionQuizzes] != 0 {
		t.Error("cursor should stay at 0 on an empty list")
	}
}

func TestGenerationError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{quiz.ErrGenerationInProgress, "already being created"},
		{quiz.ErrInvalidSeed, "cannot be turned into a quiz"},
		{quiz.ErrGenerationFailed, "Could not create"},
	}
	for _, tt := range tests {
		if got := generationError(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("generationError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

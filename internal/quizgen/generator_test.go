package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/civiclink/civiclink/internal/llm"
	"github.com/civiclink/civiclink/internal/quiz"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

func quizJSON(questions ...string) json.RawMessage {
	var parts []string
	for _, q := range questions {
		parts = append(parts, fmt.Sprintf(`{
			"question": %q,
			"options": ["Close the shelter", "Check the hazard map", "Wait for rain", "Ignore alerts"],
			"correct_index": 1,
			"explanation": "Hazard maps show evacuation routes."
		}`, q))
	}
	return json.RawMessage(`{"questions":[` + strings.Join(parts, ",") + `]}`)
}

func validQuizJSON() json.RawMessage {
	return quizJSON(
		"Where can you find evacuation routes?",
		"What should you prepare before a typhoon?",
		"Who runs the local evacuation drill?",
		"When should you leave for a shelter?",
	)
}

func TestGenerate_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON()})
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), "The shelter is hard to find",
		taxonomy.CategoryDisasterPrevention, taxonomy.SubEvacuation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != quiz.QuestionsPerQuiz {
		t.Fatalf("got %d questions", len(qs))
	}
	for i, q := range qs {
		if q.Category != taxonomy.CategoryDisasterPrevention || q.SubCategory != taxonomy.SubEvacuation {
			t.Errorf("question %d tagged %q/%q", i, q.Category, q.SubCategory)
		}
		if q.CorrectIndex != 1 {
			t.Errorf("question %d correct index = %d", i, q.CorrectIndex)
		}
		if q.ID != "" {
			t.Errorf("question %d should leave ID to the catalog, got %q", i, q.ID)
		}
	}

	call := mock.Calls[0]
	if call.Schema != QuizSchema {
		t.Error("request did not use the quiz schema")
	}
	if !strings.Contains(call.Messages[0].Content, "The shelter is hard to find") {
		t.Errorf("problem missing from prompt: %q", call.Messages[0].Content)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), "p", taxonomy.CategoryOther, taxonomy.SubOther)
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider errors should not be regenerated here, got %d calls", mock.CallCount())
	}
}

func TestGenerate_WrongCountRegenerates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: quizJSON("Only one?")},
		llm.MockResponse{Content: validQuizJSON()},
	)
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), "p", taxonomy.CategoryTourism, taxonomy.SubNature)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 4 {
		t.Fatalf("got %d questions", len(qs))
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestGenerate_ValidationFailureAfterAttempts(t *testing.T) {
	dup := quizJSON("Same?", "Same?", "Other?", "Fourth?")
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: dup},
		llm.MockResponse{Content: dup},
	)
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), "p", taxonomy.CategoryEducation, taxonomy.SubSchool)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if valErr.Validator != "duplicate" {
		t.Errorf("validator = %q, want duplicate", valErr.Validator)
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestGenerate_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":`)})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), "p", taxonomy.CategoryHealth, taxonomy.SubCaregiving)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
}

// alwaysRejectValidator always rejects.
type alwaysRejectValidator struct{ retryable bool }

func (v *alwaysRejectValidator) Name() string { return "always-reject" }
func (v *alwaysRejectValidator) Validate(*quiz.Question, Input) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: "rejected", Retryable: v.retryable}
}

func TestGenerate_NonRetryableStopsImmediately(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validQuizJSON()},
		llm.MockResponse{Content: validQuizJSON()},
	)
	cfg := DefaultConfig()
	cfg.Validators = []Validator{&alwaysRejectValidator{retryable: false}}
	gen := New(mock, cfg, nil)

	_, err := gen.Generate(context.Background(), "p", taxonomy.CategoryOther, taxonomy.SubOther)
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestGenerate_SatisfiesCatalog(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON()})
	cat := quiz.NewCatalog(New(mock, DefaultConfig(), nil), nil, nil)

	dq, err := cat.CreateFrom(context.Background(), "Rivers overflow every summer",
		taxonomy.CategoryDisasterPrevention, taxonomy.SubInfrastructure)
	if err != nil {
		t.Fatalf("CreateFrom: %v", err)
	}
	if len(dq.Questions) != 4 {
		t.Fatalf("got %d questions", len(dq.Questions))
	}
	for _, q := range dq.Questions {
		if q.ID == "" {
			t.Error("catalog should assign question IDs")
		}
	}
}

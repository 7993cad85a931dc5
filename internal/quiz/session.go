package quiz

import (
	"fmt"
	"slices"
)

// Phase is the phase of a quiz session.
type Phase int

const (
	PhaseIdle     Phase = iota // No quiz loaded
	PhasePlaying               // Question shown, no answer submitted
	PhaseAnswered              // Answer submitted, explanation shown
	PhaseFinished              // All questions consumed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseAnswered:
		return "answered"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SessionState is a read-only snapshot of a session.
type SessionState struct {
	QuizID             string
	Phase              Phase
	Index              int
	Total              int
	Selected           *int // nil when no option is selected
	ExplanationVisible bool
	Score              int
	Finished           bool
}

// Feedback describes the outcome of a submit.
type Feedback struct {
	// Applied is false when the submit was ignored (no selection made,
	// or the question was already answered).
	Applied      bool
	Correct      bool
	Selected     int
	CorrectIndex int
	Explanation  string
}

// Session plays one quiz question by question. The zero value is an idle
// session. A Session is not safe for concurrent use.
type Session struct {
	quiz  *DynamicQuiz
	phase Phase
	index int
	score int

	// choice is the selected option index plus one; 0 means none.
	choice int
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{}
}

// Start loads q and shows its first question. Any previous progress is
// discarded. A quiz without questions is rejected and leaves the session
// untouched.
func (s *Session) Start(q DynamicQuiz) error {
	if len(q.Questions) == 0 {
		return ErrEmptyQuiz
	}
	q.Questions = slices.Clone(q.Questions)
	s.quiz = &q
	s.phase = PhasePlaying
	s.index = 0
	s.choice = 0
	s.score = 0
	return nil
}

// SelectOption marks option i of the current question. It is ignored once
// the answer has been submitted.
func (s *Session) SelectOption(i int) error {
	switch s.phase {
	case PhaseAnswered:
		return nil
	case PhasePlaying:
	default:
		return fmt.Errorf("select option while %s: %w", s.phase, ErrInvalidTransition)
	}

	q := s.quiz.Questions[s.index]
	if i < 0 || i >= len(q.Options) {
		return fmt.Errorf("option %d of %d: %w", i, len(q.Options), ErrOptionOutOfRange)
	}
	s.choice = i + 1
	return nil
}

// Submit checks the selected option against the current question and
// reveals the explanation. The score grows by one for a correct answer.
// Submitting without a selection, or submitting again after the answer was
// accepted, is ignored.
func (s *Session) Submit() (Feedback, error) {
	switch s.phase {
	case PhaseAnswered:
		return Feedback{}, nil
	case PhasePlaying:
	default:
		return Feedback{}, fmt.Errorf("submit while %s: %w", s.phase, ErrInvalidTransition)
	}
	if s.choice == 0 {
		return Feedback{}, nil
	}

	q := s.quiz.Questions[s.index]
	selected := s.choice - 1
	correct := selected == q.CorrectIndex
	if correct {
		s.score++
	}
	s.phase = PhaseAnswered

	return Feedback{
		Applied:      true,
		Correct:      correct,
		Selected:     selected,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}, nil
}

// Next moves past an answered question. After the last question the
// session finishes and the index stays on the last question.
func (s *Session) Next() error {
	if s.phase != PhaseAnswered {
		return fmt.Errorf("next while %s: %w", s.phase, ErrInvalidTransition)
	}
	if s.index == len(s.quiz.Questions)-1 {
		s.phase = PhaseFinished
		return nil
	}
	s.index++
	s.choice = 0
	s.phase = PhasePlaying
	return nil
}

// Restart starts the loaded quiz again from the first question.
func (s *Session) Restart() error {
	if s.phase == PhaseIdle || s.quiz == nil {
		return fmt.Errorf("restart while %s: %w", s.phase, ErrInvalidTransition)
	}
	return s.Start(*s.quiz)
}

// ExitToCatalog drops the loaded quiz and all progress.
func (s *Session) ExitToCatalog() {
	s.quiz = nil
	s.phase = PhaseIdle
	s.index = 0
	s.choice = 0
	s.score = 0
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Quiz returns the loaded quiz.
func (s *Session) Quiz() (DynamicQuiz, bool) {
	if s.quiz == nil {
		return DynamicQuiz{}, false
	}
	return *s.quiz, true
}

// Current returns the question at the current index.
func (s *Session) Current() (Question, bool) {
	if s.quiz == nil {
		return Question{}, false
	}
	return s.quiz.Questions[s.index], true
}

// State returns a snapshot of the session.
func (s *Session) State() SessionState {
	st := SessionState{
		Phase:              s.phase,
		Index:              s.index,
		Score:              s.score,
		ExplanationVisible: s.phase == PhaseAnswered || s.phase == PhaseFinished,
		Finished:           s.phase == PhaseFinished,
	}
	if s.quiz != nil {
		st.QuizID = s.quiz.ID
		st.Total = len(s.quiz.Questions)
	}
	if s.choice > 0 && s.phase != PhaseIdle {
		sel := s.choice - 1
		st.Selected = &sel
	}
	return st
}

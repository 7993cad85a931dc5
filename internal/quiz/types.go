// Package quiz implements the quiz catalog and the quiz play session.
package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/civiclink/civiclink/internal/taxonomy"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// QuestionsPerQuiz is the number of questions a generated quiz contains.
const QuestionsPerQuiz = 4

var (
	// ErrEmptyQuiz is returned when starting a quiz that has no questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")

	// ErrInvalidTransition is returned for an operation the current
	// session phase does not allow.
	ErrInvalidTransition = errors.New("invalid quiz session transition")

	// ErrOptionOutOfRange is returned when selecting an option index that
	// the current question does not have.
	ErrOptionOutOfRange = errors.New("option index out of range")

	// ErrGenerationFailed is returned when the quiz generator could not
	// produce a usable quiz. The catalog is unchanged and the caller may
	// retry.
	ErrGenerationFailed = errors.New("quiz generation failed")

	// ErrGenerationInProgress is returned when a generation is requested
	// while another is still running.
	ErrGenerationInProgress = errors.New("quiz generation already in progress")

	// ErrInvalidSeed is returned when a quiz is requested for an empty
	// problem or a category pair outside the taxonomy.
	ErrInvalidSeed = errors.New("invalid quiz seed")
)

// Question is one multiple-choice question.
type Question struct {
	ID           string               `json:"id"`
	Question     string               `json:"question"`
	Options      []string             `json:"options"`
	CorrectIndex int                  `json:"correctIndex"`
	Explanation  string               `json:"explanation"`
	Category     taxonomy.Category    `json:"category"`
	SubCategory  taxonomy.SubCategory `json:"subCategory"`
}

// Validate checks the structural shape of a question.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question has %d options, want %d", len(q.Options), OptionCount)
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return fmt.Errorf("correct index %d out of range [0,%d]", q.CorrectIndex, OptionCount-1)
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return fmt.Errorf("explanation is empty")
	}
	return nil
}

// DynamicQuiz is a quiz generated from a problem the user described.
type DynamicQuiz struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Questions      []Question           `json:"questions"`
	BasedOnProblem string               `json:"basedOnProblem"`
	Category       taxonomy.Category    `json:"category"`
	SubCategory    taxonomy.SubCategory `json:"subCategory"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// Title builds the display title for a quiz on the given pair. The
// catch-all sub-category adds nothing to the title.
func Title(c taxonomy.Category, sub taxonomy.SubCategory) string {
	title := c.Label() + " Quiz"
	if sub != "" && sub != taxonomy.CatchAllSub {
		title += ": " + sub.Label()
	}
	return title
}

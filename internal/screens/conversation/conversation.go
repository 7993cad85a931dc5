package conversation

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/screen"
	"github.com/civiclink/civiclink/internal/ui/components"
	"github.com/civiclink/civiclink/internal/ui/layout"
)

// maxProblemLength bounds a single problem description.
const maxProblemLength = 1000

// spinnerFrames animate the waiting indicator.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ConversationScreen lets the user describe problems and read replies.
type ConversationScreen struct {
	svc    *chat.Service
	log    *chat.Log
	input  components.TextInput
	busy   bool
	frame  int
	scroll int // lines scrolled up from the bottom
	errMsg string
}

var _ screen.Screen = (*ConversationScreen)(nil)
var _ screen.KeyHintProvider = (*ConversationScreen)(nil)

// New creates a ConversationScreen. svc may be nil, in which case the
// history is shown read-only.
func New(svc *chat.Service, log *chat.Log) *ConversationScreen {
	s := &ConversationScreen{
		svc:   svc,
		log:   log,
		input: components.NewTextInput("Describe a problem in your area...", maxProblemLength),
	}
	if svc == nil {
		s.input.SetDisabled(true)
	}
	return s
}

func (s *ConversationScreen) Init() tea.Cmd {
	if s.svc == nil {
		return nil
	}
	return s.input.Init()
}

func (s *ConversationScreen) Title() string {
	return "Ask LINK"
}

func (s *ConversationScreen) KeyHints() []layout.KeyHint {
	if s.svc == nil {
		return []layout.KeyHint{{Key: "PgUp/PgDn", Description: "Scroll"}}
	}
	if s.busy {
		return []layout.KeyHint{{Key: "PgUp/PgDn", Description: "Scroll"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
	}
}

func (s *ConversationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.busy = false
		s.scroll = 0
		s.input.SetDisabled(false)
		return s, nil

	case spinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ConversationScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "pgup":
		s.scroll += 5
		return s, nil
	case "pgdown":
		s.scroll = max(s.scroll-5, 0)
		return s, nil
	case "enter":
		return s.send()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send appends the problem to the log right away and fetches the reply
// in the background.
func (s *ConversationScreen) send() (screen.Screen, tea.Cmd) {
	if s.svc == nil || s.busy {
		return s, nil
	}
	text := s.input.Value()
	if text == "" {
		return s, nil
	}

	user, err := s.svc.Begin(context.Background(), text)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyProblem) {
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}

	s.errMsg = ""
	s.busy = true
	s.scroll = 0
	s.input.Clear()
	s.input.SetDisabled(true)

	svc := s.svc
	complete := func() tea.Msg {
		return replyMsg{Reply: svc.Complete(context.Background(), user)}
	}
	return s, tea.Batch(complete, spinnerTick())
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

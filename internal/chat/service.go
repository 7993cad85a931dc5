package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/civiclink/civiclink/internal/taxonomy"
)

// Placeholder texts for replies that could not be produced.
const (
	PlaceholderError = "Sorry, something went wrong while answering. Please try again."
	PlaceholderEmpty = "Sorry, I could not come up with an answer for that."
)

// ErrEmptyProblem is returned when sending a blank problem.
var ErrEmptyProblem = errors.New("problem text is empty")

// Reply is the responder's answer to a problem.
type Reply struct {
	Text string
	URLs []Source
}

// Responder answers a problem, optionally grounded on a region context.
type Responder interface {
	Respond(ctx context.Context, prompt, regionContext string) (Reply, error)
}

// Classifier maps a problem onto the taxonomy. It must not fail; on
// internal error it returns the catch-all pair.
type Classifier interface {
	Classify(ctx context.Context, problem string) (taxonomy.Category, taxonomy.SubCategory)
}

// Recorder folds a classification into the statistics.
type Recorder interface {
	Record(ctx context.Context, category taxonomy.Category, sub taxonomy.SubCategory)
}

// RegionContext supplies the context text for the selected region.
type RegionContext interface {
	Context() string
}

// Service runs conversational turns against the log.
type Service struct {
	Log        *Log
	responder  Responder
	classifier Classifier
	recorder   Recorder
	region     RegionContext
	logger     *slog.Logger
}

// NewService wires a turn service. region may be nil.
func NewService(log *Log, responder Responder, classifier Classifier, recorder Recorder, region RegionContext, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Log:        log,
		responder:  responder,
		classifier: classifier,
		recorder:   recorder,
		region:     region,
		logger:     logger.With("component", "chat"),
	}
}

// Begin appends the user's problem to the log, marked pending, and
// returns it. The append is committed on its own, so a failure later in
// the turn never loses it.
func (s *Service) Begin(ctx context.Context, problem string) (Message, error) {
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return Message{}, ErrEmptyProblem
	}
	return s.Log.Append(ctx, Message{
		Role:    RoleUser,
		Text:    problem,
		Pending: true,
	}), nil
}

// Complete produces the reply to a message returned by Begin and appends
// it. A responder failure yields a placeholder reply and no
// classification. A successful reply is classified and counted in the
// statistics.
func (s *Service) Complete(ctx context.Context, user Message) Message {
	defer s.Log.Resolve(user.ID)

	problem := user.Text
	var regionCtx string
	if s.region != nil {
		regionCtx = s.region.Context()
	}

	reply, err := s.responder.Respond(ctx, problem, regionCtx)
	if err != nil {
		s.logger.Warn("responder failed", "message_id", user.ID, "error", err)
		return s.Log.Append(ctx, Message{
			Role: RoleModel,
			Text: PlaceholderError,
		})
	}

	text := strings.TrimSpace(reply.Text)
	if text == "" {
		text = PlaceholderEmpty
	}

	cat, sub := s.classifier.Classify(ctx, problem)
	s.recorder.Record(ctx, cat, sub)

	return s.Log.Append(ctx, Message{
		Role:            RoleModel,
		Text:            text,
		URLs:            reply.URLs,
		Category:        cat,
		SubCategory:     sub,
		OriginalProblem: problem,
	})
}

// Send runs a whole turn: Begin followed by Complete.
func (s *Service) Send(ctx context.Context, problem string) (user, reply Message, err error) {
	user, err = s.Begin(ctx, problem)
	if err != nil {
		return Message{}, Message{}, err
	}
	reply = s.Complete(ctx, user)
	user.Pending = false
	return user, reply, nil
}

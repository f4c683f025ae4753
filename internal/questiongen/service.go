package questiongen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/triviaz/internal/logging"
	"github.com/abhisek/triviaz/internal/quiz"
)

// DefaultTimeout bounds a single batch request including retries.
const DefaultTimeout = 90 * time.Second

// Service wraps a Source with a timeout, collapsing of identical
// in-flight requests, and logging. It is safe for concurrent use.
type Service struct {
	source  Source
	timeout time.Duration
	logger  logrus.FieldLogger
	group   singleflight.Group

	// applyMu makes the history filter and append in Apply one step.
	applyMu sync.Mutex
}

// NewService creates a Service. A zero timeout selects DefaultTimeout.
func NewService(source Source, timeout time.Duration, logger logrus.FieldLogger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Service{source: source, timeout: timeout, logger: logger}
}

// Generate runs the source. Concurrent calls with the same input share one
// outbound request.
func (s *Service) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	log := logging.FromContext(ctx, s.logger).WithFields(logrus.Fields{
		"topic":      input.Topic,
		"difficulty": input.Difficulty,
		"count":      input.Count,
		"history":    len(input.History),
	})

	ch := s.group.DoChan(requestKey(input), func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.source.Generate(callCtx, input)
	})

	start := time.Now()
	select {
	case <-ctx.Done():
		log.WithError(ctx.Err()).Warn("question generation abandoned")
		return nil, &GenerationError{Stage: StageTransport, Message: "Question generation was cancelled", Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			log.WithError(res.Err).Warn("question generation failed")
			return nil, asGenerationError(res.Err)
		}
		batch := res.Val.([]quiz.Question)
		log.WithFields(logrus.Fields{
			"generated":  len(batch),
			"shared":     res.Shared,
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("questions generated")

		out := make([]quiz.Question, len(batch))
		copy(out, batch)
		return out, nil
	}
}

// Apply generates a batch for topic using the session's questions as
// history and appends it to the session. Questions the session already
// holds are skipped, so concurrent Apply calls that share one batch add it
// once. On failure the session is untouched. It returns the number of
// questions added.
func (s *Service) Apply(ctx context.Context, sess *quiz.Session, topic string, difficulty quiz.Difficulty, count int) (int, error) {
	ctx = logging.WithRunID(ctx, sess.RunID())
	batch, err := s.Generate(ctx, GenerateInput{
		Topic:      topic,
		Difficulty: difficulty,
		Count:      count,
		History:    sess.Questions(),
	})
	if err != nil {
		return 0, err
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	fresh := unseen(batch, sess.Questions())
	if skipped := len(batch) - len(fresh); skipped > 0 {
		logging.FromContext(ctx, s.logger).WithField("skipped", skipped).Debug("dropped questions already in session")
	}
	sess.AppendQuestions(fresh...)
	return len(fresh), nil
}

func requestKey(input GenerateInput) string {
	return fmt.Sprintf("%s|%s|%d|%d",
		strings.ToLower(strings.TrimSpace(input.Topic)), input.Difficulty, input.Count, len(input.History))
}

func asGenerationError(err error) *GenerationError {
	var gerr *GenerationError
	if errors.As(err, &gerr) {
		return gerr
	}
	return &GenerationError{Stage: StageTransport, Message: "Failed to generate questions", Err: err}
}

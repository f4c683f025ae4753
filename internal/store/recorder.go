package store

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/triviaz/internal/quiz"
)

// QuizRecorder returns a session observer that appends every transition to
// repo. Write failures are logged and never reach the session.
func QuizRecorder(repo EventRepo, logger logrus.FieldLogger) quiz.Observer {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return func(ev quiz.Event) {
		err := repo.AppendQuizEvent(context.Background(), QuizEventData{
			RunID:         ev.RunID,
			Action:        string(ev.Action),
			QuestionIndex: ev.QuestionIndex,
			Correct:       ev.Correct,
			Seconds:       ev.Seconds,
			Score:         ev.Score,
			Timestamp:     ev.At,
		})
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"run_id": ev.RunID,
				"action": ev.Action,
			}).Error("failed to record quiz event")
		}
	}
}

// Package server exposes a quiz session over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/triviaz/internal/questiongen"
	"github.com/abhisek/triviaz/internal/quiz"
)

// Generator produces questions into a session.
type Generator interface {
	Apply(ctx context.Context, sess *quiz.Session, topic string, difficulty quiz.Difficulty, count int) (int, error)
}

// Server serves one session. Handlers may run concurrently; the session
// serializes transitions.
type Server struct {
	session   *quiz.Session
	generator Generator
	logger    logrus.FieldLogger

	mu       sync.RWMutex
	settings quiz.Settings
}

// New creates a Server. gen may be nil, in which case POST /questions
// answers 503.
func New(sess *quiz.Session, gen Generator, settings quiz.Settings, logger logrus.FieldLogger) *Server {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Server{session: sess, generator: gen, settings: settings, logger: logger}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/state", s.getState)
	r.Post("/questions", s.generate)
	r.Post("/question/start", s.startQuestion)
	r.Post("/answer", s.answer)
	r.Post("/advance", s.advance)
	r.Get("/results", s.results)
	r.Post("/restart", s.restart)
	r.Post("/new", s.newQuiz)

	r.Get("/leaderboard", s.getLeaderboard)
	r.Delete("/leaderboard", s.clearLeaderboard)

	r.Get("/settings", s.getSettings)
	r.Put("/settings", s.putSettings)

	return r
}

// Run serves on addr and polls the session timer until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ticker := quiz.NewTicker(s.session, quiz.DefaultTickInterval)
	ticker.OnExpire = func() {
		s.logger.WithField("run_id", s.session.RunID()).Info("question timed out")
	}
	go ticker.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) currentSettings() quiz.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func requestLogger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"request_id": middleware.GetReqID(r.Context()),
				"latency_ms": time.Since(start).Milliseconds(),
			}).Debug("http request")
		})
	}
}

var _ Generator = (*questiongen.Service)(nil)

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/abhisek/triviaz/internal/questiongen"
	"github.com/abhisek/triviaz/internal/quiz"
)

type generateRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty,omitempty"`
	Count      int    `json:"count,omitempty"`
}

type answerRequest struct {
	Option string `json:"option"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// present starts the current question, if any, and returns the view a
// client will show. A question counts as shown once its state is served,
// so its answer time and timer run from here.
func (s *Server) present() quiz.View {
	if err := s.session.StartQuestion(); err != nil && !errors.Is(err, quiz.ErrInvalidTransition) {
		s.logger.WithError(err).Warn("start question")
	}
	return s.session.Snapshot()
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.present())
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeError(w, http.StatusServiceUnavailable, "question generation is not configured")
		return
	}

	var req generateRequest
	if !decode(w, r, &req) {
		return
	}

	settings := s.currentSettings()
	difficulty := settings.Difficulty
	if req.Difficulty != "" {
		d, err := quiz.ParseDifficulty(req.Difficulty)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		difficulty = d
	}
	count := settings.QuestionCount
	if req.Count != 0 {
		count = req.Count
	}

	added, err := s.generator.Apply(r.Context(), s.session, req.Topic, difficulty, count)
	if err != nil {
		s.logger.WithError(err).WithField("topic", req.Topic).Warn("generate request failed")
		writeError(w, generationStatus(err), errorMessage(err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"added": added,
		"state": s.present(),
	})
}

func (s *Server) startQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.session.StartQuestion(); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Option) == "" {
		writeError(w, http.StatusBadRequest, "option is required")
		return
	}

	correct, err := s.session.SubmitAnswer(req.Option)
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"correct": correct,
		"state":   s.session.Snapshot(),
	})
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Advance(); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.present())
}

func (s *Server) results(w http.ResponseWriter, r *http.Request) {
	res, err := s.session.ComputeResults()
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	s.session.Restart()
	writeJSON(w, http.StatusOK, s.present())
}

func (s *Server) newQuiz(w http.ResponseWriter, r *http.Request) {
	s.session.NewQuiz()
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"scores": s.session.Leaderboard().Ranked(),
	})
}

func (s *Server) clearLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.session.Leaderboard().Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentSettings())
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	next := s.currentSettings()
	if !decode(w, r, &next) {
		return
	}
	d, err := quiz.ParseDifficulty(string(next.Difficulty))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	next.Difficulty = d
	if err := next.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.session.SetTimer(next.UseTimer, next.TimerDuration()); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, next)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeTransitionError(w http.ResponseWriter, err error) {
	if errors.Is(err, quiz.ErrInvalidTransition) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func generationStatus(err error) int {
	var gerr *questiongen.GenerationError
	if !errors.As(err, &gerr) {
		return http.StatusInternalServerError
	}
	switch {
	case gerr.Stage == questiongen.StageInput:
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// errorMessage prefers the user-facing message of a GenerationError.
func errorMessage(err error) string {
	var gerr *questiongen.GenerationError
	if errors.As(err, &gerr) && gerr.Stage == questiongen.StageInput {
		return gerr.Message
	}
	return err.Error()
}

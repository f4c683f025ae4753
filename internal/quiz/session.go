package quiz

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTransition is returned when an action is not allowed in the
// session's current state. The session is left unchanged.
var ErrInvalidTransition = errors.New("invalid state transition")

// State is the top-level session state.
type State int

const (
	StateEmpty State = iota
	StateActive
	StateResults
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateResults:
		return "results"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Phase is the sub-state of the current question while Active.
type Phase int

const (
	PhaseAwaitingAnswer Phase = iota
	PhaseChecked
)

func (p Phase) String() string {
	if p == PhaseChecked {
		return "checked"
	}
	return "awaiting_answer"
}

// Outcome is the tri-state result of the current question.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithTimer enables the per-question timer with the given budget.
func WithTimer(d time.Duration) Option {
	return func(s *Session) {
		s.useTimer = true
		s.timerDuration = d
	}
}

// WithObserver registers a transition observer.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// Session is the quiz state machine. All methods are safe for concurrent
// use; when two transitions race, the first wins and the other returns
// ErrInvalidTransition.
type Session struct {
	mu sync.Mutex

	now         func() time.Time
	observer    Observer
	leaderboard *Leaderboard

	runID            string
	questions        []Question
	currentIndex     int
	answersSubmitted int
	scores           []int
	answerTimes      []float64
	answerChecked    bool
	outcome          Outcome
	timedOut         bool
	startTime        time.Time

	useTimer      bool
	timerDuration time.Duration

	scoreSaved bool
	bestBefore float64
}

// NewSession creates an empty session recording into lb. A nil lb gets a
// private leaderboard.
func NewSession(lb *Leaderboard, opts ...Option) *Session {
	if lb == nil {
		lb = NewLeaderboard()
	}
	s := &Session{
		now:           time.Now,
		leaderboard:   lb,
		runID:         uuid.NewString(),
		timerDuration: time.Duration(DefaultTimerSeconds) * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunID identifies the current run. It changes on Restart and NewQuiz.
func (s *Session) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

func (s *Session) Leaderboard() *Leaderboard { return s.leaderboard }

// State returns the current top-level state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch {
	case len(s.questions) == 0:
		return StateEmpty
	case s.answersSubmitted >= len(s.questions):
		return StateResults
	default:
		return StateActive
	}
}

func (s *Session) awaitingLocked() bool {
	return s.stateLocked() == StateActive && !s.answerChecked
}

// SetTimer configures the per-question timer. The duration must be within
// MinTimerSeconds and MaxTimerSeconds.
func (s *Session) SetTimer(enabled bool, d time.Duration) error {
	if d < time.Duration(MinTimerSeconds)*time.Second || d > time.Duration(MaxTimerSeconds)*time.Second {
		return fmt.Errorf("timer duration %s out of range %d-%ds", d, MinTimerSeconds, MaxTimerSeconds)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.useTimer = enabled
	s.timerDuration = d
	return nil
}

// TimerEnabled reports the timer setting and budget.
func (s *Session) TimerEnabled() (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.useTimer, s.timerDuration
}

// AppendQuestions extends the queue. It is valid in any state and never
// moves the current question.
func (s *Session) AppendQuestions(batch ...Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, batch...)
}

// Questions returns a copy of every question in the queue.
func (s *Session) Questions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// StartQuestion marks the current question as displayed. The first call
// records the start time; later calls before Advance are no-ops.
func (s *Session) StartQuestion() error {
	var ev *Event
	defer func() { s.notify(ev) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateLocked() != StateActive {
		return fmt.Errorf("start question in state %s: %w", s.stateLocked(), ErrInvalidTransition)
	}
	if !s.startTime.IsZero() || s.answerChecked {
		return nil
	}
	s.startTime = s.now()
	if s.currentIndex == 0 && s.answersSubmitted == 0 {
		ev = s.eventLocked(ActionStart)
	}
	return nil
}

// SubmitAnswer checks selected against the current question and reports
// whether it was correct. The question must have been started.
func (s *Session) SubmitAnswer(selected string) (bool, error) {
	var ev *Event
	defer func() { s.notify(ev) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaitingLocked() {
		return false, fmt.Errorf("submit answer in state %s: %w", s.describeLocked(), ErrInvalidTransition)
	}

	if s.startTime.IsZero() {
		return false, fmt.Errorf("submit answer to question %d before it was started: %w", s.currentIndex+1, ErrInvalidTransition)
	}

	elapsed := s.now().Sub(s.startTime).Seconds()
	correct := s.questions[s.currentIndex].IsCorrect(selected)

	score := 0
	s.outcome = OutcomeIncorrect
	if correct {
		score = 1
		s.outcome = OutcomeCorrect
	}
	s.scores = append(s.scores, score)
	s.answerTimes = append(s.answerTimes, elapsed)
	s.answerChecked = true

	ev = s.eventLocked(ActionAnswer)
	ev.Correct = correct
	ev.Seconds = elapsed
	return correct, nil
}

// TimeExpire closes the current question as unanswered when its timer has
// run out. It returns false without error when time remains. Calling it
// with the timer off or outside AwaitingAnswer returns ErrInvalidTransition.
func (s *Session) TimeExpire() (bool, error) {
	var ev *Event
	defer func() { s.notify(ev) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.useTimer {
		return false, fmt.Errorf("time expire with timer disabled: %w", ErrInvalidTransition)
	}
	if !s.awaitingLocked() {
		return false, fmt.Errorf("time expire in state %s: %w", s.describeLocked(), ErrInvalidTransition)
	}
	if s.startTime.IsZero() || s.now().Sub(s.startTime) < s.timerDuration {
		return false, nil
	}

	seconds := s.timerDuration.Seconds()
	s.scores = append(s.scores, 0)
	s.answerTimes = append(s.answerTimes, seconds)
	s.answerChecked = true
	s.outcome = OutcomeIncorrect
	s.timedOut = true

	ev = s.eventLocked(ActionTimeout)
	ev.Seconds = seconds
	return true, nil
}

// Advance moves past a checked question. Advancing the last question
// enters Results and leaves the index on it.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateLocked() != StateActive || !s.answerChecked {
		return fmt.Errorf("advance in state %s: %w", s.describeLocked(), ErrInvalidTransition)
	}

	// A question already counted by an earlier Advance (the last question of
	// a finished run that was then extended) only moves the index.
	if s.currentIndex >= s.answersSubmitted {
		s.answersSubmitted++
	}
	s.startTime = time.Time{}

	if s.currentIndex < len(s.questions)-1 {
		s.currentIndex++
		s.answerChecked = false
		s.outcome = OutcomeUnknown
		s.timedOut = false
	}
	return nil
}

// ComputeResults summarizes a finished run. The first call records the
// weighted score in the leaderboard; later calls return the same summary.
func (s *Session) ComputeResults() (Results, error) {
	var ev *Event
	defer func() { s.notify(ev) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateLocked() != StateResults {
		return Results{}, fmt.Errorf("compute results in state %s: %w", s.stateLocked(), ErrInvalidTransition)
	}

	r := s.resultsLocked()
	if !s.scoreSaved {
		s.bestBefore = s.leaderboard.Best()
		s.leaderboard.Record(r.WeightedScore)
		s.scoreSaved = true

		ev = s.eventLocked(ActionResults)
		ev.Score = r.WeightedScore
		ev.Seconds = r.TotalSeconds
	}
	r.IsNewHighScore = r.WeightedScore > s.bestBefore
	return r, nil
}

func (s *Session) resultsLocked() Results {
	return Results{
		TotalSeconds:  sumSeconds(s.answerTimes),
		Correct:       countCorrect(s.scores),
		Total:         len(s.questions),
		WeightedScore: WeightedScore(s.scores, s.answerTimes, s.useTimer),
		Timed:         s.useTimer,
	}
}

// Restart replays the same questions from the beginning.
func (s *Session) Restart() {
	var ev *Event
	defer func() { s.notify(ev) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	ev = s.eventLocked(ActionRestart)
}

// NewQuiz discards all questions and returns to Empty.
func (s *Session) NewQuiz() {
	var ev *Event
	defer func() { s.notify(ev) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = nil
	s.resetLocked()
	ev = s.eventLocked(ActionNewQuiz)
}

func (s *Session) resetLocked() {
	s.runID = uuid.NewString()
	s.currentIndex = 0
	s.answersSubmitted = 0
	s.scores = nil
	s.answerTimes = nil
	s.answerChecked = false
	s.outcome = OutcomeUnknown
	s.timedOut = false
	s.startTime = time.Time{}
	s.scoreSaved = false
	s.bestBefore = 0
}

// RemainingSeconds returns whole seconds left on the current question's
// timer, or the full budget when the question has not started.
func (s *Session) RemainingSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingLocked()
}

func (s *Session) remainingLocked() int {
	budget := int(s.timerDuration / time.Second)
	if s.startTime.IsZero() {
		return budget
	}
	if s.answerChecked {
		return 0
	}
	remaining := budget - int(s.now().Sub(s.startTime).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *Session) describeLocked() string {
	st := s.stateLocked()
	if st != StateActive {
		return st.String()
	}
	if s.answerChecked {
		return PhaseChecked.String()
	}
	return PhaseAwaitingAnswer.String()
}

func (s *Session) eventLocked(a Action) *Event {
	return &Event{
		RunID:         s.runID,
		Action:        a,
		QuestionIndex: s.currentIndex,
		At:            s.now(),
	}
}

func (s *Session) notify(ev *Event) {
	if ev != nil && s.observer != nil {
		s.observer(*ev)
	}
}

package quiz

// View is a read-only snapshot of a session for presentation layers.
type View struct {
	RunID string `json:"runId"`
	State string `json:"state"`

	// Current question. Empty outside Active, except in Results where the
	// last question stays visible.
	Phase          string   `json:"phase,omitempty"`
	QuestionNumber int      `json:"questionNumber"`
	TotalQuestions int      `json:"totalQuestions"`
	Question       string   `json:"question,omitempty"`
	Options        []string `json:"options,omitempty"`

	// Populated once the current question is checked.
	Checked       bool   `json:"checked"`
	Correct       *bool  `json:"correct,omitempty"`
	TimedOut      bool   `json:"timedOut"`
	CorrectOption string `json:"correctOption,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
	IsLast        bool   `json:"isLast"`

	AnswersSubmitted int     `json:"answersSubmitted"`
	Progress         float64 `json:"progress"`

	TimerEnabled     bool `json:"timerEnabled"`
	TimerSeconds     int  `json:"timerSeconds"`
	RemainingSeconds int  `json:"remainingSeconds"`

	Results     *Results  `json:"results,omitempty"`
	Leaderboard []float64 `json:"leaderboard"`
}

// Snapshot captures the session for rendering. It never changes state; in
// Results before ComputeResults has run, the high score flag is evaluated
// against the current leaderboard.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked()
	v := View{
		RunID:            s.runID,
		State:            st.String(),
		TotalQuestions:   len(s.questions),
		AnswersSubmitted: s.answersSubmitted,
		TimerEnabled:     s.useTimer,
		TimerSeconds:     int(s.timerDuration.Seconds()),
		Leaderboard:      s.leaderboard.Ranked(),
	}
	if len(s.questions) > 0 {
		v.Progress = float64(s.answersSubmitted) / float64(len(s.questions))
	}
	if st == StateEmpty {
		return v
	}

	q := s.questions[s.currentIndex]
	v.QuestionNumber = s.currentIndex + 1
	v.Question = q.Text()
	v.Options = q.Options()
	v.IsLast = s.currentIndex == len(s.questions)-1
	v.Phase = s.describeLocked()
	if st == StateActive && s.useTimer {
		v.RemainingSeconds = s.remainingLocked()
	}

	if s.answerChecked {
		v.Checked = true
		correct := s.outcome == OutcomeCorrect
		v.Correct = &correct
		v.TimedOut = s.timedOut
		v.CorrectOption = q.CorrectOption()
		v.Explanation = q.Explanation()
	}

	if st == StateResults {
		r := s.resultsLocked()
		best := s.bestBefore
		if !s.scoreSaved {
			best = s.leaderboard.Best()
		}
		r.IsNewHighScore = r.WeightedScore > best
		v.Results = &r
	}
	return v
}

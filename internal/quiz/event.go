package quiz

import "time"

// Action names a session transition reported to observers.
type Action string

const (
	ActionStart   Action = "start"
	ActionAnswer  Action = "answer"
	ActionTimeout Action = "timeout"
	ActionResults Action = "results"
	ActionRestart Action = "restart"
	ActionNewQuiz Action = "new_quiz"
)

// Event describes one completed transition. Observers receive events after
// the session lock is released, in transition order.
type Event struct {
	RunID         string
	Action        Action
	QuestionIndex int
	Correct       bool
	Seconds       float64
	Score         float64
	At            time.Time
}

// Observer is notified of session transitions. It must not block for long;
// it runs on the goroutine that performed the transition.
type Observer func(Event)

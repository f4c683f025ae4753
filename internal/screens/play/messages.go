package play

import "time"

// generatedMsg reports the end of a generation request.
type generatedMsg struct {
	Added int
	Err   error
}

// timerTickMsg drives the question countdown. ID identifies the tick loop
// so that loops left over from an earlier question stop on their own.
type timerTickMsg struct {
	ID   int
	Time time.Time
}

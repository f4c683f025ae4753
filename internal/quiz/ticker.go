package quiz

import (
	"context"
	"time"
)

// DefaultTickInterval is how often a Ticker polls for timer expiry.
const DefaultTickInterval = time.Second

// Ticker polls a session and fires TimeExpire for hosts that have no render
// loop of their own. Expiry is detected within one interval.
type Ticker struct {
	session  *Session
	interval time.Duration

	// OnExpire, if set, is called after each successful expiry.
	OnExpire func()
}

func NewTicker(s *Session, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Ticker{session: s, interval: interval}
}

// Run polls until ctx is done.
func (t *Ticker) Run(ctx context.Context) {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			t.Poll()
		}
	}
}

// Poll checks once for expiry. Wrong-state results are expected while no
// question is pending and are ignored.
func (t *Ticker) Poll() bool {
	expired, err := t.session.TimeExpire()
	if err != nil || !expired {
		return false
	}
	if t.OnExpire != nil {
		t.OnExpire()
	}
	return true
}

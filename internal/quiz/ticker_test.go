package quiz

import (
	"context"
	"testing"
	"time"
)

func TestTicker_Poll(t *testing.T) {
	s, clk := newTestSession(t, 1, WithTimer(5*time.Second))
	fired := 0
	tk := NewTicker(s, 0)
	tk.OnExpire = func() { fired++ }

	if tk.Poll() {
		t.Error("Poll before start should not expire")
	}
	_ = s.StartQuestion()
	clk.Advance(4 * time.Second)
	if tk.Poll() {
		t.Error("Poll before budget should not expire")
	}
	clk.Advance(time.Second)
	if !tk.Poll() {
		t.Error("Poll at budget should expire")
	}
	if tk.Poll() {
		t.Error("second Poll should be a no-op")
	}
	if fired != 1 {
		t.Errorf("OnExpire fired %d times, want 1", fired)
	}
}

func TestTicker_RunStopsOnCancel(t *testing.T) {
	s, _ := newTestSession(t, 1, WithTimer(5*time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewTicker(s, time.Millisecond).Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

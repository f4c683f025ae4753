package quiz

import (
	"fmt"
	"sort"
	"sync"
)

// Leaderboard holds the final weighted scores of completed quizzes for the
// lifetime of the process. It is safe for concurrent use.
type Leaderboard struct {
	mu     sync.RWMutex
	scores []float64
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{}
}

// Record appends a final score.
func (l *Leaderboard) Record(score float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scores = append(l.scores, score)
}

// Best returns the highest recorded score, or 0 when empty.
func (l *Leaderboard) Best() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	best := 0.0
	for _, s := range l.scores {
		if s > best {
			best = s
		}
	}
	return best
}

// Ranked returns a copy of all scores sorted highest first.
func (l *Leaderboard) Ranked() []float64 {
	l.mu.RLock()
	out := make([]float64, len(l.scores))
	copy(out, l.scores)
	l.mu.RUnlock()

	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

func (l *Leaderboard) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.scores)
}

// Clear removes every recorded score.
func (l *Leaderboard) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scores = nil
}

// FormatRank renders one leaderboard line; rank starts at 1.
func FormatRank(rank int, score float64) string {
	return fmt.Sprintf("%d: %.2f pts", rank, score)
}

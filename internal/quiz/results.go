package quiz

import "fmt"

// MinAnswerSeconds is the floor applied to an answer time before it is used
// as a divisor in timed scoring.
const MinAnswerSeconds = 0.1

// Results summarizes a completed quiz run.
type Results struct {
	TotalSeconds   float64 `json:"totalSeconds"`
	Correct        int     `json:"correct"`
	Total          int     `json:"total"`
	WeightedScore  float64 `json:"weightedScore"`
	IsNewHighScore bool    `json:"isNewHighScore"`
	Timed          bool    `json:"timed"`
}

// WeightedScore computes the aggregate score. Untimed, every correct answer
// is worth 100 points. Timed, each correct answer is worth 100 divided by the
// seconds taken, so fast answers score higher.
func WeightedScore(scores []int, answerTimes []float64, timed bool) float64 {
	total := 0.0
	for i, s := range scores {
		divisor := 1.0
		if timed {
			divisor = answerTimes[i]
			if divisor < MinAnswerSeconds {
				divisor = MinAnswerSeconds
			}
		}
		total += float64(s) / divisor * 100
	}
	return total
}

func sumSeconds(times []float64) float64 {
	total := 0.0
	for _, t := range times {
		total += t
	}
	return total
}

func countCorrect(scores []int) int {
	n := 0
	for _, s := range scores {
		n += s
	}
	return n
}

// Summary renders the results as the lines every front end shows.
func (r Results) Summary() []string {
	return []string{
		fmt.Sprintf("You completed the quiz in %.2fs", r.TotalSeconds),
		fmt.Sprintf("Correct answers: %d out of %d", r.Correct, r.Total),
		fmt.Sprintf("Your score: %.2f pts", r.WeightedScore),
	}
}

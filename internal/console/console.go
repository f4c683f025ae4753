// Package console plays a quiz session over line-oriented input and
// output, for terminals and pipes where the full-screen UI is unwanted.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/triviaz/internal/quiz"
)

// ErrInputClosed is returned when input ends before the quiz does.
var ErrInputClosed = errors.New("input closed before the quiz finished")

// Player runs a session to completion on In and Out.
type Player struct {
	Session *quiz.Session
	In      io.Reader
	Out     io.Writer
	Logger  logrus.FieldLogger

	// TickInterval is how often the timer is polled. Zero means
	// quiz.DefaultTickInterval.
	TickInterval time.Duration
}

// Play asks every remaining question, then computes and prints the
// results.
func (p *Player) Play(ctx context.Context) (quiz.Results, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(ctx, p.In)

	expired := make(chan struct{}, 1)
	ticker := quiz.NewTicker(p.Session, p.TickInterval)
	ticker.OnExpire = func() {
		select {
		case expired <- struct{}{}:
		default:
		}
	}
	go ticker.Run(ctx)

	for p.Session.State() == quiz.StateActive {
		if err := p.Session.StartQuestion(); err != nil {
			return quiz.Results{}, err
		}
		drain(expired)
		p.printQuestion(p.Session.Snapshot())

		if err := p.awaitAnswer(ctx, lines, expired); err != nil {
			return quiz.Results{}, err
		}
		p.printFeedback(p.Session.Snapshot())

		if err := p.Session.Advance(); err != nil {
			return quiz.Results{}, err
		}
	}

	r, err := p.Session.ComputeResults()
	if err != nil {
		return r, err
	}
	p.printResults(r)
	return r, nil
}

// awaitAnswer blocks until the current question is answered or expires.
func (p *Player) awaitAnswer(ctx context.Context, lines <-chan string, expired <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-expired:
			if p.Session.Snapshot().Checked {
				return nil
			}

		case line, ok := <-lines:
			if !ok {
				return ErrInputClosed
			}
			v := p.Session.Snapshot()
			if v.Checked {
				// The timer won the race.
				return nil
			}
			option, ok := parseAnswer(line, v.Options)
			if !ok {
				fmt.Fprintf(p.Out, "Pick A-%c, 1-%d, or type the answer: ", 'A'+rune(len(v.Options)-1), len(v.Options))
				continue
			}
			_, err := p.Session.SubmitAnswer(option)
			if err != nil && !errors.Is(err, quiz.ErrInvalidTransition) {
				return err
			}
			return nil
		}
	}
}

func (p *Player) printQuestion(v quiz.View) {
	header := fmt.Sprintf("Question %d of %d", v.QuestionNumber, v.TotalQuestions)
	if v.TimerEnabled {
		header += fmt.Sprintf("  (%ds)", v.TimerSeconds)
	}
	fmt.Fprintf(p.Out, "\n%s\n%s\n", header, v.Question)
	for i, opt := range v.Options {
		fmt.Fprintf(p.Out, "  %c) %s\n", 'A'+rune(i), opt)
	}
	fmt.Fprint(p.Out, "Answer: ")
}

func (p *Player) printFeedback(v quiz.View) {
	switch {
	case v.TimedOut:
		fmt.Fprintln(p.Out, "\nTime's up!")
	case v.Correct != nil && *v.Correct:
		fmt.Fprintln(p.Out, "Correct!")
	default:
		fmt.Fprintln(p.Out, "Incorrect")
	}
	if v.Correct == nil || !*v.Correct {
		fmt.Fprintf(p.Out, "Correct answer: %s\n", v.CorrectOption)
	}
	if v.Explanation != "" {
		fmt.Fprintln(p.Out, v.Explanation)
	}
}

func (p *Player) printResults(r quiz.Results) {
	fmt.Fprintln(p.Out)
	if r.IsNewHighScore {
		fmt.Fprintln(p.Out, "New high score!")
	}
	for _, line := range r.Summary() {
		fmt.Fprintln(p.Out, line)
	}
	fmt.Fprintln(p.Out, "\nLeaderboard")
	for i, score := range p.Session.Leaderboard().Ranked() {
		fmt.Fprintln(p.Out, quiz.FormatRank(i+1, score))
	}
	if p.Logger != nil {
		p.Logger.WithFields(logrus.Fields{
			"run_id": p.Session.RunID(),
			"score":  r.WeightedScore,
		}).Info("quiz finished")
	}
}

// parseAnswer accepts a letter, a 1-based number, or the option text.
func parseAnswer(line string, options []string) (string, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return "", false
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && int(c-'A') < len(options) {
			return options[c-'A'], true
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	for _, opt := range options {
		if strings.EqualFold(opt, s) {
			return opt, true
		}
	}
	return "", false
}

// readLines feeds lines from r into a channel that closes at EOF.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func drain(ch <-chan struct{}) {
	select {
	case <-ch:
	default:
	}
}

package store

import (
	"context"
	"testing"

	"github.com/abhisek/triviaz/internal/quiz"
)

func TestQuizRecorder(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()

	sess := quiz.NewSession(nil, quiz.WithObserver(QuizRecorder(repo, nil)))
	sess.AppendQuestions(
		quiz.MustQuestion("Longest river?", []string{"Nile", "Amazon"}, "Nile", ""),
	)
	if err := sess.StartQuestion(); err != nil {
		t.Fatal(err)
	}
	if _, err := sess.SubmitAnswer("Nile"); err != nil {
		t.Fatal(err)
	}
	if err := sess.Advance(); err != nil {
		t.Fatal(err)
	}
	if _, err := sess.ComputeResults(); err != nil {
		t.Fatal(err)
	}

	got, err := repo.QueryQuizEvents(context.Background(), QueryOpts{RunID: sess.RunID()})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"start", "answer", "results"}
	if len(got) != len(want) {
		t.Fatalf("got %d events %+v, want %v", len(got), got, want)
	}
	for i, a := range want {
		if got[i].Action != a {
			t.Errorf("event %d action = %q, want %q", i, got[i].Action, a)
		}
	}
	if !got[1].Correct {
		t.Error("answer event should be marked correct")
	}
	if got[2].Score != 100 {
		t.Errorf("results score = %v, want 100", got[2].Score)
	}
}

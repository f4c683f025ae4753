package questiongen

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/quiz"
)

// blockingSource counts calls and blocks until released.
type blockingSource struct {
	calls   atomic.Int32
	release chan struct{}
	batch   []quiz.Question
	err     error
}

func (b *blockingSource) Generate(ctx context.Context, _ GenerateInput) ([]quiz.Question, error) {
	b.calls.Add(1)
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return b.batch, b.err
}

func TestService_CollapsesIdenticalRequests(t *testing.T) {
	src := &blockingSource{
		release: make(chan struct{}),
		batch:   []quiz.Question{quiz.MustQuestion("q?", []string{"a", "b"}, "a", "")},
	}
	svc := NewService(src, time.Second, nil)

	var wg sync.WaitGroup
	results := make([][]quiz.Question, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			qs, err := svc.Generate(context.Background(), testInput())
			assert.NoError(t, err)
			results[i] = qs
		}(i)
	}

	// Let all callers join the in-flight request before releasing it.
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, qs := range results {
		assert.Len(t, qs, 1)
	}
}

func TestService_Timeout(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	svc := NewService(src, 10*time.Millisecond, nil)

	_, err := svc.Generate(context.Background(), testInput())

	var gerr *GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestService_Apply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validBatchJSON()})
	svc := NewService(New(mock, DefaultConfig()), time.Second, nil)

	sess := quiz.NewSession(nil)
	n, err := svc.Apply(context.Background(), sess, "space", quiz.DifficultyHard, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, quiz.StateActive, sess.State())
	assert.Len(t, sess.Questions(), 2)
}

func TestService_ApplyFailureLeavesSession(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("not json")})
	svc := NewService(New(mock, DefaultConfig()), time.Second, nil)

	sess := quiz.NewSession(nil)
	sess.AppendQuestions(quiz.MustQuestion("Kept?", []string{"a", "b"}, "a", ""))

	n, err := svc.Apply(context.Background(), sess, "space", quiz.DifficultyHard, 2)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Len(t, sess.Questions(), 1)
}

func TestService_ConcurrentApplyAppendsOnce(t *testing.T) {
	src := &blockingSource{
		release: make(chan struct{}),
		batch: []quiz.Question{
			quiz.MustQuestion("Red planet?", []string{"Mars", "Venus"}, "Mars", ""),
			quiz.MustQuestion("Largest planet?", []string{"Jupiter", "Saturn"}, "Jupiter", ""),
		},
	}
	svc := NewService(src, time.Second, nil)
	sess := quiz.NewSession(nil)

	var wg sync.WaitGroup
	added := make([]int, 2)
	for i := range added {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := svc.Apply(context.Background(), sess, "planets", quiz.DifficultyEasy, 2)
			assert.NoError(t, err)
			added[i] = n
		}(i)
	}

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	assert.Len(t, sess.Questions(), 2)
	assert.ElementsMatch(t, []int{2, 0}, added)
}

func TestUnseen(t *testing.T) {
	history := []quiz.Question{quiz.MustQuestion("Red  planet?", []string{"Mars", "Venus"}, "Mars", "")}
	batch := []quiz.Question{
		quiz.MustQuestion("red planet?", []string{"Mars", "Venus"}, "Mars", ""),
		quiz.MustQuestion("Ringed planet?", []string{"Saturn", "Mars"}, "Saturn", ""),
		quiz.MustQuestion("Ringed planet?", []string{"Saturn", "Mars"}, "Saturn", ""),
	}

	got := unseen(batch, history)
	require.Len(t, got, 1)
	assert.Equal(t, "Ringed planet?", got[0].Text())
}

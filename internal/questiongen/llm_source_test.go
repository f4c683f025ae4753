package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/quiz"
)

func validBatchJSON() json.RawMessage {
	return json.RawMessage(`{"questions": [
		{
			"Question": "Which planet is known as the Red Planet?",
			"Options": ["Venus", "Mars", "Jupiter", "Mercury"],
			"CorrectAnswer": "Mars",
			"Explanation": "Iron oxide on its surface gives Mars a reddish look."
		},
		{
			"Question": "What is the largest moon of Saturn?",
			"Options": ["Titan", "Rhea", "Enceladus", "Iapetus"],
			"CorrectAnswer": "Titan",
			"Explanation": "Titan is larger than the planet Mercury."
		}
	]}`)
}

func testInput() GenerateInput {
	return GenerateInput{Topic: "space", Difficulty: quiz.DifficultyModerate, Count: 2}
}

func TestGenerate_ValidBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validBatchJSON()})
	gen := New(mock, DefaultConfig())

	qs, err := gen.Generate(context.Background(), testInput())
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "Which planet is known as the Red Planet?", qs[0].Text())
	assert.Equal(t, "Mars", qs[0].CorrectOption())
	assert.Equal(t, []string{"Titan", "Rhea", "Enceladus", "Iapetus"}, qs[1].Options())

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, BatchSchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "Create 2 questions about: space")
	assert.Contains(t, req.Messages[0].Content, "Difficulty: moderate")
}

func TestGenerate_CodeFencedBatch(t *testing.T) {
	raw := "```json\n" + `{"questions": [{"Question": "2+2?", "Options": ["3", "4", "5", "6"], "CorrectAnswer": "4", "Explanation": ""}]}` + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(raw)})
	gen := New(mock, DefaultConfig())

	qs, err := gen.Generate(context.Background(), GenerateInput{Topic: "math", Difficulty: quiz.DifficultyEasy, Count: 1})
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "4", qs[0].CorrectOption())
}

func TestGenerate_BareArrayRejected(t *testing.T) {
	raw := `[{"Question": "2+2?", "Options": ["3", "4", "5", "6"], "CorrectAnswer": "4", "Explanation": ""}]`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(raw)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Topic: "math", Difficulty: quiz.DifficultyEasy, Count: 1})

	var gerr *GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, StageParse, gerr.Stage)
}

func TestGenerate_SchemaRejectionIsParseError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrInvalidResponse{
		Content: json.RawMessage(`{"questions": [{"Question": "2+2?"}]}`),
		Err:     errors.New("missing properties: 'Options'"),
	}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testInput())

	var gerr *GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, StageParse, gerr.Stage)
	assert.Equal(t, "Failed to parse generated questions", gerr.Message)

	var inv *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &inv), "schema cause should be preserved")
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerate_TruncatesExtraQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validBatchJSON()})
	gen := New(mock, DefaultConfig())

	in := testInput()
	in.Count = 1
	qs, err := gen.Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, qs, 1)
}

func TestGenerate_MalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions": [ {"Question": `)})
	gen := New(mock, DefaultConfig())

	sess := quiz.NewSession(nil)
	sess.AppendQuestions(quiz.MustQuestion("Existing?", []string{"a", "b"}, "a", ""))

	qs, err := gen.Generate(context.Background(), testInput())
	assert.Nil(t, qs)

	var gerr *GenerationError
	require.True(t, errors.As(err, &gerr), "expected GenerationError, got %T", err)
	assert.Equal(t, StageParse, gerr.Stage)
	assert.NotEmpty(t, gerr.Error())

	// The caller applies nothing on failure.
	assert.Len(t, sess.Questions(), 1)
}

func TestGenerate_InvalidRecordFailsWholeBatch(t *testing.T) {
	raw := json.RawMessage(`{"questions": [
		{"Question": "Good?", "Options": ["a", "b", "c", "d"], "CorrectAnswer": "a", "Explanation": ""},
		{"Question": "Bad?", "Options": ["a", "b", "c", "d"], "CorrectAnswer": "z", "Explanation": ""}
	]}`)
	cfg := DefaultConfig()
	cfg.MaxAttempts = 1
	gen := New(llm.NewMockProvider(llm.MockResponse{Content: raw}), cfg)

	qs, err := gen.Generate(context.Background(), testInput())
	assert.Nil(t, qs)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "structural", verr.Validator)
	assert.Equal(t, 1, verr.Index)
}

func TestGenerate_RetriesRetryableValidation(t *testing.T) {
	dup := json.RawMessage(`{"questions": [
		{"Question": "Same?", "Options": ["a", "b", "c", "d"], "CorrectAnswer": "a", "Explanation": ""},
		{"Question": "same? ", "Options": ["a", "b", "c", "d"], "CorrectAnswer": "b", "Explanation": ""}
	]}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: dup},
		llm.MockResponse{Content: validBatchJSON()},
	)
	gen := New(mock, DefaultConfig())

	qs, err := gen.Generate(context.Background(), testInput())
	require.NoError(t, err)
	assert.Len(t, qs, 2)
	assert.Equal(t, 2, mock.CallCount())
}

func TestGenerate_TransportError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("slow down")}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testInput())

	var gerr *GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, StageTransport, gerr.Stage)

	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl), "transport cause should be preserved")
	assert.Equal(t, 1, mock.CallCount(), "transport errors are not retried here")
}

func TestGenerate_EmptyTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Topic: "  ", Difficulty: quiz.DifficultyEasy, Count: 5})
	require.Error(t, err)
	assert.Equal(t, EmptyTopicMessage, err.Error())
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerate_CountOutOfRange(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig())
	in := testInput()
	in.Count = quiz.MaxQuestionCount + 1

	_, err := gen.Generate(context.Background(), in)
	var gerr *GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, StageInput, gerr.Stage)
}

func TestBuildUserMessage_History(t *testing.T) {
	in := testInput()
	in.History = []quiz.Question{
		quiz.MustQuestion("Old one?", []string{"x", "y"}, "x", ""),
		quiz.MustQuestion("Old two?", []string{"x", "y"}, "y", ""),
	}
	cfg := DefaultConfig()
	cfg.MaxHistory = 1

	msg := buildUserMessage(in, cfg)
	assert.NotContains(t, msg, "Old one?")
	assert.Contains(t, msg, "Question: Old two? Answer: y")
}

func TestBuildUserMessage_NoHistory(t *testing.T) {
	msg := buildUserMessage(testInput(), DefaultConfig())
	assert.True(t, strings.HasSuffix(msg, "Already asked:\nNone"), "got %q", msg)
}

func TestLoadingMessage(t *testing.T) {
	msg := LoadingMessage()
	assert.Contains(t, loadingMessages, msg)
}

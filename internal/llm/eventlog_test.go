package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/abhisek/triviaz/internal/store"
)

func openEventStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEventLog_RecordsSuccess(t *testing.T) {
	s := openEventStore(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(triviaBatchJSON),
		Usage:   Usage{InputTokens: 120, OutputTokens: 300},
	})
	p := WithEventLog(mock, "mock", s.EventRepo(), nil)

	ctx := WithPurpose(context.Background(), "quiz-gen")
	_, err := p.Generate(ctx, Request{
		System:   "You write trivia questions.",
		Messages: []Message{{Role: RoleUser, Content: "Create 1 questions about: rivers"}},
		Schema:   testBatchSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Provider != "mock" || e.Model != "mock" || e.Purpose != "quiz-gen" {
		t.Errorf("event identity = %q/%q/%q", e.Provider, e.Model, e.Purpose)
	}
	if !e.Success || e.InputTokens != 120 || e.OutputTokens != 300 {
		t.Errorf("event = %+v", e)
	}
	if !strings.Contains(e.RequestBody, "[system]\nYou write trivia questions.") ||
		!strings.Contains(e.RequestBody, "[schema: test-batch]") {
		t.Errorf("request body = %q", e.RequestBody)
	}
	if e.ResponseBody != triviaBatchJSON {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestEventLog_RecordsFailureAndLogs(t *testing.T) {
	s := openEventStore(t)
	logger, hook := test.NewNullLogger()
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}})
	p := WithEventLog(mock, "openai", s.EventRepo(), logger)

	_, err := p.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected the provider error to pass through, got %v", err)
	}

	events, _ := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if len(events) != 1 || events[0].Success || !strings.Contains(events[0].ErrorMessage, "slow down") {
		t.Fatalf("events = %+v", events)
	}
	if events[0].Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", events[0].Purpose)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning log entry, got %+v", entry)
	}
	if entry.Data["provider"] != "openai" {
		t.Errorf("log provider field = %v", entry.Data["provider"])
	}
}

func TestEventLog_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithEventLog(mock, "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, Config{Provider: "mock"}, nil, nil)
	if err != nil || p.ModelID() != "mock" {
		t.Fatalf("mock provider = %v, %v", p, err)
	}

	cfg := DefaultConfig()
	cfg.Provider = "openrouter"
	cfg.OpenRouter.APIKey = "sk-or-test"
	p, err = NewProvider(ctx, cfg, nil, nil)
	if err != nil {
		t.Fatalf("openrouter: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Errorf("expected retry middleware on the outside, got %T", p)
	}
	if p.ModelID() != "openai/gpt-4o-mini" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	if _, err := NewProvider(ctx, Config{Provider: "openai"}, nil, nil); err == nil {
		t.Error("expected error for missing API key")
	}
	if _, err := NewProvider(ctx, Config{Provider: "carrier-pigeon"}, nil, nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_DefaultsToMemory(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	// Migration is idempotent.
	if err := migrate(context.Background(), s.DB()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestOpen_SharedMemoryAcrossOpens(t *testing.T) {
	dsn := "file:shared_across_opens?mode=memory&cache=shared"
	ctx := context.Background()

	a, err := Open(dsn)
	if err != nil {
		t.Fatalf("open a: %v", err)
	}
	if err := a.EventRepo().AppendQuizEvent(ctx, QuizEventData{RunID: "r1", Action: "start"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	b, err := Open(dsn)
	if err != nil {
		t.Fatalf("open b: %v", err)
	}
	got, err := b.EventRepo().QueryQuizEvents(ctx, QueryOpts{RunID: "r1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("second handle sees %d events, want 1", len(got))
	}

	// The database lives until the last connection closes.
	a.Close()
	b.Close()
	c, err := Open(dsn)
	if err != nil {
		t.Fatalf("open c: %v", err)
	}
	defer c.Close()
	got, err = c.EventRepo().QueryQuizEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("reopened database has %d events, want 0", len(got))
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"synchronous", "1"}, // NORMAL
		{"foreign_keys", "1"},
		{"busy_timeout", "5000"},
	}
	for _, tt := range tests {
		var got string
		if err := s.DB().QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Fatalf("PRAGMA %s: %v", tt.pragma, err)
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "[user]\nhi", ResponseBody: `{"questions":[]}`},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 120, OutputTokens: 0, LatencyMs: 300, Success: false, ErrorMessage: "rate limited"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "other", InputTokens: 50, OutputTokens: 60, LatencyMs: 100, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[0].Purpose != "other" {
		t.Errorf("first event purpose = %q, want newest first", got[0].Purpose)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen", Limit: 1})
	if err != nil {
		t.Fatalf("query filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ErrorMessage != "rate limited" {
		t.Errorf("filtered = %+v", filtered)
	}

	one, err := repo.GetLLMEvent(ctx, got[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.RequestBody != "[user]\nhi" || !one.Success {
		t.Errorf("get = %+v", one)
	}
	if time.Since(one.Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", one.Timestamp)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("get missing = %v, %v; want nil, nil", missing, err)
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "a", Purpose: "quiz-gen", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Model: "a", Purpose: "quiz-gen", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Model: "b", Purpose: "other", InputTokens: 1, OutputTokens: 2, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("byPurpose = %+v", byPurpose)
	}
	q := byPurpose[1]
	if q.Purpose != "quiz-gen" || q.Calls != 2 || q.InputTokens != 40 || q.OutputTokens != 60 || q.AvgLatencyMs != 200 {
		t.Errorf("quiz-gen usage = %+v", q)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byModel) != 2 || byModel[0].Model != "a" || byModel[1].Calls != 1 {
		t.Errorf("byModel = %+v", byModel)
	}
}

func TestQuizEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []QuizEventData{
		{RunID: "r1", Action: "start"},
		{RunID: "r1", Action: "answer", QuestionIndex: 0, Correct: true, Seconds: 2.5},
		{RunID: "r2", Action: "start"},
		{RunID: "r1", Action: "results", Score: 40},
	} {
		if err := repo.AppendQuizEvent(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.QueryQuizEvents(ctx, QueryOpts{RunID: "r1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[1].Action != "answer" || !got[1].Correct || got[1].Seconds != 2.5 {
		t.Errorf("answer event = %+v", got[1])
	}
	if got[2].Score != 40 {
		t.Errorf("results score = %v", got[2].Score)
	}

	after, err := repo.QueryQuizEvents(ctx, QueryOpts{After: int64(got[1].ID)})
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 2 {
		t.Errorf("after filter returned %d events, want 2", len(after))
	}
}

func TestOpen_FileCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.EventRepo().AppendQuizEvent(context.Background(), QuizEventData{RunID: "r", Action: "start"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRIVIAZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "triviaz", "triviaz.db"); got != want {
		t.Errorf("DefaultDBPath() = %q, want %q", got, want)
	}

	custom := filepath.Join(dir, "x", "custom.db")
	t.Setenv("TRIVIAZ_DB", custom)
	if got, _ := DefaultDBPath(); got != custom {
		t.Errorf("DefaultDBPath() with TRIVIAZ_DB = %q", got)
	}
}

func TestMigrate_FreshFileAcceptsBothTables(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	for _, table := range []string{tableLLMEvents, tableQuizEvents} {
		var n int
		err := s.DB().QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
		if err != nil || n != 1 {
			t.Fatalf("table %s: count=%d err=%v", table, n, err)
		}
	}

	ctx := context.Background()
	repo := s.EventRepo()
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "quiz-gen", Success: true}); err != nil {
		t.Fatalf("append llm event: %v", err)
	}
	if err := repo.AppendQuizEvent(ctx, QuizEventData{RunID: "r", Action: "answer", Correct: true, Seconds: 1.5, Score: 1}); err != nil {
		t.Fatalf("append quiz event: %v", err)
	}

	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil || len(llmEvents) != 1 || llmEvents[0].ID != 1 {
		t.Errorf("llm events = %+v, %v", llmEvents, err)
	}
	quizEvents, err := repo.QueryQuizEvents(ctx, QueryOpts{})
	if err != nil || len(quizEvents) != 1 || !quizEvents[0].Correct {
		t.Errorf("quiz events = %+v, %v", quizEvents, err)
	}

	// Reopening runs the migration against existing tables.
	if err := migrate(ctx, s.DB()); err != nil {
		t.Errorf("re-migrate: %v", err)
	}
}

func TestWithPragmas(t *testing.T) {
	all := "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	cases := map[string]string{
		"events.db": "events.db?" + all,
		MemoryDSN:   MemoryDSN + "&" + all,
		"x.db?_pragma=foreign_keys(0)": "x.db?_pragma=foreign_keys(0)&_pragma=busy_timeout(5000)" +
			"&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
	}
	for in, want := range cases {
		if got := withPragmas(in); got != want {
			t.Errorf("withPragmas(%q) = %q, want %q", in, got, want)
		}
	}
}

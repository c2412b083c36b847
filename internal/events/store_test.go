package events

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	events := []LLMRequest{
		{RequestID: "r1", Provider: "openai", Model: "gpt-4o-mini", Purpose: "generate", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "[user]\nGenerate", ResponseBody: "Question: ..."},
		{RequestID: "r2", Provider: "openai", Model: "gpt-4o-mini", Purpose: "explain", InputTokens: 50, OutputTokens: 200, LatencyMs: 300, Success: true},
		{RequestID: "r3", Provider: "openai", Model: "gpt-4o-mini", Purpose: "generate", LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := s.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := s.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].RequestID != "r3" {
		t.Errorf("expected newest first, got %q", all[0].RequestID)
	}
	if !all[0].Timestamp.Equal(fixed) {
		t.Errorf("timestamp = %v, want %v", all[0].Timestamp, fixed)
	}
	if all[0].Success {
		t.Error("expected r3 to be a failure")
	}

	gen, err := s.QueryLLMEvents(ctx, QueryOpts{Purpose: "generate", Limit: 1})
	if err != nil {
		t.Fatalf("query by purpose: %v", err)
	}
	if len(gen) != 1 || gen[0].RequestID != "r3" {
		t.Fatalf("unexpected filtered result: %+v", gen)
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.AppendLLMRequest(ctx, LLMRequest{Model: "sonar", Purpose: "translate", Success: true, ResponseBody: "Hola"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	e, err := s.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.ResponseBody != "Hola" {
		t.Fatalf("unexpected event: %+v", e)
	}

	missing, err := s.GetLLMEvent(ctx, 99)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing event, got %+v", missing)
	}
}

func TestUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, e := range []LLMRequest{
		{Model: "gpt-4o-mini", Purpose: "generate", InputTokens: 100, OutputTokens: 300, LatencyMs: 1000, Success: true},
		{Model: "gpt-4o-mini", Purpose: "generate", InputTokens: 200, OutputTokens: 100, LatencyMs: 2000, Success: true},
		{Model: "sonar", Purpose: "explain", InputTokens: 10, OutputTokens: 20, LatencyMs: 500, Success: true},
		{Model: "sonar", Purpose: "explain", LatencyMs: 500, Success: false},
	} {
		if err := s.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := s.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	// Ordered by purpose name.
	explain, generate := byPurpose[0], byPurpose[1]
	if explain.Purpose != "explain" || explain.Calls != 2 {
		t.Errorf("unexpected explain usage: %+v", explain)
	}
	if generate.InputTokens != 300 || generate.OutputTokens != 400 || generate.AvgLatencyMs != 1500 {
		t.Errorf("unexpected generate usage: %+v", generate)
	}

	byModel, err := s.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("expected 2 models, got %d", len(byModel))
	}
	if byModel[1].Model != "sonar" || byModel[1].Calls != 1 {
		t.Errorf("failed calls should not count toward model usage: %+v", byModel[1])
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if want := filepath.Join(dir, "mcqgen", "events.db"); p != want {
		t.Errorf("path = %q, want %q", p, want)
	}
}

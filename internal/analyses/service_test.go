package analyses

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cvscore-api/internal/cvscore"
	"cvscore-api/internal/shared/metrics"
	"cvscore-api/internal/shared/telemetry"
)

type failingRepo struct{ Repo }

func (*failingRepo) Create(context.Context, Record) error { return errors.New("disk full") }

func TestServiceCachesByDigest(t *testing.T) {
	svc := NewService(cvscore.Default(), NewMemoryRepo(), time.Minute)
	ctx := context.Background()

	first, err := svc.Analyze(ctx, Input{Text: sampleCV, Source: SourceText})
	if err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	if first.Cached {
		t.Fatal("first call must not be cached")
	}

	hits := metrics.CacheHits()
	second, err := svc.Analyze(ctx, Input{Text: sampleCV, Source: SourceText})
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}
	if !second.Cached {
		t.Fatal("expected identical text to hit the cache")
	}
	if metrics.CacheHits() != hits+1 {
		t.Fatalf("expected cache hit counter to increase")
	}
	if second.Result.OverallScore != first.Result.OverallScore {
		t.Fatalf("cached result differs")
	}
	if first.RecordID == "" || second.RecordID == "" || first.RecordID == second.RecordID {
		t.Fatalf("each call should be recorded separately: %q %q", first.RecordID, second.RecordID)
	}

	second.Result.Strengths[0] = "mutated"
	third, _ := svc.Analyze(ctx, Input{Text: sampleCV})
	if third.Result.Strengths[0] == "mutated" {
		t.Fatal("cache entry was mutated through a returned result")
	}
}

func TestServiceCacheDistinguishesLeadingWhitespace(t *testing.T) {
	svc := NewService(cvscore.Default(), nil, time.Minute)
	ctx := context.Background()
	padded := "\v- Led the team\n- Managed budgets"
	plain := "- Led the team\n- Managed budgets"

	if _, err := svc.Analyze(ctx, Input{Text: padded}); err != nil {
		t.Fatalf("analyze padded: %v", err)
	}
	out, err := svc.Analyze(ctx, Input{Text: plain})
	if err != nil {
		t.Fatalf("analyze plain: %v", err)
	}
	if out.Cached {
		t.Fatal("texts differing in leading whitespace must not share a cache entry")
	}
	want, err := cvscore.Default().Analyze(plain)
	if err != nil {
		t.Fatalf("engine analyze: %v", err)
	}
	if out.Result.FormatScore != want.FormatScore || out.Result.OverallScore != want.OverallScore {
		t.Fatalf("service result %+v differs from engine result %+v", out.Result, want)
	}
}

func TestServiceWithoutCacheOrRepo(t *testing.T) {
	svc := NewService(cvscore.Default(), nil, 0)
	out, err := svc.Analyze(context.Background(), Input{Text: sampleCV})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out.Cached || out.RecordID != "" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if _, err := svc.Get(context.Background(), "7b0c1f5e-1f0a-4a8e-9d55-0a0b8f6b9d11"); !errors.Is(err, ErrRecordingDisabled) {
		t.Fatalf("expected ErrRecordingDisabled, got %v", err)
	}
	if _, err := svc.List(context.Background(), 10, 0); !errors.Is(err, ErrRecordingDisabled) {
		t.Fatalf("expected ErrRecordingDisabled from List, got %v", err)
	}
}

func TestServiceRecordFailureDoesNotFailAnalysis(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	defer telemetry.SetLogger(zap.New(core))()

	svc := NewService(cvscore.Default(), &failingRepo{Repo: NewMemoryRepo()}, 0)
	out, err := svc.Analyze(context.Background(), Input{Text: sampleCV, JobDescription: "Analyst role", Source: SourceText})
	if err != nil {
		t.Fatalf("analyze should succeed: %v", err)
	}
	if out.RecordID != "" {
		t.Fatalf("expected no record id, got %q", out.RecordID)
	}
	if observed.FilterMessage("analysis.record_failed").Len() != 1 {
		t.Fatal("expected record failure to be logged")
	}
	complete := observed.FilterMessage("analysis.complete").All()
	if len(complete) != 1 {
		t.Fatalf("expected one completion log, got %d", len(complete))
	}
	fields := complete[0].ContextMap()
	if fields["job_description_len"] != int64(len("Analyst role")) {
		t.Fatalf("unexpected job_description_len %v", fields["job_description_len"])
	}
	for _, v := range fields {
		if s, ok := v.(string); ok && s == "Analyst role" {
			t.Fatal("job description text must not be logged")
		}
	}
}

func TestServiceValidation(t *testing.T) {
	svc := NewService(cvscore.Default(), NewMemoryRepo(), time.Minute)
	_, err := svc.Analyze(context.Background(), Input{Text: " \n "})
	if !errors.Is(err, cvscore.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Analyze(ctx, Input{Text: sampleCV}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestServiceListClampsLimit(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		_ = repo.Create(context.Background(), Record{ID: fmt.Sprintf("rec-%03d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	svc := NewService(cvscore.Default(), repo, 0)

	items, err := svc.List(context.Background(), 500, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != maxListLimit {
		t.Fatalf("expected %d items, got %d", maxListLimit, len(items))
	}
	if !items[0].CreatedAt.Equal(base.Add(119 * time.Minute)) {
		t.Fatalf("expected newest first, got %s", items[0].CreatedAt)
	}

	items, _ = svc.List(context.Background(), 0, 115)
	if len(items) != 5 {
		t.Fatalf("expected 5 items past offset 115, got %d", len(items))
	}
}

package analyses

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"cvscore-api/internal/cvscore"
	"cvscore-api/internal/shared/metrics"
	"cvscore-api/internal/shared/telemetry"
	"cvscore-api/internal/shared/util"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Service scores CV text with the engine, caches results and keeps an optional history.
type Service struct {
	Engine *cvscore.Engine
	// Repo stores analysis records. Nil disables history.
	Repo  Repo
	Cache *cache.Cache
	Now   func() time.Time
}

// NewService builds a Service. A zero cacheTTL disables the result cache.
func NewService(engine *cvscore.Engine, repo Repo, cacheTTL time.Duration) *Service {
	svc := &Service{Engine: engine, Repo: repo, Now: time.Now}
	if cacheTTL > 0 {
		svc.Cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return svc
}

// Input is one analysis request.
type Input struct {
	Text string
	// JobDescription is accepted for API compatibility and only logged by length.
	JobDescription string
	Source         Source
}

// Outcome is the result of Analyze. RecordID is empty when nothing was stored.
type Outcome struct {
	Result   cvscore.AnalysisResult
	RecordID string
	Cached   bool
}

// Analyze scores in.Text. Blank text fails with a *cvscore.ValidationError.
// A failure to store the record is logged and does not fail the call.
func (s *Service) Analyze(ctx context.Context, in Input) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	start := s.now()
	digest := util.TextDigest(in.Text)
	catalogVersion := s.Engine.Version()
	// Keyed on the exact input: trimming can change what the engine scores.
	key := catalogVersion + ":" + util.ContentDigest(in.Text)

	var (
		result cvscore.AnalysisResult
		cached bool
	)
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			result = cloneResult(v.(cvscore.AnalysisResult))
			cached = true
			metrics.IncCacheHit()
		}
	}
	if !cached {
		var err error
		result, err = s.Engine.Analyze(in.Text)
		if err != nil {
			if cvscore.IsValidation(err) {
				metrics.IncValidationFailed()
			} else {
				metrics.IncAnalysisFailed()
			}
			return Outcome{}, err
		}
		if s.Cache != nil {
			s.Cache.SetDefault(key, cloneResult(result))
		}
	}

	out := Outcome{Result: result, Cached: cached}
	wordCount := len(strings.Fields(in.Text))
	if s.Repo != nil {
		record := Record{
			ID:             uuid.NewString(),
			TextDigest:     digest,
			WordCount:      wordCount,
			CatalogVersion: catalogVersion,
			Source:         in.Source,
			OverallScore:   result.OverallScore,
			Rating:         result.Rating,
			FormatScore:    result.FormatScore,
			SkillScore:     result.SkillScore,
			RegionalScore:  result.RegionalScore,
			Result:         result,
			CreatedAt:      s.now().UTC(),
		}
		if err := s.Repo.Create(ctx, record); err != nil {
			metrics.IncRecordFailed()
			telemetry.Error("analysis.record_failed", map[string]any{
				"digest": digest[:12],
				"err":    err,
			})
		} else {
			out.RecordID = record.ID
		}
	}

	durationMs := float64(s.now().Sub(start).Microseconds()) / 1000.0
	metrics.IncAnalysis()
	metrics.ObserveAnalysisDurationMs(durationMs)
	metrics.ObserveOverallScore(result.OverallScore)
	telemetry.Info("analysis.complete", map[string]any{
		"analysis_id":         out.RecordID,
		"digest":              digest[:12],
		"source":              string(in.Source),
		"word_count":          wordCount,
		"job_description_len": len(in.JobDescription),
		"overall_score":       result.OverallScore,
		"rating":              result.Rating,
		"cached":              cached,
		"duration_ms":         durationMs,
	})
	return out, nil
}

// Get returns a stored record.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	if s.Repo == nil {
		return Record{}, ErrRecordingDisabled
	}
	if _, err := uuid.Parse(id); err != nil {
		return Record{}, ErrNotFound
	}
	record, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return record, nil
}

// List returns record summaries newest first. limit is clamped to [1, 100].
// It fails with ErrRecordingDisabled when there is no repository.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	if s.Repo == nil {
		return nil, ErrRecordingDisabled
	}
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}
	records, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	out := make([]Summary, 0, len(records))
	for _, r := range records {
		out = append(out, r.Summary())
	}
	return out, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}

// cloneResult copies the slices so cached entries cannot be mutated by callers.
func cloneResult(r cvscore.AnalysisResult) cvscore.AnalysisResult {
	r.Strengths = slices.Clone(r.Strengths)
	r.Improvements = slices.Clone(r.Improvements)
	r.FormatFeedback = slices.Clone(r.FormatFeedback)
	r.SectionsDetected = slices.Clone(r.SectionsDetected)
	r.SkillsIdentified = slices.Clone(r.SkillsIdentified)
	r.RegionalMarkersDetected = slices.Clone(r.RegionalMarkersDetected)
	return r
}

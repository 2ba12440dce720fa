package cvscore

import (
	"fmt"
	"math"
)

// AnalysisResult is the complete assessment of one CV. It is built fresh per call.
type AnalysisResult struct {
	OverallScore            int       `json:"overall_score"`
	Rating                  string    `json:"rating"`
	FormatScore             int       `json:"format_score"`
	SkillScore              int       `json:"skill_score"`
	RegionalScore           int       `json:"regional_score"`
	RegionalRelevance       string    `json:"regional_relevance"`
	Strengths               []string  `json:"strengths"`
	Improvements            []string  `json:"improvements"`
	FormatFeedback          []string  `json:"format_feedback"`
	SectionsDetected        []Section `json:"sections_detected"`
	SkillsIdentified        []string  `json:"skills_identified"`
	RegionalMarkersDetected []Marker  `json:"regional_markers_detected"`
}

// Validate checks the result's internal consistency: bounds, weights, bands and feedback sizes.
func (r AnalysisResult) Validate() error {
	scores := map[string]int{
		"overall_score":  r.OverallScore,
		"format_score":   r.FormatScore,
		"skill_score":    r.SkillScore,
		"regional_score": r.RegionalScore,
	}
	for name, v := range scores {
		if v < 0 || v > maxScore {
			return fmt.Errorf("%s must be between 0 and 100, got %d", name, v)
		}
	}
	want := int(math.Round(FormatWeight*float64(r.FormatScore) + SkillWeight*float64(r.SkillScore) + RegionalWeight*float64(r.RegionalScore)))
	if r.OverallScore != want {
		return fmt.Errorf("overall_score %d does not match weighted sub-scores (%d)", r.OverallScore, want)
	}
	if r.SkillScore != SkillScore(len(r.SkillsIdentified)) {
		return fmt.Errorf("skill_score %d does not match %d identified skills", r.SkillScore, len(r.SkillsIdentified))
	}
	if got := Rating(r.OverallScore); r.Rating != got {
		return fmt.Errorf("rating %q does not match band %q", r.Rating, got)
	}
	if got := RegionalRelevance(r.RegionalScore); r.RegionalRelevance != got {
		return fmt.Errorf("regional_relevance %q does not match band %q", r.RegionalRelevance, got)
	}
	if n := len(r.Strengths); n < 1 || n > maxFeedbackItems {
		return fmt.Errorf("strengths must have 1-%d items, got %d", maxFeedbackItems, n)
	}
	if n := len(r.Improvements); n < 1 || n > maxFeedbackItems {
		return fmt.Errorf("improvements must have 1-%d items, got %d", maxFeedbackItems, n)
	}
	return nil
}

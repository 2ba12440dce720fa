package analyses

import (
	"time"

	"cvscore-api/internal/cvscore"
)

// Source names the route an analysis came in through.
type Source string

const (
	SourceText   Source = "text"
	SourceUpload Source = "upload"
	SourceATS    Source = "ats"
)

// Record is one stored analysis. The CV text itself is never kept, only its digest.
type Record struct {
	ID             string                 `json:"id"`
	TextDigest     string                 `json:"textDigest"`
	WordCount      int                    `json:"wordCount"`
	CatalogVersion string                 `json:"catalogVersion"`
	Source         Source                 `json:"source"`
	OverallScore   int                    `json:"overallScore"`
	Rating         string                 `json:"rating"`
	FormatScore    int                    `json:"formatScore"`
	SkillScore     int                    `json:"skillScore"`
	RegionalScore  int                    `json:"regionalScore"`
	Result         cvscore.AnalysisResult `json:"result"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// Summary is the list view of a Record.
type Summary struct {
	ID           string    `json:"id"`
	TextDigest   string    `json:"textDigest"`
	WordCount    int       `json:"wordCount"`
	Source       Source    `json:"source"`
	OverallScore int       `json:"overallScore"`
	Rating       string    `json:"rating"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summary returns the list view of r.
func (r Record) Summary() Summary {
	return Summary{
		ID:           r.ID,
		TextDigest:   r.TextDigest,
		WordCount:    r.WordCount,
		Source:       r.Source,
		OverallScore: r.OverallScore,
		Rating:       r.Rating,
		CreatedAt:    r.CreatedAt,
	}
}

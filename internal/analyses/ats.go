package analyses

import "cvscore-api/internal/cvscore"

// ATSScore is the payload of the ATS scoring route. It is a reshaped view of
// cvscore.AnalysisResult for clients that expect camelCase and a breakdown object.
type ATSScore struct {
	Score             int          `json:"score"`
	Rating            string       `json:"rating"`
	Breakdown         ATSBreakdown `json:"breakdown"`
	RegionalRelevance string       `json:"regionalRelevance"`
	Strengths         []string     `json:"strengths"`
	Improvements      []string     `json:"improvements"`
}

// ATSBreakdown carries the three sub-scores.
type ATSBreakdown struct {
	Format   int `json:"format"`
	Skills   int `json:"skills"`
	Regional int `json:"regional"`
}

// ToATS maps a canonical result onto the ATS payload.
func ToATS(r cvscore.AnalysisResult) ATSScore {
	return ATSScore{
		Score:  r.OverallScore,
		Rating: r.Rating,
		Breakdown: ATSBreakdown{
			Format:   r.FormatScore,
			Skills:   r.SkillScore,
			Regional: r.RegionalScore,
		},
		RegionalRelevance: r.RegionalRelevance,
		Strengths:         r.Strengths,
		Improvements:      r.Improvements,
	}
}

package cvscore

import "math"

// Weights of the overall score. They must sum to 1.
const (
	FormatWeight   = 0.4
	SkillWeight    = 0.4
	RegionalWeight = 0.2
)

// skillSaturation is the skill count at which the skill score reaches 100.
const skillSaturation = 10

// Band maps every score at or above Min (and below the previous band) to Label.
type Band struct {
	Min   int
	Label string
}

// RatingBands are ordered high to low and end at 0, so every score in [0,100] has a label.
var RatingBands = []Band{
	{90, "Excellent"},
	{80, "Very Good"},
	{70, "Good"},
	{60, "Above Average"},
	{50, "Average"},
	{40, "Below Average"},
	{0, "Poor"},
}

// RegionalBands label the regional score, ordered high to low and ending at 0.
var RegionalBands = []Band{
	{80, "Excellent"},
	{60, "High"},
	{40, "Medium"},
	{0, "Low"},
}

// SkillScore is a capped linear scale over the number of detected skills.
func SkillScore(count int) int {
	if count <= 0 {
		return 0
	}
	return clampScore(int(math.Round(float64(count) / skillSaturation * 100)))
}

// OverallScore combines the sub-scores under the fixed weights.
func OverallScore(format, skill, regional int) int {
	weighted := FormatWeight*float64(clampScore(format)) +
		SkillWeight*float64(clampScore(skill)) +
		RegionalWeight*float64(clampScore(regional))
	return clampScore(int(math.Round(weighted)))
}

// Rating returns the qualitative label for an overall score.
func Rating(score int) string {
	return bandFor(RatingBands, score)
}

// RegionalRelevance returns the qualitative label for a regional score.
func RegionalRelevance(score int) string {
	return bandFor(RegionalBands, score)
}

func bandFor(bands []Band, score int) string {
	score = clampScore(score)
	for _, b := range bands {
		if score >= b.Min {
			return b.Label
		}
	}
	return bands[len(bands)-1].Label
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxScore {
		return maxScore
	}
	return v
}

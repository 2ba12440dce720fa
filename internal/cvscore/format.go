package cvscore

import (
	"fmt"
	"regexp"
	"strings"
)

// Document is the pre-split view of one CV that format rules score.
type Document struct {
	Text      string
	Lines     []string
	WordCount int
	Sections  []Section
}

func newDocument(text string, sections []Section) Document {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return Document{
		Text:      text,
		Lines:     lines,
		WordCount: len(strings.Fields(text)),
		Sections:  sections,
	}
}

// FormatRule is one independent contribution to the format score.
// Advice returns "" when the rule does not call for a correction.
type FormatRule struct {
	Name   string
	Max    int
	Score  func(Document) int
	Advice func(Document) string
}

const (
	ruleLength       = "length"
	ruleSections     = "sections"
	ruleBullets      = "bullets"
	ruleContact      = "contact"
	ruleDates        = "dates"
	ruleAchievements = "achievements"
	ruleActionVerbs  = "action_verbs"
)

type tier struct {
	min    int
	points int
}

// tiered returns the points of the first tier whose minimum n reaches. Tiers are ordered high to low.
func tiered(n int, tiers []tier) int {
	for _, t := range tiers {
		if n >= t.min {
			return t.points
		}
	}
	return 0
}

// weak reports whether points sit in the lowest non-zero tier or below.
func weak(points int, tiers []tier) bool {
	return points <= tiers[len(tiers)-1].points
}

var (
	bulletTiers      = []tier{{10, 15}, {5, 10}, {1, 5}}
	dateTiers        = []tier{{3, 15}, {1, 10}}
	achievementTiers = []tier{{5, 15}, {3, 10}, {1, 5}}
	actionVerbTiers  = []tier{{8, 15}, {5, 10}, {2, 5}}
)

const (
	lengthIdealPoints    = 20
	lengthAcceptedPoints = 10
	pointsPerSection     = 4
	sectionPointsCap     = 20
	contactPoints        = 10
	maxScore             = 100
)

type formatEvaluation struct {
	Score    int
	Points   map[string]int
	Feedback []string
}

func (e *Engine) buildFormatRules() []FormatRule {
	c := e.catalog
	lineCountRule := func(name string, re *regexp.Regexp, tiers []tier, advice string) FormatRule {
		return FormatRule{
			Name: name,
			Max:  tiers[0].points,
			Score: func(d Document) int {
				return tiered(countLines(re, d.Lines), tiers)
			},
			Advice: func(d Document) string {
				if weak(tiered(countLines(re, d.Lines), tiers), tiers) {
					return advice
				}
				return ""
			},
		}
	}

	return []FormatRule{
		{
			Name: ruleLength,
			Max:  lengthIdealPoints,
			Score: func(d Document) int {
				return lengthPoints(d.WordCount, c.PreferredWordRange, c.AcceptedWordRange)
			},
			Advice: func(d Document) string {
				lo, hi := c.PreferredWordRange[0], c.PreferredWordRange[1]
				switch {
				case d.WordCount < lo:
					return fmt.Sprintf("Your CV is short (%d words); aim for %d-%d words with more detail on your experience", d.WordCount, lo, hi)
				case d.WordCount > hi:
					return fmt.Sprintf("Your CV is long (%d words); tighten it to %d-%d words", d.WordCount, lo, hi)
				}
				return ""
			},
		},
		{
			Name: ruleSections,
			Max:  sectionPointsCap,
			Score: func(d Document) int {
				return min(len(d.Sections)*pointsPerSection, sectionPointsCap)
			},
			Advice: func(d Document) string {
				missing := missingSections(c.CoreSections, d.Sections)
				if len(missing) == 0 {
					return ""
				}
				return "Add clear section headers for: " + joinSections(missing)
			},
		},
		lineCountRule(ruleBullets, e.bullets, bulletTiers,
			"Use bullet points to list responsibilities and achievements"),
		{
			Name: ruleContact,
			Max:  contactPoints,
			Score: func(d Document) int {
				if e.contact.MatchString(d.Text) {
					return contactPoints
				}
				return 0
			},
			Advice: func(d Document) string {
				if e.contact.MatchString(d.Text) {
					return ""
				}
				return "Add contact details such as an email address, phone number or LinkedIn profile"
			},
		},
		lineCountRule(ruleDates, e.dates, dateTiers,
			"Include start and end dates (month and year) for every role and qualification"),
		lineCountRule(ruleAchievements, e.achievements, achievementTiers,
			"Quantify achievements with results, e.g. \"increased sales by 20%\""),
		lineCountRule(ruleActionVerbs, e.actionVerbs, actionVerbTiers,
			"Start bullet points with strong action verbs such as led, developed or managed"),
	}
}

func lengthPoints(words int, preferred, accepted [2]int) int {
	switch {
	case words >= preferred[0] && words <= preferred[1]:
		return lengthIdealPoints
	case words > accepted[0] && words < accepted[1]:
		return lengthAcceptedPoints
	default:
		return 0
	}
}

// evaluateFormat sums every rule and collects advice from the same rules.
func (e *Engine) evaluateFormat(d Document) formatEvaluation {
	out := formatEvaluation{
		Points:   make(map[string]int, len(e.formatRules)),
		Feedback: []string{},
	}
	total := 0
	for _, rule := range e.formatRules {
		points := rule.Score(d)
		out.Points[rule.Name] = points
		total += points
		if advice := rule.Advice(d); advice != "" {
			out.Feedback = append(out.Feedback, advice)
		}
	}
	out.Score = clampScore(total)
	return out
}

func joinSections(sections []Section) string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

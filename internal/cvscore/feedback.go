package cvscore

import (
	"fmt"
	"slices"
	"strings"
)

const (
	maxFeedbackItems = 5
	minFeedbackItems = 3
)

var (
	fallbackStrengths = []string{
		"Your CV text was readable and could be analysed end to end",
		"The content gives you a solid base to build on",
	}
	fallbackImprovements = []string{
		"Tailor your CV to each job description you apply for",
		"Ask a mentor or recruiter to review your CV before sending it",
	}
)

// signals is everything the detectors produced for one CV.
type signals struct {
	format   formatEvaluation
	sections []Section
	skills   []string
	regional regionalEvaluation
}

type feedbackRule func(signals) string

func (e *Engine) strengthRules() []feedbackRule {
	market := e.catalog.Market
	return []feedbackRule{
		// format
		func(s signals) string {
			if s.format.Score >= 80 {
				return "Well-structured CV that applicant tracking systems can read easily"
			}
			return ""
		},
		func(s signals) string {
			if len(s.sections) >= 5 {
				return fmt.Sprintf("Comprehensive layout with %d recognised sections", len(s.sections))
			}
			return ""
		},
		func(s signals) string {
			if s.format.Points[ruleAchievements] >= 10 {
				return "Achievements are backed by measurable results"
			}
			return ""
		},
		func(s signals) string {
			if s.format.Points[ruleActionVerbs] >= 10 {
				return "Experience is described with strong action verbs"
			}
			return ""
		},
		func(s signals) string {
			if s.format.Points[ruleDates] >= 15 {
				return "Clear timeline with dated roles and qualifications"
			}
			return ""
		},
		// skills
		func(s signals) string {
			switch n := len(s.skills); {
			case n >= 8:
				return fmt.Sprintf("Broad skill set with %d relevant skills identified", n)
			case n >= 5:
				return fmt.Sprintf("Good range of relevant skills (%d identified)", n)
			}
			return ""
		},
		// regional
		func(s signals) string {
			if s.regional.Score >= 60 {
				return fmt.Sprintf("Strong relevance to the %s job market", market)
			}
			return ""
		},
		func(s signals) string {
			if slices.Contains(s.regional.Markers, MarkerComplianceStatus) {
				return fmt.Sprintf("States %s, which %s employers look for", e.regional.label(MarkerComplianceStatus), market)
			}
			return ""
		},
		func(s signals) string {
			if slices.Contains(s.regional.Markers, MarkerQualificationLevel) {
				return fmt.Sprintf("Qualifications reference the %s", e.regional.label(MarkerQualificationLevel))
			}
			return ""
		},
		func(s signals) string {
			if slices.Contains(s.regional.Markers, MarkerInstitution) || slices.Contains(s.regional.Markers, MarkerEmployer) {
				return "Recognised local institutions or employers add credibility"
			}
			return ""
		},
	}
}

func (e *Engine) improvementRules() []feedbackRule {
	market := e.catalog.Market
	return []feedbackRule{
		// format
		func(s signals) string {
			if s.format.Score < 60 {
				return "Improve the structure and formatting so applicant tracking systems can parse your CV"
			}
			return ""
		},
		func(s signals) string {
			if missing := missingSections(e.catalog.CoreSections, s.sections); len(missing) > 0 {
				return "Add the missing sections: " + joinSections(missing)
			}
			return ""
		},
		func(s signals) string {
			if s.format.Points[ruleAchievements] <= 5 {
				return "Quantify your achievements with numbers, percentages or amounts"
			}
			return ""
		},
		func(s signals) string {
			if s.format.Points[ruleActionVerbs] <= 5 {
				return "Begin bullet points with action verbs such as led, managed or developed"
			}
			return ""
		},
		func(s signals) string {
			if s.format.Points[ruleContact] == 0 {
				return "Add contact details at the top of your CV"
			}
			return ""
		},
		// skills
		func(s signals) string {
			if len(s.skills) < 5 {
				return fmt.Sprintf("List more relevant skills; only %d were identified", len(s.skills))
			}
			return ""
		},
		// regional
		func(s signals) string {
			if s.regional.Score >= 40 {
				return ""
			}
			missing := e.regional.missing(s.regional.Markers)
			if len(missing) > 3 {
				missing = missing[:3]
			}
			labels := make([]string, 0, len(missing))
			for _, m := range missing {
				labels = append(labels, e.regional.label(m))
			}
			return fmt.Sprintf("Add %s context such as your %s", market, strings.Join(labels, ", "))
		},
		func(s signals) string {
			if !slices.Contains(s.regional.Markers, MarkerComplianceStatus) {
				return fmt.Sprintf("State your %s if applicable", e.regional.label(MarkerComplianceStatus))
			}
			return ""
		},
		func(s signals) string {
			if !slices.Contains(s.regional.Markers, MarkerQualificationLevel) {
				return fmt.Sprintf("Specify the %s of your qualifications", e.regional.label(MarkerQualificationLevel))
			}
			return ""
		},
	}
}

// collectFeedback runs rules in order, truncates to five and pads short lists with fillers.
func collectFeedback(rules []feedbackRule, s signals, fallback []string) []string {
	out := make([]string, 0, maxFeedbackItems)
	for _, rule := range rules {
		if msg := rule(s); msg != "" {
			out = append(out, msg)
		}
	}
	if len(out) > maxFeedbackItems {
		out = out[:maxFeedbackItems]
	}
	if len(out) < minFeedbackItems {
		out = append(out, fallback...)
	}
	return out
}

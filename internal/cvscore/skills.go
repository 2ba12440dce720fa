package cvscore

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type skillDetector struct {
	vocabulary []string
	terms      []string
	mode       SkillMatch
}

func newSkillDetector(vocabulary []string, mode SkillMatch) *skillDetector {
	d := &skillDetector{mode: mode}
	seen := make(map[string]bool, len(vocabulary))
	lower := cases.Lower(language.Und)
	for _, skill := range vocabulary {
		skill = strings.TrimSpace(skill)
		term := lower.String(skill)
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		d.vocabulary = append(d.vocabulary, skill)
		d.terms = append(d.terms, term)
	}
	return d
}

// Detect returns vocabulary entries present in text, in vocabulary order, each at most once.
func (d *skillDetector) Detect(text string) []string {
	// cases.Caser is stateful and must not be shared between goroutines.
	lowered := cases.Lower(language.Und).String(text)
	found := make([]string, 0, len(d.terms))
	for i, term := range d.terms {
		var hit bool
		if d.mode == SkillMatchWord {
			hit = containsWord(lowered, term)
		} else {
			hit = strings.Contains(lowered, term)
		}
		if hit {
			found = append(found, d.vocabulary[i])
		}
	}
	return found
}

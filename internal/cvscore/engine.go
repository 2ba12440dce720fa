// Package cvscore scores plain-text CVs for structure, skills and regional
// relevance. An Engine is built once from a Catalog and is safe for
// concurrent use; Analyze is a pure function of its input.
package cvscore

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Engine runs every detector over one text and assembles the result.
type Engine struct {
	catalog Catalog

	sections *sectionDetector
	skills   *skillDetector
	regional *regionalEvaluator

	bullets      *regexp.Regexp
	contact      *regexp.Regexp
	dates        *regexp.Regexp
	achievements *regexp.Regexp
	actionVerbs  *regexp.Regexp

	formatRules  []FormatRule
	strengths    []feedbackRule
	improvements []feedbackRule
}

// New compiles catalog into an Engine.
func New(catalog Catalog) (*Engine, error) {
	catalog = catalog.clone()
	if err := checkCatalog(catalog); err != nil {
		return nil, err
	}
	if catalog.SkillMatch == "" {
		catalog.SkillMatch = SkillMatchSubstring
	}

	e := &Engine{catalog: catalog}
	var err error
	if e.sections, err = newSectionDetector(catalog.Sections); err != nil {
		return nil, err
	}
	e.skills = newSkillDetector(catalog.Skills, catalog.SkillMatch)
	if e.regional, err = newRegionalEvaluator(catalog.Markers); err != nil {
		return nil, err
	}
	for _, g := range []struct {
		dst   **regexp.Regexp
		group PatternGroup
	}{
		{&e.bullets, catalog.Bullets},
		{&e.contact, catalog.Contact},
		{&e.dates, catalog.Dates},
		{&e.achievements, catalog.Achievements},
		{&e.actionVerbs, catalog.ActionVerbs},
	} {
		if *g.dst, err = compileGroup(g.group); err != nil {
			return nil, err
		}
	}

	e.formatRules = e.buildFormatRules()
	e.strengths = e.strengthRules()
	e.improvements = e.improvementRules()
	return e, nil
}

// Default returns an Engine over DefaultCatalog. It panics if the built-in catalog does not compile.
func Default() *Engine {
	e, err := New(DefaultCatalog())
	if err != nil {
		panic(fmt.Sprintf("cvscore: default catalog: %v", err))
	}
	return e
}

// Catalog returns a copy of the catalog the engine was built from.
func (e *Engine) Catalog() Catalog {
	return e.catalog.clone()
}

// Version is the catalog version, without copying the catalog.
func (e *Engine) Version() string {
	return e.catalog.Version
}

// Analyze scores text. It fails only with a *ValidationError when text is blank.
func (e *Engine) Analyze(text string) (AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return AnalysisResult{}, &ValidationError{Field: "text", Reason: "must not be empty", Err: ErrEmptyText}
	}
	text = norm.NFKC.String(text)

	sections := e.sections.Detect(text)
	skills := e.skills.Detect(text)

	format := e.evaluateFormat(newDocument(text, sections))
	regional := e.regional.Evaluate(text)

	skillScore := SkillScore(len(skills))
	overall := OverallScore(format.Score, skillScore, regional.Score)

	sig := signals{
		format:   format,
		sections: sections,
		skills:   skills,
		regional: regional,
	}

	return AnalysisResult{
		OverallScore:            overall,
		Rating:                  Rating(overall),
		FormatScore:             format.Score,
		SkillScore:              skillScore,
		RegionalScore:           regional.Score,
		RegionalRelevance:       RegionalRelevance(regional.Score),
		Strengths:               collectFeedback(e.strengths, sig, fallbackStrengths),
		Improvements:            collectFeedback(e.improvements, sig, fallbackImprovements),
		FormatFeedback:          format.Feedback,
		SectionsDetected:        sections,
		SkillsIdentified:        skills,
		RegionalMarkersDetected: regional.Markers,
	}, nil
}

func checkCatalog(c Catalog) error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("%w: no section rules", ErrInvalidCatalog)
	}
	if len(c.Skills) == 0 {
		return fmt.Errorf("%w: empty skill vocabulary", ErrInvalidCatalog)
	}
	if len(c.Markers) == 0 {
		return fmt.Errorf("%w: no regional markers", ErrInvalidCatalog)
	}
	total := 0
	for _, m := range c.Markers {
		if m.Points <= 0 {
			return fmt.Errorf("%w: marker %s has no points", ErrInvalidCatalog, m.Marker)
		}
		total += m.Points
	}
	if total != maxScore {
		return fmt.Errorf("%w: regional points sum to %d, want %d", ErrInvalidCatalog, total, maxScore)
	}
	switch c.SkillMatch {
	case "", SkillMatchSubstring, SkillMatchWord:
	default:
		return fmt.Errorf("%w: unknown skill match mode %q", ErrInvalidCatalog, c.SkillMatch)
	}
	p, a := c.PreferredWordRange, c.AcceptedWordRange
	if p[0] > p[1] || a[0] > a[1] || a[0] > p[0] || a[1] < p[1] {
		return fmt.Errorf("%w: word ranges must nest (preferred %v, accepted %v)", ErrInvalidCatalog, p, a)
	}
	return nil
}

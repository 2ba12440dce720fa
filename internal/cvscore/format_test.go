package cvscore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleByName(t *testing.T, e *Engine, name string) FormatRule {
	t.Helper()
	for _, r := range e.formatRules {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("format rule %q not found", name)
	return FormatRule{}
}

func TestFormatRulesMaxPoints(t *testing.T) {
	e := Default()
	total := 0
	for _, r := range e.formatRules {
		total += r.Max
	}
	// Contributions may overshoot 100 in sum; the evaluator clamps.
	assert.Equal(t, 110, total)
}

func TestLengthRule(t *testing.T) {
	rule := ruleByName(t, Default(), ruleLength)
	cases := map[int]int{0: 0, 150: 0, 200: 0, 201: 10, 299: 10, 300: 20, 500: 20, 700: 20, 701: 10, 899: 10, 900: 0, 2000: 0}
	for words, want := range cases {
		assert.Equalf(t, want, rule.Score(Document{WordCount: words}), "words=%d", words)
	}
	assert.Contains(t, rule.Advice(Document{WordCount: 120}), "short (120 words)")
	assert.Contains(t, rule.Advice(Document{WordCount: 1200}), "long (1200 words)")
	assert.Empty(t, rule.Advice(Document{WordCount: 450}))
}

func TestSectionsRule(t *testing.T) {
	rule := ruleByName(t, Default(), ruleSections)
	assert.Equal(t, 0, rule.Score(Document{}))
	assert.Equal(t, 12, rule.Score(Document{Sections: []Section{SectionSkills, SectionExperience, SectionEducation}}))
	six := []Section{SectionSummary, SectionSkills, SectionExperience, SectionEducation, SectionProjects, SectionAwards}
	assert.Equal(t, 20, rule.Score(Document{Sections: six}))
	assert.Empty(t, rule.Advice(Document{Sections: six}))
	assert.Equal(t, "Add clear section headers for: summary, education",
		rule.Advice(Document{Sections: []Section{SectionSkills, SectionExperience}}))
}

func TestBulletsRule(t *testing.T) {
	rule := ruleByName(t, Default(), ruleBullets)
	lines := func(n int, prefix string) Document {
		out := make([]string, n)
		for i := range out {
			out[i] = prefix + "did a thing"
		}
		return Document{Lines: out}
	}
	assert.Equal(t, 0, rule.Score(lines(3, "")))
	assert.Equal(t, 5, rule.Score(lines(1, "- ")))
	assert.Equal(t, 10, rule.Score(lines(5, "• ")))
	assert.Equal(t, 15, rule.Score(lines(10, "* ")))
	assert.NotEmpty(t, rule.Advice(lines(4, "- ")))
	assert.Empty(t, rule.Advice(lines(5, "- ")))
}

func TestContactRule(t *testing.T) {
	rule := ruleByName(t, Default(), ruleContact)
	for _, text := range []string{"jane@example.co.za", "Cell: 082 555 1234", "+27 82 555 1234", "linkedin.com/in/jane"} {
		assert.Equalf(t, 10, rule.Score(Document{Text: text}), "text=%q", text)
	}
	assert.Equal(t, 0, rule.Score(Document{Text: "Worked 2018 - 2020"}))
	assert.NotEmpty(t, rule.Advice(Document{Text: "no details"}))
}

func TestDatesRule(t *testing.T) {
	rule := ruleByName(t, Default(), ruleDates)
	doc := Document{Lines: []string{"Analyst, Jan 2020 - present", "2016 - 2019", "Completed 03/2015", "no date here"}}
	assert.Equal(t, 15, rule.Score(doc))
	assert.Empty(t, rule.Advice(doc))

	one := Document{Lines: []string{"Since March 2020"}}
	assert.Equal(t, 10, rule.Score(one))
	assert.NotEmpty(t, rule.Advice(one))
	assert.Equal(t, 0, rule.Score(Document{Lines: []string{"undated"}}))
}

func TestAchievementsRule(t *testing.T) {
	rule := ruleByName(t, Default(), ruleAchievements)
	assert.Equal(t, 5, rule.Score(Document{Lines: []string{"Increased revenue by 20%"}}))
	three := Document{Lines: []string{"Reduced costs", "Grew the team", "Saved R1m"}}
	assert.Equal(t, 10, rule.Score(three))
	assert.Empty(t, rule.Advice(three))
	assert.NotEmpty(t, rule.Advice(Document{Lines: []string{"Did things"}}))
}

func TestActionVerbsRule(t *testing.T) {
	rule := ruleByName(t, Default(), ruleActionVerbs)
	two := Document{Lines: []string{"- Led the migration", "Managed a budget", "Was responsible for things"}}
	assert.Equal(t, 5, rule.Score(two))
	assert.NotEmpty(t, rule.Advice(two))

	verbs := []string{"Led", "Managed", "Developed", "Designed", "Implemented", "Created", "Coordinated", "Launched"}
	var lines []string
	for _, v := range verbs {
		lines = append(lines, "• "+v+" something")
	}
	assert.Equal(t, 15, rule.Score(Document{Lines: lines}))
}

func TestEvaluateFormatClamps(t *testing.T) {
	e := Default()
	var b strings.Builder
	b.WriteString("Summary Skills Experience Education Projects Awards\n")
	b.WriteString("jane@example.com\n")
	verbs := []string{"Led", "Managed", "Developed", "Designed", "Implemented", "Created", "Coordinated", "Launched", "Delivered", "Built"}
	for i, v := range verbs {
		b.WriteString("- " + v + " work and increased output, Jan 201" + string(rune('0'+i)) + "\n")
	}
	b.WriteString(strings.Repeat("filler ", 350))

	doc := newDocument(b.String(), e.sections.Detect(b.String()))
	got := e.evaluateFormat(doc)
	require.Equal(t, 100, got.Score)
	assert.Empty(t, got.Feedback)
}

func TestNewDocumentSplitsLines(t *testing.T) {
	doc := newDocument("one two\r\nthree\n\nfour", nil)
	assert.Equal(t, []string{"one two", "three", "", "four"}, doc.Lines)
	assert.Equal(t, 4, doc.WordCount)
}

package cvscore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionDetectorCaseInsensitive(t *testing.T) {
	e := Default()
	got := e.sections.Detect("WORK EXPERIENCE\nEducation\nkey skills\nREFERENCES available on request")
	assert.Equal(t, []Section{SectionSkills, SectionExperience, SectionEducation, SectionReferences}, got)
}

func TestSectionDetectorEmpty(t *testing.T) {
	e := Default()
	got := e.sections.Detect("")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSkillDetectorVocabularyOrder(t *testing.T) {
	e := Default()
	got := e.skills.Detect("Python developer with strong communication, python and PYTHON again")
	assert.Equal(t, []string{"communication", "python"}, got)
}

func TestSkillDetectorSubstringQuirk(t *testing.T) {
	e := Default()
	got := e.skills.Detect("Frontend work in JavaScript")
	assert.Equal(t, []string{"java", "javascript"}, got)
}

func TestSkillDetectorWordMode(t *testing.T) {
	catalog := DefaultCatalog()
	catalog.SkillMatch = SkillMatchWord
	e, err := New(catalog)
	require.NoError(t, err)

	assert.Equal(t, []string{"javascript"}, e.skills.Detect("Frontend work in JavaScript"))
	assert.Equal(t, []string{"java", "c#"}, e.skills.Detect("Java, C# and more"))
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("java developer", "java"))
	assert.True(t, containsWord("(java)", "java"))
	assert.False(t, containsWord("javascript", "java"))
	assert.True(t, containsWord("javascript and java", "java"))
	assert.False(t, containsWord("", "java"))
	assert.False(t, containsWord("java", ""))
}

func TestRegionalEvaluatorFixedPoints(t *testing.T) {
	e := Default()

	once := e.regional.Evaluate("B-BBEE Level 2")
	twice := e.regional.Evaluate("B-BBEE Level 2. BEE status confirmed. B-BBEE certificate attached.")
	assert.Equal(t, 20, once.Score)
	assert.Equal(t, once, twice)
	assert.Equal(t, []Marker{MarkerComplianceStatus}, once.Markers)
}

func TestRegionalEvaluatorAllCategories(t *testing.T) {
	e := Default()
	text := strings.Join([]string{
		"B-BBEE Level 1 contributor",
		"BCom Accounting, NQF Level 7",
		"Gauteng",
		"Johannesburg",
		"Salary expectation: R 35 000 per month",
		"Languages: English, Afrikaans",
		"University of Pretoria",
		"Standard Bank",
		"POPIA compliance",
	}, "\n")
	got := e.regional.Evaluate(text)
	assert.Equal(t, 100, got.Score)
	assert.Len(t, got.Markers, 9)
}

func TestRegionalEvaluatorNone(t *testing.T) {
	e := Default()
	got := e.regional.Evaluate("Software engineer based in Berlin")
	assert.Equal(t, 0, got.Score)
	assert.Empty(t, got.Markers)
}

func TestDefaultCatalogPointsSumToHundred(t *testing.T) {
	total := 0
	for _, m := range DefaultCatalog().Markers {
		assert.GreaterOrEqual(t, m.Points, 10)
		assert.LessOrEqual(t, m.Points, 20)
		total += m.Points
	}
	assert.Equal(t, 100, total)
	assert.Len(t, DefaultCatalog().Sections, 12)
}

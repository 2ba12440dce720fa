package cvscore

import "slices"

// Section identifies a structural CV section.
type Section string

const (
	SectionSummary        Section = "summary"
	SectionSkills         Section = "skills"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionProjects       Section = "projects"
	SectionAwards         Section = "awards"
	SectionCertifications Section = "certifications"
	SectionLanguages      Section = "languages"
	SectionReferences     Section = "references"
	SectionVolunteer      Section = "volunteer"
	SectionInterests      Section = "interests"
	SectionPublications   Section = "publications"
)

// Marker identifies a regional-relevance category.
type Marker string

const (
	MarkerComplianceStatus   Marker = "compliance-status"
	MarkerQualificationLevel Marker = "qualification-framework-level"
	MarkerAdministrative     Marker = "administrative-region"
	MarkerCity               Marker = "city"
	MarkerCurrency           Marker = "local-currency"
	MarkerLanguage           Marker = "local-language"
	MarkerInstitution        Marker = "local-institution"
	MarkerEmployer           Marker = "local-employer"
	MarkerRegulation         Marker = "local-regulation"
)

// SkillMatch selects how vocabulary terms are matched against text.
type SkillMatch string

const (
	// SkillMatchSubstring matches a term anywhere, so "java" also fires inside "javascript".
	SkillMatchSubstring SkillMatch = "substring"
	// SkillMatchWord only matches a term bounded by non-alphanumeric characters.
	SkillMatchWord SkillMatch = "word"
)

// PatternGroup is a named matching rule: literal keywords, regular expressions, or both.
// Keywords and patterns are matched case-insensitively.
type PatternGroup struct {
	Name     string
	Keywords []string
	Patterns []string
}

// SectionRule binds a section identifier to the patterns that reveal it.
type SectionRule struct {
	Section Section
	Group   PatternGroup
}

// MarkerRule binds a regional category to its patterns and fixed point value.
// Label is the human wording used when suggesting the marker be added.
type MarkerRule struct {
	Marker Marker
	Points int
	Label  string
	Group  PatternGroup
}

// Catalog is the read-only data the engine runs on. It carries no per-request state.
type Catalog struct {
	Version string
	// Market names the target job market in feedback messages.
	Market string

	Sections   []SectionRule
	Skills     []string
	SkillMatch SkillMatch
	Markers    []MarkerRule

	Bullets            PatternGroup
	Contact            PatternGroup
	Dates              PatternGroup
	Achievements       PatternGroup
	ActionVerbs        PatternGroup
	CoreSections       []Section
	PreferredWordRange [2]int
	AcceptedWordRange  [2]int
}

func (g PatternGroup) clone() PatternGroup {
	g.Keywords = slices.Clone(g.Keywords)
	g.Patterns = slices.Clone(g.Patterns)
	return g
}

// clone returns a deep copy so an Engine never shares backing arrays with its caller.
func (c Catalog) clone() Catalog {
	out := c
	out.Sections = make([]SectionRule, len(c.Sections))
	for i, r := range c.Sections {
		r.Group = r.Group.clone()
		out.Sections[i] = r
	}
	out.Markers = make([]MarkerRule, len(c.Markers))
	for i, r := range c.Markers {
		r.Group = r.Group.clone()
		out.Markers[i] = r
	}
	out.Skills = slices.Clone(c.Skills)
	out.CoreSections = slices.Clone(c.CoreSections)
	out.Bullets = c.Bullets.clone()
	out.Contact = c.Contact.clone()
	out.Dates = c.Dates.clone()
	out.Achievements = c.Achievements.clone()
	out.ActionVerbs = c.ActionVerbs.clone()
	return out
}

const bulletGlyphs = `[•\-\*▪►◦‣–·●○■□➢✓]`

// DefaultCatalog returns the built-in catalog targeting the South African job market.
func DefaultCatalog() Catalog {
	return Catalog{
		Version:    "za-2024.1",
		Market:     "South African",
		SkillMatch: SkillMatchSubstring,
		Sections: []SectionRule{
			{SectionSummary, PatternGroup{Name: "section:summary", Patterns: []string{
				`\b(professional\s+)?summary\b`, `\bprofile\b`, `\b(career\s+)?objective\b`, `\babout\s+me\b`,
			}}},
			{SectionSkills, PatternGroup{Name: "section:skills", Patterns: []string{
				`\bskills\b`, `\bcompetenc(ies|e)\b`, `\bexpertise\b`, `\bproficienc(ies|y)\b`,
			}}},
			{SectionExperience, PatternGroup{Name: "section:experience", Patterns: []string{
				`\bexperience\b`, `\bemployment(\s+history)?\b`, `\bwork\s+history\b`, `\bcareer\s+history\b`,
			}}},
			{SectionEducation, PatternGroup{Name: "section:education", Patterns: []string{
				`\beducation\b`, `\bqualifications?\b`, `\bacademic\b`, `\bmatric(ulated|ulation)?\b`,
			}}},
			{SectionProjects, PatternGroup{Name: "section:projects", Patterns: []string{`\bprojects?\b`, `\bportfolio\b`}}},
			{SectionAwards, PatternGroup{Name: "section:awards", Patterns: []string{`\bawards?\b`, `\bhonou?rs\b`, `\bachievements\b`}}},
			{SectionCertifications, PatternGroup{Name: "section:certifications", Patterns: []string{`\bcertifications?\b`, `\bcertificates?\b`, `\blicen[cs]es?\b`}}},
			{SectionLanguages, PatternGroup{Name: "section:languages", Patterns: []string{`\blanguages?\b`}}},
			{SectionReferences, PatternGroup{Name: "section:references", Patterns: []string{`\breferences?\b`, `\breferees?\b`}}},
			{SectionVolunteer, PatternGroup{Name: "section:volunteer", Patterns: []string{`\bvolunteer(ing)?\b`, `\bcommunity\s+(service|involvement)\b`}}},
			{SectionInterests, PatternGroup{Name: "section:interests", Patterns: []string{`\binterests\b`, `\bhobbies\b`}}},
			{SectionPublications, PatternGroup{Name: "section:publications", Patterns: []string{`\bpublications?\b`, `\bpapers\b`, `\bresearch\b`}}},
		},
		Skills: []string{
			"communication", "leadership", "teamwork", "problem solving", "project management",
			"time management", "customer service", "negotiation", "sales", "marketing",
			"budgeting", "financial analysis", "accounting", "bookkeeping", "auditing",
			"payroll", "administration", "data entry", "data analysis", "reporting",
			"microsoft office", "excel", "ms word", "powerpoint", "outlook",
			"sap", "pastel", "sage evolution", "quickbooks", "crm",
			"python", "java", "javascript", "typescript", "sql",
			"html", "css", "react", "node", "php",
			"c#", ".net", "aws", "azure", "docker",
			"kubernetes", "linux", "github", "networking", "cybersecurity",
			"machine learning", "power bi", "tableau", "agile", "scrum",
			"training", "mentoring", "supervision", "logistics", "procurement",
			"health and safety", "quality control",
		},
		Markers: []MarkerRule{
			{MarkerComplianceStatus, 20, "B-BBEE status", PatternGroup{Name: "regional:compliance-status", Patterns: []string{
				`\bb-?bbee\b`, `\bbee\s+(level|status|certificate)\b`, `\bemployment\s+equity\b`, `\bee\s+candidate\b`,
			}}},
			{MarkerQualificationLevel, 10, "NQF level", PatternGroup{Name: "regional:qualification-framework-level", Patterns: []string{
				`\bnqf\s*(level\s*)?\d{1,2}\b`, `\bnqf\b`, `\bsaqa\b`, `\bnational\s+senior\s+certificate\b`,
			}}},
			{MarkerAdministrative, 10, "province", PatternGroup{Name: "regional:administrative-region", Keywords: []string{
				"gauteng", "western cape", "eastern cape", "northern cape", "kwazulu-natal", "kwazulu natal",
				"free state", "limpopo", "mpumalanga", "north west province",
			}}},
			{MarkerCity, 10, "city", PatternGroup{Name: "regional:city", Keywords: []string{
				"johannesburg", "cape town", "durban", "pretoria", "tshwane", "port elizabeth", "gqeberha",
				"bloemfontein", "east london", "polokwane", "nelspruit", "mbombela", "kimberley",
				"pietermaritzburg", "sandton", "midrand", "soweto", "stellenbosch",
			}}},
			{MarkerCurrency, 10, "rand amounts", PatternGroup{Name: "regional:local-currency", Patterns: []string{
				`\bzar\b`, `\brands?\b`, `\bR\s?\d[\d ,]*(\.\d{2})?\b`,
			}}},
			{MarkerLanguage, 10, "local languages", PatternGroup{Name: "regional:local-language", Keywords: []string{
				"afrikaans", "isizulu", "zulu", "isixhosa", "xhosa", "sesotho", "setswana", "sepedi",
				"xitsonga", "siswati", "tshivenda", "isindebele",
			}}},
			{MarkerInstitution, 10, "local institutions", PatternGroup{Name: "regional:local-institution", Keywords: []string{
				"university of cape town", "uct", "wits", "university of the witwatersrand", "university of pretoria",
				"tuks", "stellenbosch university", "unisa", "university of johannesburg", "rhodes university",
				"university of kwazulu-natal", "ukzn", "nelson mandela university", "north-west university",
				"tshwane university of technology", "cape peninsula university of technology", "durban university of technology",
			}}},
			{MarkerEmployer, 10, "local employers", PatternGroup{Name: "regional:local-employer", Keywords: []string{
				"sasol", "eskom", "transnet", "mtn", "vodacom", "telkom", "standard bank", "absa", "fnb",
				"first national bank", "nedbank", "capitec", "discovery", "old mutual", "sanlam", "shoprite",
				"pick n pay", "woolworths", "naspers", "anglo american", "multichoice", "deloitte south africa",
			}}},
			{MarkerRegulation, 10, "local legislation such as POPIA", PatternGroup{Name: "regional:local-regulation", Patterns: []string{
				`\bpopia\b`, `\bprotection\s+of\s+personal\s+information\b`, `\bbcea\b`, `\bbasic\s+conditions\s+of\s+employment\b`,
				`\blabou?r\s+relations\s+act\b`, `\bohsa\b`, `\boccupational\s+health\s+and\s+safety\s+act\b`,
				`\bfica\b`, `\bsars\b`, `\bking\s+iv\b`, `\bcompanies\s+act\b`,
			}}},
		},
		Bullets: PatternGroup{Name: "format:bullet", Patterns: []string{
			`^\s*` + bulletGlyphs + `\s*\S`, `^\s*\d{1,2}[.)]\s+\S`,
		}},
		Contact: PatternGroup{Name: "format:contact", Patterns: []string{
			`[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`,
			`(\+27|\b0)[\s\-]?\d{2}[\s\-]?\d{3}[\s\-]?\d{4}\b`,
			`\+\d{1,3}[\s\-]?\(?\d{2,3}\)?[\s\-]?\d{3}[\s\-]?\d{3,4}\b`,
			`\blinkedin\b`, `\b(e-?mail|phone|tel|cell|mobile)\s*:`,
		}},
		Dates: PatternGroup{Name: "format:date", Patterns: []string{
			`\b(jan(uary)?|feb(ruary)?|mar(ch)?|apr(il)?|may|june?|july?|aug(ust)?|sep(t(ember)?)?|oct(ober)?|nov(ember)?|dec(ember)?)\.?\s+(19|20)\d{2}\b`,
			`\b(0?[1-9]|1[0-2])/(19|20)\d{2}\b`,
			`\b(19|20)\d{2}\s*[-–]\s*((19|20)\d{2}|present|current|now)\b`,
		}},
		Achievements: PatternGroup{Name: "format:quantified-achievement", Patterns: []string{
			`\b(increased|reduced|grew|improved|decreased|saved|generated|boosted|cut|raised|exceeded|doubled|tripled|lowered)\b`,
		}},
		ActionVerbs: PatternGroup{Name: "format:action-verb", Patterns: []string{
			`^\s*(` + bulletGlyphs + `\s*)?(managed|led|developed|designed|implemented|created|coordinated|established|launched|delivered|built|organi[sz]ed|supervised|trained|negotiated|analy[sz]ed|planned|executed|streamlined|spearheaded|achieved|improved|increased|reduced|oversaw|prepared|maintained|resolved|initiated|facilitated)\b`,
		}},
		CoreSections:       []Section{SectionSummary, SectionExperience, SectionEducation, SectionSkills},
		PreferredWordRange: [2]int{300, 700},
		AcceptedWordRange:  [2]int{200, 900},
	}
}

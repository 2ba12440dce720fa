package cvscore

import (
	"regexp"
	"slices"
)

type sectionDetector struct {
	sections []Section
	patterns []*regexp.Regexp
}

func newSectionDetector(rules []SectionRule) (*sectionDetector, error) {
	d := &sectionDetector{
		sections: make([]Section, 0, len(rules)),
		patterns: make([]*regexp.Regexp, 0, len(rules)),
	}
	for _, rule := range rules {
		re, err := compileGroup(rule.Group)
		if err != nil {
			return nil, err
		}
		d.sections = append(d.sections, rule.Section)
		d.patterns = append(d.patterns, re)
	}
	return d, nil
}

// Detect returns the sections whose patterns match anywhere in text, in catalog order.
func (d *sectionDetector) Detect(text string) []Section {
	found := make([]Section, 0, len(d.sections))
	for i, re := range d.patterns {
		if re.MatchString(text) {
			found = append(found, d.sections[i])
		}
	}
	return found
}

// missingSections lists wanted sections absent from detected, keeping wanted's order.
func missingSections(wanted, detected []Section) []Section {
	var out []Section
	for _, s := range wanted {
		if !slices.Contains(detected, s) {
			out = append(out, s)
		}
	}
	return out
}

package cvscore

import "regexp"

type regionalEvaluator struct {
	rules    []MarkerRule
	patterns []*regexp.Regexp
}

type regionalEvaluation struct {
	Score   int
	Markers []Marker
}

func newRegionalEvaluator(rules []MarkerRule) (*regionalEvaluator, error) {
	ev := &regionalEvaluator{
		rules:    rules,
		patterns: make([]*regexp.Regexp, 0, len(rules)),
	}
	for _, rule := range rules {
		re, err := compileGroup(rule.Group)
		if err != nil {
			return nil, err
		}
		ev.patterns = append(ev.patterns, re)
	}
	return ev, nil
}

// Evaluate awards each category its fixed points once, however often it matches.
func (ev *regionalEvaluator) Evaluate(text string) regionalEvaluation {
	out := regionalEvaluation{Markers: []Marker{}}
	raw := 0
	for i, re := range ev.patterns {
		if re.MatchString(text) {
			raw += ev.rules[i].Points
			out.Markers = append(out.Markers, ev.rules[i].Marker)
		}
	}
	out.Score = clampScore(raw)
	return out
}

func (ev *regionalEvaluator) label(m Marker) string {
	for _, rule := range ev.rules {
		if rule.Marker == m {
			if rule.Label != "" {
				return rule.Label
			}
			break
		}
	}
	return string(m)
}

// missing lists the categories absent from detected, in catalog order.
func (ev *regionalEvaluator) missing(detected []Marker) []Marker {
	have := make(map[Marker]bool, len(detected))
	for _, m := range detected {
		have[m] = true
	}
	var out []Marker
	for _, rule := range ev.rules {
		if !have[rule.Marker] {
			out = append(out, rule.Marker)
		}
	}
	return out
}

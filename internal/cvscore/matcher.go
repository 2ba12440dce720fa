package cvscore

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// compileGroup folds a pattern group into one case-insensitive alternation.
func compileGroup(g PatternGroup) (*regexp.Regexp, error) {
	parts := make([]string, 0, len(g.Patterns)+1)
	for _, p := range g.Patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("%w: group %s: %v", ErrInvalidCatalog, g.Name, err)
		}
		parts = append(parts, "(?:"+p+")")
	}
	keywords := make([]string, 0, len(g.Keywords))
	for _, kw := range g.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, regexp.QuoteMeta(kw))
		}
	}
	if len(keywords) > 0 {
		parts = append(parts, `\b(?:`+strings.Join(keywords, "|")+`)\b`)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: group %s has no patterns", ErrInvalidCatalog, g.Name)
	}
	re, err := regexp.Compile("(?i)" + strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("%w: group %s: %v", ErrInvalidCatalog, g.Name, err)
	}
	return re, nil
}

// countLines returns how many lines contain a match.
func countLines(re *regexp.Regexp, lines []string) int {
	n := 0
	for _, line := range lines {
		if re.MatchString(line) {
			n++
		}
	}
	return n
}

// containsWord reports whether term occurs in text with no letter or digit on either side.
func containsWord(text, term string) bool {
	if term == "" {
		return false
	}
	offset := 0
	for {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if isBoundary(text, start, true) && isBoundary(text, end, false) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
}

func isBoundary(text string, pos int, before bool) bool {
	var r rune
	if before {
		if pos == 0 {
			return true
		}
		r, _ = utf8.DecodeLastRuneInString(text[:pos])
	} else {
		if pos >= len(text) {
			return true
		}
		r, _ = utf8.DecodeRuneInString(text[pos:])
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Package fixtures stores (text, expected result) pairs on disk and replays
// them through an engine to catch scoring regressions.
package fixtures

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"cvscore-api/internal/cvscore"
)

const fileExt = ".json"

var ErrInvalidFixture = errors.New("invalid fixture")

// Fixture pairs a CV text with the result it is expected to produce.
type Fixture struct {
	Name           string                 `json:"name"`
	CatalogVersion string                 `json:"catalogVersion,omitempty"`
	Text           string                 `json:"text"`
	Expected       cvscore.AnalysisResult `json:"expected"`
}

// Mismatch is one field whose replayed value differs from the stored one.
type Mismatch struct {
	Fixture string `json:"fixture"`
	Field   string `json:"field"`
	Want    any    `json:"want"`
	Got     any    `json:"got"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s: want %v, got %v", m.Fixture, m.Field, m.Want, m.Got)
}

// Report summarises a replay.
type Report struct {
	Checked    int        `json:"checked"`
	Mismatches []Mismatch `json:"mismatches"`
}

// OK reports whether every fixture replayed cleanly.
func (r Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Load reads every *.json fixture in dir, sorted by file name.
func Load(dir string) ([]Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read fixture dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), fileExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]Fixture, 0, len(names))
	for _, name := range names {
		f, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// LoadFile reads a single fixture. A fixture without a name takes its file name.
func LoadFile(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("%w: %s: %v", ErrInvalidFixture, path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if strings.TrimSpace(f.Text) == "" {
		return Fixture{}, fmt.Errorf("%w: %s: empty text", ErrInvalidFixture, path)
	}
	return f, nil
}

// Record analyses text with engine and returns it as a new fixture.
func Record(engine *cvscore.Engine, name, text string) (Fixture, error) {
	result, err := engine.Analyze(text)
	if err != nil {
		return Fixture{}, err
	}
	return Fixture{
		Name:           name,
		CatalogVersion: engine.Catalog().Version,
		Text:           text,
		Expected:       result,
	}, nil
}

var unsafeName = regexp.MustCompile(`[^a-z0-9._-]+`)

// Write stores f in dir as <slug>.json and returns the path.
func Write(dir string, f Fixture) (string, error) {
	slug := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(f.Name), "-"), "-.")
	if slug == "" {
		return "", fmt.Errorf("%w: name %q has no usable characters", ErrInvalidFixture, f.Name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create fixture dir: %w", err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode fixture: %w", err)
	}
	path := filepath.Join(dir, slug+fileExt)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write fixture: %w", err)
	}
	return path, nil
}

// Verify re-derives every fixture's result and reports field-level differences.
// Stored results that break the result invariants are reported as well.
func Verify(engine *cvscore.Engine, fixtures []Fixture) (Report, error) {
	report := Report{Mismatches: []Mismatch{}}
	for _, f := range fixtures {
		if err := f.Expected.Validate(); err != nil {
			report.Mismatches = append(report.Mismatches, Mismatch{Fixture: f.Name, Field: "invariants", Want: "valid", Got: err.Error()})
		}
		got, err := engine.Analyze(f.Text)
		if err != nil {
			return report, fmt.Errorf("analyse fixture %s: %w", f.Name, err)
		}
		diffs, err := diffResults(f.Expected, got)
		if err != nil {
			return report, fmt.Errorf("compare fixture %s: %w", f.Name, err)
		}
		for _, d := range diffs {
			d.Fixture = f.Name
			report.Mismatches = append(report.Mismatches, d)
		}
		report.Checked++
	}
	return report, nil
}

// diffResults compares results through their JSON form so field names match the wire format.
func diffResults(want, got cvscore.AnalysisResult) ([]Mismatch, error) {
	w, err := toMap(want)
	if err != nil {
		return nil, err
	}
	g, err := toMap(got)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Mismatch
	for _, k := range keys {
		if !reflect.DeepEqual(w[k], g[k]) {
			out = append(out, Mismatch{Field: k, Want: w[k], Got: g[k]})
		}
	}
	return out, nil
}

func toMap(r cvscore.AnalysisResult) (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

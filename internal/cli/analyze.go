package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"cvscore-api/internal/analyses"
	"cvscore-api/internal/cvscore"
	"cvscore-api/internal/extract"
	"cvscore-api/internal/shared/telemetry"
)

// maxInputBytes bounds files and stdin read by the CLI.
var maxInputBytes = 20 << 20

func newAnalyzeCommand(opts options) *cobra.Command {
	var ats bool
	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Score a CV file (PDF, DOCX or text) or text on stdin",
		Long: `Scores a CV and prints the overall score, the three sub-scores and the feedback.

Examples:
  cvscore analyze cv.pdf
  cat cv.txt | cvscore analyze --json
  cvscore analyze cv.docx --ats --skill-match word`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			text, err := readCV(cmd, path)
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			result, err := engine.Analyze(text)
			if err != nil {
				return errors.Wrap(err, "analysing CV")
			}
			telemetry.Debug("cli.analyze", map[string]any{
				"source":        path,
				"overall_score": result.OverallScore,
			})

			out := cmd.OutOrStdout()
			switch {
			case ats:
				return writeJSON(out, analyses.ToATS(result))
			case opts.json():
				return writeJSON(out, result)
			default:
				writeReport(out, result)
				return nil
			}
		},
	}
	cmd.Flags().BoolVar(&ats, "ats", false, "print the ATS score shape as JSON")
	return cmd
}

func readCV(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
		name string
		mime string
	)
	if path == "-" {
		data, err = readLimited(cmd.InOrStdin())
		mime = extract.MimePlain
	} else {
		data, err = readFileLimited(path)
		name = filepath.Base(path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	text, err := extract.ExtractTextFromBytes(cmd.Context(), data, mime, name)
	if err != nil {
		return "", errors.Wrapf(err, "extracting text from %s", path)
	}
	return text, nil
}

func readFileLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(maxInputBytes)+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxInputBytes {
		return nil, errors.Errorf("input exceeds %d bytes", maxInputBytes)
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding output")
}

func writeReport(w io.Writer, r cvscore.AnalysisResult) {
	fmt.Fprintf(w, "Overall:  %d (%s)\n", r.OverallScore, r.Rating)
	fmt.Fprintf(w, "Format:   %d\n", r.FormatScore)
	fmt.Fprintf(w, "Skills:   %d\n", r.SkillScore)
	fmt.Fprintf(w, "Regional: %d (%s)\n", r.RegionalScore, r.RegionalRelevance)

	writeList(w, "Sections", sectionNames(r.SectionsDetected))
	writeList(w, "Skills identified", r.SkillsIdentified)
	writeList(w, "Regional markers", markerNames(r.RegionalMarkersDetected))
	writeList(w, "Strengths", r.Strengths)
	writeList(w, "Improvements", r.Improvements)
	writeList(w, "Format feedback", r.FormatFeedback)
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func sectionNames(sections []cvscore.Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = string(s)
	}
	return out
}

func markerNames(markers []cvscore.Marker) []string {
	out := make([]string, len(markers))
	for i, m := range markers {
		out[i] = strings.ReplaceAll(string(m), "-", " ")
	}
	return out
}

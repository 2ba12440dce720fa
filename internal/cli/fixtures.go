package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"cvscore-api/internal/fixtures"
)

func newReplayCommand(opts options) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <fixtures-dir>",
		Short: "Re-score stored fixtures and report any drift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := fixtures.Load(args[0])
			if err != nil {
				return errors.Wrap(err, "loading fixtures")
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			report, err := fixtures.Verify(engine, set)
			if err != nil {
				return errors.Wrap(err, "replaying fixtures")
			}

			out := cmd.OutOrStdout()
			if opts.json() {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else {
				for _, m := range report.Mismatches {
					fmt.Fprintln(out, m.String())
				}
				fmt.Fprintf(out, "checked %d fixtures, %d mismatches\n", report.Checked, len(report.Mismatches))
			}
			if !report.OK() {
				return errors.Errorf("%d fixture mismatches", len(report.Mismatches))
			}
			return nil
		},
	}
}

func newFixtureCommand(opts options) *cobra.Command {
	var dir, name string
	cmd := &cobra.Command{
		Use:   "fixture <file|->",
		Short: "Record a CV and its current result as a regression fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readCV(cmd, args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(name) == "" {
				name = args[0]
				if name == "-" {
					name = "stdin"
				}
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			f, err := fixtures.Record(engine, name, text)
			if err != nil {
				return errors.Wrap(err, "recording fixture")
			}
			path, err := fixtures.Write(dir, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (overall %d)\n", path, f.Expected.OverallScore)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "testdata/fixtures", "directory to write the fixture into")
	cmd.Flags().StringVar(&name, "name", "", "fixture name (defaults to the input path)")
	return cmd
}

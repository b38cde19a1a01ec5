package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/doccorpus/build"
	"github.com/wippyai/doccorpus/errors"
)

func newBuildCmd(a *app) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Decode every unit container, merge them and store the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := newProgress(quiet)
			opts := a.buildOptions()
			opts.Progress = p.unit

			report, err := build.Run(cmd.Context(), opts)
			p.reset()
			if err != nil {
				return err
			}
			if report.Units > 0 && report.Failed == report.Units {
				printReport(cmd.ErrOrStderr(), report)
				return errors.New(errors.PhaseBuild, errors.KindInvalidInput).
					Detail("all %d units failed to decode", report.Units).
					Build()
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.Writer().Save(cmd.Context(), report.Corpus, report)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved build %s to %s\n", id, a.cfg.Store.Path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress bar")
	return cmd
}

func printReport(w io.Writer, r *build.Report) {
	fmt.Fprintf(w, "Units: %d (%d failed)\n", r.Units, r.Failed)
	fmt.Fprintf(w, "Entities: %d\n", r.Corpus.Len())
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  unit failed: %v\n", f.Err)
	}
	for _, f := range r.MergeFailures {
		fmt.Fprintf(w, "  merge failed: %v\n", f.Err)
	}
	if n := len(r.Warnings); n > 0 {
		fmt.Fprintf(w, "Warnings: %d\n", n)
		for _, wn := range r.Warnings {
			fmt.Fprintf(w, "  %s %s: %s\n", wn.Kind, wn.Symbol, wn.Detail)
		}
	}
}

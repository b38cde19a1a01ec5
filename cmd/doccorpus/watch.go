package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/doccorpus/build"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild and store the corpus whenever unit containers change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (ctrl+c to stop)\n", a.cfg.Input.Dir)
			return build.Watch(cmd.Context(), a.buildOptions(), func(r *build.Report, err error) {
				if err != nil {
					a.log.Error("build failed", zap.Error(err))
					return
				}
				id, err := s.Writer().Save(cmd.Context(), r.Corpus, r)
				if err != nil {
					a.log.Error("save failed", zap.Error(err))
					return
				}
				printReport(out, r)
				fmt.Fprintf(out, "Saved build %s\n", id)
			})
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/meta"
	"github.com/wippyai/doccorpus/store"
)

func newSymbolsCmd(a *app) *cobra.Command {
	var (
		kind   string
		prefix string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "List the stored corpus in index order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := store.Filter{Prefix: prefix, Limit: limit}
			if kind != "" {
				k, ok := meta.ParseInfoKind(kind)
				if !ok {
					return errors.InvalidInput(errors.PhaseStore, "unknown kind "+kind)
				}
				filter.Kind = k
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			rows, err := s.Reader().Symbols(cmd.Context(), filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range rows {
				fmt.Fprintf(out, "%-9s %s", r.Kind, r.QualifiedName)
				if r.Brief != "" {
					fmt.Fprintf(out, "  - %s", r.Brief)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only this kind: namespace, record, function, enum, typedef")
	cmd.Flags().StringVar(&prefix, "prefix", "", "qualified-name prefix")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 = all)")
	return cmd
}

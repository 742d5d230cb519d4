package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xraph/depot"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>...",
		Short: "Show what identifiers resolve to",
		Long: `Follow each identifier through the alias table and print the chain, the
terminal identifier and the factory that would build it. Nothing is
instantiated.

Examples:
  depot resolve -f app.yaml database
  depot resolve -f app.yaml database cache -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load()
			if err != nil {
				return err
			}

			entries := make([]entry, 0, len(args))
			for _, id := range args {
				if !d.Has(id) {
					return depot.ErrServiceNotFound(id)
				}
				entries = append(entries, newEntry(d.Inspect(id)))
			}

			if format := a.v.GetString(keyOutput); format != "" {
				return writeEntries(a.out, format, entries)
			}

			for _, e := range entries {
				chain := e.ID
				if len(e.Chain) > 0 {
					chain = strings.Join(e.Chain, " -> ")
				}
				fmt.Fprintf(a.out, "%s (%s)\n", chain, dash(e.Factory))
			}

			return nil
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/xraph/depot"
)

func newGraphCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the alias graph in Graphviz DOT format",
		Long: `Print every identifier and alias edge of the merged payload files as a
Graphviz digraph.

Examples:
  depot graph -f app.yaml | dot -Tsvg > aliases.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.load()
			if err != nil {
				return err
			}

			return depot.NewAliasGraph(d).WriteDOT(a.out)
		},
	}
}

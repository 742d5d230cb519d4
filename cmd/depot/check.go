package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xraph/depot"
)

func newCheckCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate payload files",
		Long: `Load and merge the payload files, reporting malformed entries and alias
cycles. Aliases whose terminal is neither a service nor a factory are
reported as dangling; with --strict they fail the check.

Examples:
  depot check -f base.yaml -f local.jsonc
  depot check -f app.yaml --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.load()
			if err != nil {
				return err
			}

			dangling := danglingAliases(d)
			for _, info := range dangling {
				fmt.Fprintf(a.out, "dangling alias: %s -> %s\n", info.ID, info.Terminal)
			}

			counts := make(map[depot.Kind]int)
			for _, id := range d.Identifiers() {
				counts[d.Inspect(id).Kind]++
			}
			fmt.Fprintf(a.out, "ok: %d services, %d factories, %d aliases\n",
				counts[depot.KindService], counts[depot.KindFactory], counts[depot.KindAlias])

			if strict && len(dangling) > 0 {
				return fmt.Errorf("%d dangling aliases", len(dangling))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on dangling aliases")

	return cmd
}

// danglingAliases returns aliases whose terminal resolves to nothing.
func danglingAliases(d depot.Depot) []depot.ServiceInfo {
	var out []depot.ServiceInfo
	for _, info := range depot.FindByKind(d, depot.KindAlias) {
		if !d.Has(info.ID) {
			out = append(out, info)
		}
	}
	return out
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xraph/depot"
)

// entry is the printable form of one identifier.
type entry struct {
	ID       string   `json:"id" yaml:"id"`
	Kind     string   `json:"kind" yaml:"kind"`
	Terminal string   `json:"terminal,omitempty" yaml:"terminal,omitempty"`
	Chain    []string `json:"chain,omitempty" yaml:"chain,omitempty"`
	Factory  string   `json:"factory,omitempty" yaml:"factory,omitempty"`
	Service  string   `json:"service,omitempty" yaml:"service,omitempty"`
}

func newEntry(info depot.ServiceInfo) entry {
	e := entry{
		ID:      info.ID,
		Kind:    string(info.Kind),
		Factory: info.Factory,
		Service: info.Type,
	}
	if info.Terminal != info.ID {
		e.Terminal = info.Terminal
		e.Chain = info.Chain
	}
	return e
}

func newListCmd(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured identifiers",
		Long: `List every identifier of the merged payload files with its kind, the
identifier it resolves to and its factory.

Examples:
  depot list -f app.yaml
  depot list -f app.yaml --kind alias
  depot list -f app.yaml -o json | jq '.[].id'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.load()
			if err != nil {
				return err
			}

			var infos []depot.ServiceInfo
			if kind != "" {
				infos = depot.FindByKind(d, depot.Kind(kind))
			} else {
				infos = depot.Query(d, depot.ServiceQuery{})
			}

			entries := make([]entry, len(infos))
			for i, info := range infos {
				entries[i] = newEntry(info)
			}

			return writeEntries(a.out, a.v.GetString(keyOutput), entries)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only list one kind (alias, factory, service)")

	return cmd
}

// writeEntries renders entries in the requested format.
func writeEntries(w io.Writer, format string, entries []entry) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(entries)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tKIND\tTERMINAL\tFACTORY")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Kind, dash(e.Terminal), dash(e.Factory))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want %s)", format, strings.Join([]string{"table", "json", "yaml"}, ", "))
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

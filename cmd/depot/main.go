// Command depot inspects container configuration files.
//
// It loads YAML and JSONC payload files, merges them in order the way a
// running application would, and reports what the resulting container holds:
//
//	depot check -f base.yaml -f local.jsonc
//	depot list -f app.yaml --kind alias
//	depot resolve -f app.yaml database
//	depot graph -f app.yaml | dot -Tsvg > aliases.svg
//	depot watch -f app.yaml
package main

import (
	"fmt"
	"os"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	root.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

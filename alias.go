package depot

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Alias resolution paths, reported in debug logs.
const (
	aliasPathFull        = "full"
	aliasPathIncremental = "incremental"
)

// addAliases merges new raw aliases and brings resolvedAliases up to date.
// Must hold c.mu.Lock.
//
// Before the first merge completes the whole table is re-resolved. Afterwards,
// a batch sharing keys with the existing table is re-resolved in full, while a
// disjoint batch only resolves its own keys and re-chases existing entries
// whose terminal became an alias.
func (c *containerImpl) addAliases(aliases map[string]string) error {
	if !c.initialized {
		for alias, target := range aliases {
			c.aliases[alias] = target
		}
		c.logger.Debug("resolving aliases",
			zap.String("path", aliasPathFull),
			zap.Int("aliases", len(c.aliases)),
		)

		return c.resolveAliases(c.aliases)
	}

	collision := false
	for alias := range aliases {
		if _, exists := c.aliases[alias]; exists {
			collision = true
			break
		}
	}

	for alias, target := range aliases {
		c.aliases[alias] = target
	}

	if collision {
		c.logger.Debug("resolving aliases",
			zap.String("path", aliasPathFull),
			zap.Int("aliases", len(c.aliases)),
		)

		return c.resolveAliases(c.aliases)
	}

	c.logger.Debug("resolving aliases",
		zap.String("path", aliasPathIncremental),
		zap.Int("aliases", len(aliases)),
	)

	if err := c.resolveAliases(aliases); err != nil {
		return err
	}
	c.repairResolved(aliases)

	return nil
}

// resolveAliases records the terminal of every alias in set, walking chains
// through the full raw table. Must hold c.mu.Lock.
func (c *containerImpl) resolveAliases(set map[string]string) error {
	for alias := range set {
		terminal, ok := walkAlias(c.aliases, alias)
		if !ok {
			return ErrCyclicAlias(set)
		}
		c.resolvedAliases[alias] = terminal
	}

	return nil
}

// repairResolved re-points resolved entries whose terminal is one of the
// freshly added aliases. Must hold c.mu.Lock.
func (c *containerImpl) repairResolved(added map[string]string) {
	for alias, terminal := range c.resolvedAliases {
		if _, superseded := added[terminal]; superseded {
			c.resolvedAliases[alias] = c.resolvedAliases[terminal]
		}
	}
}

// walkAlias follows id through aliases until it reaches an identifier that is
// not an alias. It returns false if the walk revisits a node.
func walkAlias(aliases map[string]string, id string) (string, bool) {
	visited := make(map[string]bool)

	for {
		target, isAlias := aliases[id]
		if !isAlias {
			return id, true
		}
		if visited[id] {
			return "", false
		}
		visited[id] = true
		id = target
	}
}

// aliasChain returns the identifiers visited from id to its terminal,
// including both ends. Cycles stop at the first repeated node.
func aliasChain(aliases map[string]string, id string) []string {
	chain := []string{id}
	visited := map[string]bool{id: true}

	for {
		target, isAlias := aliases[id]
		if !isAlias || visited[target] {
			return chain
		}
		visited[target] = true
		chain = append(chain, target)
		id = target
	}
}

// formatAliases renders an alias map deterministically for error messages.
func formatAliases(aliases map[string]string) string {
	keys := make([]string, 0, len(aliases))
	for alias := range aliases {
		keys = append(keys, alias)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, alias := range keys {
		parts = append(parts, alias+" -> "+aliases[alias])
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

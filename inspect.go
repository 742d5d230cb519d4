package depot

import (
	"fmt"
	"sort"
)

// Kind describes how an identifier is configured.
type Kind string

const (
	// KindAlias is an identifier redirecting to another identifier.
	KindAlias Kind = "alias"

	// KindFactory is an identifier with a configured factory.
	KindFactory Kind = "factory"

	// KindService is an identifier holding a pre-built or cached instance only.
	KindService Kind = "service"

	// KindUnknown is an identifier the container knows nothing about.
	KindUnknown Kind = "unknown"
)

// ServiceInfo contains diagnostic information about an identifier.
type ServiceInfo struct {
	ID string

	// Kind is how ID itself is configured; aliases win over factories,
	// factories over services.
	Kind Kind

	// Terminal is the identifier ID resolves to; equal to ID for non-aliases.
	Terminal string

	// Chain lists the raw alias hops from ID to Terminal, both included.
	Chain []string

	// Instantiated is true when a shared instance is cached under ID.
	Instantiated bool

	// Type is the dynamic type of the cached instance, if any.
	Type string

	// Factory names the terminal's factory class, or its Go type.
	Factory string

	// FactoryLoaded is true once the terminal's factory is instantiated.
	FactoryLoaded bool
}

// Identifiers returns all service, factory and alias identifiers, sorted.
func (c *containerImpl) Identifiers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{}, len(c.services)+len(c.factories)+len(c.aliases))
	for id := range c.services {
		seen[id] = struct{}{}
	}
	for id := range c.factories {
		seen[id] = struct{}{}
	}
	for id := range c.aliases {
		seen[id] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Inspect returns diagnostic information about an identifier.
func (c *containerImpl) Inspect(id string) ServiceInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	terminal := c.terminal(id)
	info := ServiceInfo{
		ID:       id,
		Kind:     KindUnknown,
		Terminal: terminal,
		Chain:    aliasChain(c.aliases, id),
	}

	service, cached := c.services[id]
	ref, hasFactory := c.factories[id]
	_, isAlias := c.aliases[id]

	switch {
	case isAlias:
		info.Kind = KindAlias
	case hasFactory:
		info.Kind = KindFactory
	case cached:
		info.Kind = KindService
	}

	if cached {
		info.Instantiated = true
		info.Type = fmt.Sprintf("%T", service)
	}

	if terminal != id {
		ref, hasFactory = c.factories[terminal]
	}
	if hasFactory {
		info.Factory = ref.String()
		info.FactoryLoaded = ref.Resolved()
	}

	return info
}

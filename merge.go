package depot

import (
	"fmt"

	"go.uber.org/zap"
)

// Merge applies cfg to the container. It always returns the receiver so calls
// can be chained; on error the merge stopped part-way and the sections handled
// before the failure stay applied.
func (c *containerImpl) Merge(cfg Config) (Depot, error) {
	if err := validateConfig(cfg); err != nil {
		return c, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.merge(cfg); err != nil {
		return c, err
	}

	return c, nil
}

// merge applies cfg section by section. Must hold c.mu.Lock.
func (c *containerImpl) merge(cfg Config) error {
	for id, service := range cfg.Services {
		c.services[id] = service
	}

	aliases := cfg.Aliases
	factories := cfg.Factories

	if len(cfg.Invokables) > 0 {
		invAliases, invFactories := expandInvokables(cfg.Invokables)

		if len(invAliases) > 0 {
			aliases = union(aliases, invAliases)
		}
		factories = union(factories, invFactories)
	}

	for id, ref := range factories {
		c.factories[id] = ref
	}

	c.logger.Debug("merging configuration",
		zap.Int("services", len(cfg.Services)),
		zap.Int("factories", len(factories)),
		zap.Int("aliases", len(aliases)),
		zap.Int("invokables", len(cfg.Invokables)),
		zap.Bool("initialized", c.initialized),
	)

	if aliases != nil {
		if err := c.addAliases(aliases); err != nil {
			return err
		}
	} else if !c.initialized && len(c.aliases) > 0 {
		if err := c.resolveAliases(c.aliases); err != nil {
			return err
		}
	}

	c.initialized = true

	return nil
}

// SetService registers a pre-built instance.
func (c *containerImpl) SetService(id string, service any) error {
	_, err := c.Merge(Config{Services: map[string]any{id: service}})
	return err
}

// SetFactory registers a factory for id.
func (c *containerImpl) SetFactory(id string, ref FactoryRef) error {
	_, err := c.Merge(Config{Factories: map[string]FactoryRef{id: ref}})
	return err
}

// SetAlias points alias at target.
func (c *containerImpl) SetAlias(alias, target string) error {
	_, err := c.Merge(Config{Aliases: map[string]string{alias: target}})
	return err
}

// SetInvokable registers an invokable type; an empty class means id itself.
func (c *containerImpl) SetInvokable(id, class string) error {
	if class == "" {
		class = id
	}
	_, err := c.Merge(Config{Invokables: map[string]string{id: class}})
	return err
}

// validateConfig rejects empty identifiers and empty factory references.
func validateConfig(cfg Config) error {
	for id := range cfg.Services {
		if id == "" {
			return ErrInvalidArgument("service identifier cannot be empty")
		}
	}

	for id, ref := range cfg.Factories {
		if id == "" {
			return ErrInvalidArgument("factory identifier cannot be empty")
		}
		if ref.IsZero() {
			return ErrInvalidArgument(fmt.Sprintf("factory for '%s' cannot be nil", id))
		}
	}

	for alias, target := range cfg.Aliases {
		if alias == "" {
			return ErrInvalidArgument("alias identifier cannot be empty")
		}
		if target == "" {
			return ErrInvalidArgument(fmt.Sprintf("alias '%s' has an empty target", alias))
		}
	}

	for id := range cfg.Invokables {
		if id == "" {
			return ErrInvalidArgument("invokable identifier cannot be empty")
		}
	}

	return nil
}

// union returns a new map holding base overlaid with overlay.
func union[V any](base, overlay map[string]V) map[string]V {
	out := make(map[string]V, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

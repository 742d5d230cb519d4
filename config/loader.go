package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xraph/depot"
)

// Loader reads payload files into a single depot.Config.
type Loader struct {
	env    *Env
	logger *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEnv sets the environment used for ${NAME} expansion.
// Without it only the process environment is consulted.
func WithEnv(env *Env) LoaderOption {
	return func(l *Loader) {
		l.env = env
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		env:    &Env{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every path in order and combines them, later files winning on
// conflicting identifiers.
func (l *Loader) Load(paths ...string) (depot.Config, error) {
	configs, err := l.LoadEach(paths...)
	if err != nil {
		return depot.Config{}, err
	}

	return depot.Combine(configs...), nil
}

// LoadEach reads every path in order and returns one payload per file.
func (l *Loader) LoadEach(paths ...string) ([]depot.Config, error) {
	configs := make([]depot.Config, 0, len(paths))

	for _, path := range paths {
		file, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := file.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		l.env.ExpandServices(file)
		configs = append(configs, file.Config())

		l.logger.Debug("config file loaded",
			zap.String("path", path),
			zap.Int("services", len(file.Services)),
			zap.Int("factories", len(file.Factories)),
			zap.Int("aliases", len(file.Aliases)),
			zap.Int("invokables", len(file.Invokables)),
		)
	}

	return configs, nil
}

// LoadInto loads paths and merges them into d one file at a time. Nothing is
// merged unless every file parses.
func (l *Loader) LoadInto(d depot.Depot, paths ...string) error {
	configs, err := l.LoadEach(paths...)
	if err != nil {
		return err
	}

	if err := depot.MergeAll(d, configs...); err != nil {
		return fmt.Errorf("merging config: %w", err)
	}

	return nil
}

// Load reads paths with a default loader.
func Load(paths ...string) (depot.Config, error) {
	return NewLoader().Load(paths...)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xraph/depot"
	"github.com/xraph/depot/config"
)

// Setting keys shared by flags, environment and the settings file.
const (
	keyFiles    = "files"
	keyEnvFiles = "env-files"
	keyLogLevel = "log-level"
	keyOutput   = "output"
)

// app holds state shared by every command.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
	logger *zap.Logger

	settingsFile string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		out:    out,
		errOut: errOut,
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:   "depot",
		Short: "Inspect dependency container configuration files",
		Long: `Load container payload files (YAML or JSONC), merge them in order and
report the identifiers, aliases and factories the resulting container holds.

Settings can also come from DEPOT_* environment variables or a settings file:
  DEPOT_FILES="base.yaml local.yaml" depot list`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.settingsFile, "settings", "", "settings file for the depot command itself")
	flags.StringSliceP(keyFiles, "f", nil, "payload file to load (repeatable, merged in order)")
	flags.StringSlice(keyEnvFiles, nil, "dotenv file used for ${NAME} expansion (repeatable)")
	flags.String(keyLogLevel, "warn", "log level (debug, info, warn, error)")
	flags.StringP(keyOutput, "o", "", "output format (table, json, yaml)")

	// Bind flags to viper
	_ = a.v.BindPFlags(flags)

	a.v.SetEnvPrefix("DEPOT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newCheckCmd(a),
		newListCmd(a),
		newResolveCmd(a),
		newGraphCmd(a),
		newWatchCmd(a),
	)

	return root
}

// setup reads the settings file and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.settingsFile != "" {
		a.v.SetConfigFile(a.settingsFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading settings: %w", err)
		}
	}

	logger, err := newLogger(a.v.GetString(keyLogLevel), a.errOut)
	if err != nil {
		return err
	}
	a.logger = logger

	return nil
}

// newLogger builds a console logger writing to w.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		lvl,
	)

	return zap.New(core), nil
}

// files returns the payload files from flags, environment or settings.
func (a *app) files() ([]string, error) {
	files := a.v.GetStringSlice(keyFiles)
	if len(files) == 0 {
		return nil, errors.New("no payload files given; use -f or DEPOT_FILES")
	}
	return files, nil
}

// loader builds a config loader honoring the env files setting.
func (a *app) loader() (*config.Loader, error) {
	env, err := config.NewEnv(a.v.GetStringSlice(keyEnvFiles)...)
	if err != nil {
		return nil, err
	}

	return config.NewLoader(config.WithEnv(env), config.WithLogger(a.logger)), nil
}

// load merges every payload file into a fresh container.
func (a *app) load() (depot.Depot, error) {
	files, err := a.files()
	if err != nil {
		return nil, err
	}

	loader, err := a.loader()
	if err != nil {
		return nil, err
	}

	d, err := depot.New(depot.Config{}, depot.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	if err := loader.LoadInto(d, files...); err != nil {
		return nil, err
	}

	return d, nil
}

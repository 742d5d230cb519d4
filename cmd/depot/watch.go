package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xraph/depot/config"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-check payload files whenever they change",
		Long: `Load the payload files, then reload and merge them on every change until
interrupted. Each reload prints the resulting identifier count or the error.

Examples:
  depot watch -f app.yaml --debounce 500ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.watch(ctx, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "quiet period before reloading")

	return cmd
}

// watch runs the reload loop until ctx is done.
func (a *app) watch(ctx context.Context, debounce time.Duration) error {
	d, err := a.load()
	if err != nil {
		return err
	}

	files, err := a.files()
	if err != nil {
		return err
	}

	loader, err := a.loader()
	if err != nil {
		return err
	}

	cfg := config.DefaultWatcherConfig(files...)
	cfg.Debounce = debounce

	w, err := config.NewWatcher(d, loader, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	reloads, err := w.Start()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "watching %d files, %d identifiers\n", len(files), len(d.Identifiers()))

	for {
		select {
		case r := <-reloads:
			if r.Err != nil {
				fmt.Fprintf(a.out, "reload failed: %v\n", r.Err)
				continue
			}
			fmt.Fprintf(a.out, "reloaded: %d identifiers\n", len(d.Identifiers()))
		case <-ctx.Done():
			a.logger.Debug("watch stopped", zap.Error(ctx.Err()))
			return nil
		}
	}
}

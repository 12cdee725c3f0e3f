package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zjrosen/requisite/internal/api"
	"github.com/zjrosen/requisite/internal/flags"
	"github.com/zjrosen/requisite/internal/log"
	"github.com/zjrosen/requisite/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the checklist over HTTP",
	Long: `Expose the checklist as a JSON API with a server-sent event stream of
configuration changes. Manifest files are reloaded when they change unless
watching is disabled.

Example:
  requisite serve                    # Listen on server.addr from config
  requisite serve --addr :8080       # Listen on port 8080`,
	Args: cobra.NoArgs,
	RunE: runWithApp(runServe),
}

func init() {
	serveCmd.Flags().String("addr", "", "address to listen on (overrides config)")
	serveCmd.Flags().Bool("log-stderr", false, "write logs to stderr")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string, a *app) error {
	if toStderr, _ := cmd.Flags().GetBool("log-stderr"); toStderr {
		log.InitWriter(os.Stderr)
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	server, err := api.NewServer(api.ServerConfig{
		Addr:      addr,
		Checklist: a.svc,
		Metrics:   a.metrics,
		Tracer:    a.tracing.Tracer(),
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)

	if cfg.Watch.Enabled && a.flags.Enabled(flags.FlagManifestWatch) {
		g.Go(func() error {
			watchManifests(gctx, a)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		// Ends open event streams so Shutdown does not wait on them.
		a.bus.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Stop(shutdownCtx)
	})

	fmt.Fprintf(cmd.OutOrStdout(), "requisite listening on %s (%d requirements)\n", server.Addr(), a.svc.Registry().Len())

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "stopped")
	return nil
}

// watchManifests reloads the checklist whenever a manifest source changes,
// until ctx is done. A failed reload keeps the previous checklist.
func watchManifests(ctx context.Context, a *app) {
	wcfg := watcher.DefaultConfig(a.svc.Sources()...)
	if cfg.Watch.Debounce > 0 {
		wcfg.DebounceDur = cfg.Watch.Debounce
	}
	w, err := watcher.New(wcfg)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Creating watcher failed", err)
		return
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if errors.Is(err, watcher.ErrNothingToWatch) {
		log.Info(log.CatWatcher, "No manifest files to watch")
		return
	}
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Starting watcher failed", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			if err := a.svc.Reload(ctx); err != nil {
				// Reload logs and counts the failure.
				continue
			}
			log.Info(log.CatWatcher, "Manifests reloaded", "requirements", a.svc.Registry().Len())
		}
	}
}

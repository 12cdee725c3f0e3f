package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/zjrosen/requisite/internal/config"
	"github.com/zjrosen/requisite/internal/events"
	"github.com/zjrosen/requisite/internal/flags"
	"github.com/zjrosen/requisite/internal/infrastructure"
	"github.com/zjrosen/requisite/internal/log"
	"github.com/zjrosen/requisite/internal/manifests"
	"github.com/zjrosen/requisite/internal/metrics"
	"github.com/zjrosen/requisite/internal/paths"
	"github.com/zjrosen/requisite/internal/presentation"
	appreq "github.com/zjrosen/requisite/internal/requirement/application"
	"github.com/zjrosen/requisite/internal/state"
	"github.com/zjrosen/requisite/internal/tracing"
)

// app bundles everything a command needs. Close releases it.
type app struct {
	svc     *appreq.ChecklistService
	store   state.Store
	bus     *events.Bus
	metrics *metrics.Metrics
	tracing *tracing.Provider
	flags   *flags.Registry

	closeLog func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg.Tracing.FilePath = tracesPath(cfg.Tracing)
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &app{closeLog: func() {}}
	if err := a.initLogging(); err != nil {
		return nil, err
	}

	a.flags = flags.New(cfg.Flags)

	tp, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	})
	if err != nil {
		a.closeLog()
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	a.tracing = tp

	store, err := infrastructure.OpenStore(ctx, cfg.State, a.flags)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store

	if err := state.Seed(ctx, store, cfg.Capabilities); err != nil {
		a.Close()
		return nil, fmt.Errorf("seeding capabilities: %w", err)
	}

	a.bus = events.NewBus()
	a.metrics = metrics.New()

	sc := appreq.ServiceConfig{
		Paths:   cfg.Manifests.Paths,
		Store:   store,
		Events:  a.bus,
		Metrics: a.metrics,
		Tracer:  tp.Tracer(),
	}
	if cfg.Manifests.Builtin {
		sc.Builtin = manifests.FS()
		sc.BuiltinRoot = manifests.Root
	}
	if a.flags.Enabled(flags.FlagUserManifests) {
		sc.UserDir = cfg.Manifests.UserDir
	}

	svc, err := appreq.NewChecklistService(sc)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("loading checklist: %w", err)
	}
	a.svc = svc
	return a, nil
}

func (a *app) initLogging() error {
	if !debugFlag && os.Getenv("REQUISITE_DEBUG") == "" {
		log.SetEnabled(false)
		return nil
	}
	logPath := os.Getenv("REQUISITE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	a.closeLog = cleanup
	log.Info(log.CatConfig, "requisite starting", "version", version, "logPath", logPath)
	return nil
}

// Close flushes traces and closes the store and log file.
func (a *app) Close() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.ErrorErr(log.CatState, "Closing state store failed", err)
		}
	}
	if a.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracing.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatConfig, "Tracing shutdown failed", err)
		}
	}
	a.closeLog()
}

func tracesPath(t config.TracingConfig) string {
	if t.FilePath != "" {
		return paths.ExpandHome(t.FilePath)
	}
	return paths.TracesFile()
}

// newFormatter builds a formatter from the output config.
func newFormatter(w io.Writer) (*presentation.Formatter, error) {
	format, err := presentation.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return presentation.NewFormatter(w,
		presentation.WithFormat(format),
		presentation.WithWidth(outputWidth()),
		presentation.WithMarkdownStyle(cfg.Output.MarkdownStyle),
	), nil
}

func outputWidth() int {
	if cfg.Output.Width > 0 {
		return cfg.Output.Width
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return presentation.DefaultWidth
}

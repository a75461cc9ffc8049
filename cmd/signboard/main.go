package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"signboard/pkg/config"
	"signboard/pkg/feed"
	"signboard/pkg/repository"
	"signboard/pkg/scheduler"
	"signboard/pkg/weather"
	"signboard/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"signboard.yml" description:"config file path"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides the config value"`

	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

const fetchTimeout = 30 * time.Second

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

// run loads the config, wires the service and blocks until ctx is canceled
// or the server fails.
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	wcfg := cfg.GetWeatherConfig()
	var secrets []string
	if wcfg.APIKey != "" {
		secrets = append(secrets, wcfg.APIKey)
	}
	setupLog(opts.Debug, opts.NoColor, secrets...)

	log.Printf("[INFO] starting signboard %s", revision)

	store, err := repository.New(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open cache store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("[WARN] failed to close cache store: %v", closeErr)
		}
	}()

	fetcher := feed.NewFetcher(fetchTimeout, "signboard/"+revision, store)

	feedCfgs := cfg.GetFeeds()
	sources := make([]feed.Source, 0, len(feedCfgs))
	polls := make([]scheduler.FeedSource, 0, len(feedCfgs))
	for _, f := range feedCfgs {
		sources = append(sources, feed.Source{
			Name:      f.Name,
			URL:       f.URL,
			Title:     f.Title,
			Variant:   f.Variant,
			MaxItems:  f.MaxItems,
			Locations: f.Locations,
		})
		polls = append(polls, scheduler.FeedSource{Name: f.Name, Interval: f.UpdateInterval})
	}

	manager, err := feed.NewManager(fetcher, sources)
	if err != nil {
		return fmt.Errorf("failed to create feed manager: %w", err)
	}

	// keep weather interfaces nil unless enabled, a typed nil would
	// defeat the nil checks downstream
	var weatherSvc server.WeatherService
	var weatherUpd scheduler.WeatherUpdater
	if wcfg.Enabled {
		svc := weather.NewService(wcfg, store)
		svc.Load(ctx) // show cached conditions until the first fetch lands
		weatherSvc, weatherUpd = svc, svc
	}

	sched := scheduler.NewScheduler(manager, weatherUpd, store, scheduler.Config{
		Feeds:            polls,
		WeatherInterval:  wcfg.UpdateInterval,
		ForecastInterval: wcfg.ForecastInterval,
		CleanupInterval:  cfg.Schedule.CleanupInterval,
	})

	srv, err := server.New(cfg, manager, weatherSvc, revision, opts.Debug)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Start(gctx)
		<-gctx.Done()
		sched.Stop()
		return nil
	})
	g.Go(func() error {
		if serverErr := srv.Run(gctx); serverErr != nil {
			return fmt.Errorf("server failed: %w", serverErr)
		}
		return nil
	})
	return g.Wait()
}

// setupLog configures the logger, hiding the given secrets from output
func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}

	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

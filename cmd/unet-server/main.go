package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/netloom/unet/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
)

type config struct {
	Addr                string
	TPS                 float32
	KeepAliveTicks      uint64
	TimeoutTicks        uint64
	MaxPacketsPerTick   float32
	MaxPacketsPerTickOn bool
	MetricsAddr         string
	EnvFile             string
	Verbose             bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()
	log := newLogger(cfg.Verbose)

	srvCfg := server.DefaultServerConfig()
	if cfg.EnvFile != "" {
		overlay, err := server.LoadServerConfigEnv(cfg.EnvFile)
		if err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		srvCfg = overlay
	}

	// Flags passed explicitly win over the env file; flag defaults do not.
	fl := flag.CommandLine
	if fl.Changed("addr") {
		srvCfg.Addr = cfg.Addr
	}
	if fl.Changed("tps") {
		srvCfg.TPS = cfg.TPS
	}
	if fl.Changed("keep-alive-ticks") {
		srvCfg.KeepAliveTicks = cfg.KeepAliveTicks
	}
	if fl.Changed("timeout-ticks") {
		srvCfg.TimeoutTicks = cfg.TimeoutTicks
	}
	if cfg.MaxPacketsPerTickOn {
		srvCfg.MaxRollingPacketsPerTick = &cfg.MaxPacketsPerTick
	}
	srvCfg.Logger = log
	registry := prometheus.NewRegistry()
	srvCfg.Registry = registry

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			log.Info("metrics server listening", "addr", cfg.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server error", "error", err)
			}
		}()
		defer metricsSrv.Close()
	}

	log.Info("server starting", "addr", srvCfg.Addr, "tps", srvCfg.TPS)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server run: %w", err)
	}
	log.Info("server shutdown complete")
	return nil
}

func parseFlags() *config {
	cfg := &config{}
	defaults := server.DefaultServerConfig()

	flag.StringVar(&cfg.Addr, "addr", defaults.Addr, "UDP bind address")
	flag.Float32Var(&cfg.TPS, "tps", defaults.TPS, "ticks per second")
	flag.Uint64Var(&cfg.KeepAliveTicks, "keep-alive-ticks", defaults.KeepAliveTicks, "ticks between keep-alives")
	flag.Uint64Var(&cfg.TimeoutTicks, "timeout-ticks", defaults.TimeoutTicks, "ticks of silence before a slot is timed out")
	flag.Float32Var(&cfg.MaxPacketsPerTick, "max-packets-per-tick", 0, "smoothed packets/tick at or above which a connection is kicked for spam")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "address to serve /metrics on (empty disables)")
	flag.StringVar(&cfg.EnvFile, "env-file", "", "optional .env-style file overlaid on top of flag defaults")
	flag.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")

	flag.Parse()
	cfg.MaxPacketsPerTickOn = flag.CommandLine.Changed("max-packets-per-tick")
	return cfg
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	}))
}

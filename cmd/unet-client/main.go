package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/netloom/unet/internal/client"
	flag "github.com/spf13/pflag"
)

type config struct {
	Target                   string
	ServerNotRespondingTicks uint64
	ServerNotRespondingOn    bool
	EnvFile                  string
	Verbose                  bool
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

	cliCfg := client.DefaultClientConfig()
	if cfg.EnvFile != "" {
		overlay, err := client.LoadClientConfigEnv(cfg.EnvFile)
		if err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		cliCfg = overlay
	}

	// Flags passed explicitly win over the env file; flag defaults do not.
	if flag.CommandLine.Changed("target") || cliCfg.Target == "" {
		cliCfg.Target = cfg.Target
	}
	if cfg.ServerNotRespondingOn {
		cliCfg.ServerNotRespondingTicks = &cfg.ServerNotRespondingTicks
	}
	cliCfg.Logger = log

	c, err := client.New(cliCfg)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer c.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("client starting", "target", cliCfg.Target, "peer_id", c.ID())
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("client run: %w", err)
	}

	if reason, ok := c.DisconnectReason(); ok {
		log.Info("client disconnected", "reason", reason)
	}
	return nil
}

func parseFlags() *config {
	cfg := &config{}

	flag.StringVar(&cfg.Target, "target", "127.0.0.1:10010", "server address to dial")
	flag.Uint64Var(&cfg.ServerNotRespondingTicks, "server-not-responding-ticks", 0, "ticks of silence before the client gives up on the server")
	flag.StringVar(&cfg.EnvFile, "env-file", "", "optional .env-style file overlaid on top of flag defaults")
	flag.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")

	flag.Parse()
	cfg.ServerNotRespondingOn = flag.CommandLine.Changed("server-not-responding-ticks")
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

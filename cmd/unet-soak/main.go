// Command unet-soak fans out MAX_CONNECTIONS independent clients against
// a single server, each on its own goroutine with its own Transport, and
// runs them until the group is cancelled.
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
	"github.com/netloom/unet/internal/server"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var target string
	var verbose bool
	flag.StringVar(&target, "target", "127.0.0.1:10010", "server address to dial")
	flag.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.RFC3339}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < server.MaxConnections; i++ {
		i := i
		g.Go(func() error {
			cfg := client.DefaultClientConfig()
			cfg.Target = target
			cfg.Logger = log.With("client", i)

			c, err := client.New(cfg)
			if err != nil {
				return fmt.Errorf("client %d: create: %w", i, err)
			}
			defer c.Close()

			return c.Run(gctx)
		})
	}

	log.Info("soak started", "target", target, "clients", server.MaxConnections)
	if err := g.Wait(); err != nil && gctx.Err() == nil {
		return fmt.Errorf("soak: %w", err)
	}
	log.Info("soak shutdown complete")
	return nil
}

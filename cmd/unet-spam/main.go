// Command unet-spam connects to a server and floods it with Data
// packets as fast as the tick loop allows, for exercising
// flood-detection thresholds.
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
	"github.com/netloom/unet/pkg/packet"
	flag "github.com/spf13/pflag"
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

	cfg := client.DefaultClientConfig()
	cfg.Target = target
	cfg.Logger = log

	c, err := client.New(cfg)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer c.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("spamming server", "target", target, "peer_id", c.ID())
	var count int32
	for ctx.Err() == nil {
		if err := c.Send(packet.NewData(c.ID(), count)); err != nil {
			break
		}
		count++
		if !c.Tick() {
			break
		}
	}
	return nil
}

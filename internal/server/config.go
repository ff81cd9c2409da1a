package server

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/netloom/unet/internal/metrics"
	"github.com/netloom/unet/pkg/envconfig"
	"github.com/netloom/unet/pkg/transport"
	"github.com/prometheus/client_golang/prometheus"
)

// MaxConnections is the fixed capacity of the server's slot table. It is a
// protocol-visible constant, not a tunable.
const MaxConnections = 256

const defaultRollingWindow = 10

// ServerConfig configures a Server. The zero value is not usable; build
// one with DefaultServerConfig and override fields as needed.
type ServerConfig struct {
	Addr string
	TPS  float32

	KeepAliveTicks uint64
	TimeoutTicks   uint64

	// MaxRollingPacketsPerTick enables flood detection when non-nil: a
	// connection whose rolling-average packets-per-tick meets or exceeds
	// this value is kicked with Spam.
	MaxRollingPacketsPerTick *float32
	RollingAverageWindow     int

	Logger   *slog.Logger
	Clock    clockwork.Clock
	Registry *prometheus.Registry

	// Transport overrides the real UDP socket the server would otherwise
	// bind to Addr; tests inject a *transport.Virtual here.
	Transport transport.Transport
}

// DefaultServerConfig returns the compiled-in defaults: bind address
// 127.0.0.1:10010, 20 TPS, a 4s connection timeout, and a 0.2s keep-alive
// frequency, both expressed in ticks at the default rate.
func DefaultServerConfig() ServerConfig {
	const tps = 20.0
	return ServerConfig{
		Addr:                 "127.0.0.1:10010",
		TPS:                  tps,
		KeepAliveTicks:       uint64(0.2 * tps),
		TimeoutTicks:         uint64(4 * tps),
		RollingAverageWindow: defaultRollingWindow,
	}
}

func (c *ServerConfig) applyDefaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.RollingAverageWindow == 0 {
		c.RollingAverageWindow = defaultRollingWindow
	}
	if c.TPS == 0 {
		c.TPS = 20.0
	}
}

// LoadServerConfigEnv starts from DefaultServerConfig and overlays any of
// UNET_ADDR, UNET_TPS, UNET_KEEP_ALIVE_TICKS, UNET_TIMEOUT_TICKS, and
// UNET_MAX_PACKETS_PER_TICK found in the .env-style file at path. Keys
// absent from the file leave the default untouched.
func LoadServerConfigEnv(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	vars, err := envconfig.Parse(path)
	if err != nil {
		return ServerConfig{}, err
	}

	if v, ok := vars["UNET_ADDR"]; ok {
		cfg.Addr = v
	}
	if v, ok := vars["UNET_TPS"]; ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("server: parse UNET_TPS: %w", err)
		}
		cfg.TPS = float32(f)
	}
	if v, ok := vars["UNET_KEEP_ALIVE_TICKS"]; ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("server: parse UNET_KEEP_ALIVE_TICKS: %w", err)
		}
		cfg.KeepAliveTicks = n
	}
	if v, ok := vars["UNET_TIMEOUT_TICKS"]; ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("server: parse UNET_TIMEOUT_TICKS: %w", err)
		}
		cfg.TimeoutTicks = n
	}
	if v, ok := vars["UNET_MAX_PACKETS_PER_TICK"]; ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("server: parse UNET_MAX_PACKETS_PER_TICK: %w", err)
		}
		f32 := float32(f)
		cfg.MaxRollingPacketsPerTick = &f32
	}

	return cfg, nil
}

func newServerMetrics(reg *prometheus.Registry) *metrics.ServerMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return metrics.NewServerMetrics(reg)
}

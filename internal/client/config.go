package client

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/netloom/unet/pkg/envconfig"
	"github.com/netloom/unet/pkg/packet"
	"github.com/netloom/unet/pkg/transport"
)

// ClientConfig configures a Client. Build one with DefaultClientConfig.
type ClientConfig struct {
	Target string
	TPS    float32

	// ID overrides the randomly minted peer identifier; the zero value
	// means "mint one with packet.NewPeerID at construction".
	ID *packet.PeerID

	KeepAliveTicks uint64

	// ServerNotRespondingTicks, when non-nil, makes the client terminate
	// once ticksSinceLastReceive exceeds it. Nil disables the check.
	ServerNotRespondingTicks *uint64

	Logger *slog.Logger
	Clock  clockwork.Clock

	// Transport overrides the real UDP socket the client would otherwise
	// dial to Target; tests inject a *transport.Virtual here.
	Transport transport.Transport
}

// DefaultClientConfig returns the compiled-in defaults: 20 TPS and a
// keep-alive frequency of 0.2s expressed in ticks.
func DefaultClientConfig() ClientConfig {
	const tps = 20.0
	return ClientConfig{
		TPS:            tps,
		KeepAliveTicks: uint64(0.2 * tps),
	}
}

func (c *ClientConfig) applyDefaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.TPS == 0 {
		c.TPS = 20.0
	}
}

// LoadClientConfigEnv starts from DefaultClientConfig and overlays any of
// UNET_TARGET, UNET_TPS, UNET_KEEP_ALIVE_TICKS, and
// UNET_SERVER_NOT_RESPONDING_TICKS found in the .env-style file at path.
func LoadClientConfigEnv(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()

	vars, err := envconfig.Parse(path)
	if err != nil {
		return ClientConfig{}, err
	}

	if v, ok := vars["UNET_TARGET"]; ok {
		cfg.Target = v
	}
	if v, ok := vars["UNET_TPS"]; ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return ClientConfig{}, fmt.Errorf("client: parse UNET_TPS: %w", err)
		}
		cfg.TPS = float32(f)
	}
	if v, ok := vars["UNET_KEEP_ALIVE_TICKS"]; ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return ClientConfig{}, fmt.Errorf("client: parse UNET_KEEP_ALIVE_TICKS: %w", err)
		}
		cfg.KeepAliveTicks = n
	}
	if v, ok := vars["UNET_SERVER_NOT_RESPONDING_TICKS"]; ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return ClientConfig{}, fmt.Errorf("client: parse UNET_SERVER_NOT_RESPONDING_TICKS: %w", err)
		}
		cfg.ServerNotRespondingTicks = &n
	}

	return cfg, nil
}

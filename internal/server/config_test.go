package server_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/netloom/unet/internal/server"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unet.env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadServerConfigEnvOverridesDefaults(t *testing.T) {
	t.Parallel()
	path := writeEnvFile(t, "UNET_ADDR=0.0.0.0:9000\nUNET_TIMEOUT_TICKS=10\n")

	cfg, err := server.LoadServerConfigEnv(path)
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:9000", cfg.Addr)
	require.Equal(t, uint64(10), cfg.TimeoutTicks)

	// Keys absent from the file keep their compiled-in defaults.
	defaults := server.DefaultServerConfig()
	require.Equal(t, defaults.TPS, cfg.TPS)
	require.Equal(t, defaults.KeepAliveTicks, cfg.KeepAliveTicks)
	require.Nil(t, cfg.MaxRollingPacketsPerTick)
}

func TestLoadServerConfigEnvEnablesFloodCap(t *testing.T) {
	t.Parallel()
	path := writeEnvFile(t, "UNET_MAX_PACKETS_PER_TICK=12.5\n")

	cfg, err := server.LoadServerConfigEnv(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.MaxRollingPacketsPerTick)
	require.InDelta(t, 12.5, *cfg.MaxRollingPacketsPerTick, 0.0001)
}

func TestLoadServerConfigEnvRejectsMalformedValues(t *testing.T) {
	t.Parallel()
	path := writeEnvFile(t, "UNET_TPS=not-a-number\n")

	_, err := server.LoadServerConfigEnv(path)
	require.Error(t, err)
}

func TestLoadServerConfigEnvMissingFile(t *testing.T) {
	t.Parallel()
	_, err := server.LoadServerConfigEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

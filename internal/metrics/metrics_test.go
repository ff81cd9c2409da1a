package metrics_test

import (
	"testing"

	"github.com/netloom/unet/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestServerMetricsRegistersAgainstPrivateRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewServerMetrics(reg)

	m.ConnectionsAcceptedTotal.Inc()
	m.ConnectionsKickedTotal.WithLabelValues("Timeout").Inc()
	m.PacketsHandledTotal.WithLabelValues("Data").Inc()
	m.ConnectionsCurrent.Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]*dto.MetricFamily{}
	for _, f := range families {
		names[f.GetName()] = f
	}

	require.Contains(t, names, "unet_server_connections_accepted_total")
	require.Contains(t, names, "unet_server_connections_kicked_total")
	require.Contains(t, names, "unet_server_packets_handled_total")
	require.Contains(t, names, "unet_server_connections_current")
}

// Package metrics declares the server's Prometheus instrumentation,
// registered against an injectable registry so tests can assert on a
// private one instead of the global default.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ServerMetrics holds the counters and gauges the server's tick loop
// updates at each admission, kick, and packet-handling point.
type ServerMetrics struct {
	ConnectionsAcceptedTotal prometheus.Counter
	ConnectionsKickedTotal   *prometheus.CounterVec
	PacketsHandledTotal      *prometheus.CounterVec
	ConnectionsCurrent       prometheus.Gauge
}

// NewServerMetrics registers the server's metrics against reg.
func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	factory := promauto.With(reg)

	return &ServerMetrics{
		ConnectionsAcceptedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "unet_server_connections_accepted_total",
			Help: "Total number of connections accepted into a slot.",
		}),
		ConnectionsKickedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unet_server_connections_kicked_total",
			Help: "Total number of connections kicked from a slot, by reason.",
		}, []string{"reason"}),
		PacketsHandledTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unet_server_packets_handled_total",
			Help: "Total number of inbound packets handled, by kind.",
		}, []string{"kind"}),
		ConnectionsCurrent: factory.NewGauge(prometheus.GaugeOpts{
			Name: "unet_server_connections_current",
			Help: "Current number of occupied connection slots.",
		}),
	}
}

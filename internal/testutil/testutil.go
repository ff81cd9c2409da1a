// Package testutil wires a Server and a Client together over a virtual
// transport pair so integration tests can drive both peers one tick at a
// time without a real socket.
package testutil

import (
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/netloom/unet/internal/client"
	"github.com/netloom/unet/internal/server"
	"github.com/netloom/unet/pkg/transport"
)

// Pair builds a server and client wired directly to each other over an
// in-memory transport, with logging silenced and a shared fake clock.
func Pair(serverCfg server.ServerConfig, clientCfg client.ClientConfig) (*server.Server, *client.Client, *clockwork.FakeClock) {
	serverTransport, clientTransport := transport.NewVirtualPair()
	fakeClock := clockwork.NewFakeClock()

	silent := slog.New(slog.NewTextHandler(io.Discard, nil))

	serverCfg.Transport = serverTransport
	serverCfg.Clock = fakeClock
	if serverCfg.Logger == nil {
		serverCfg.Logger = silent
	}

	clientCfg.Transport = clientTransport
	clientCfg.Clock = fakeClock
	if clientCfg.Logger == nil {
		clientCfg.Logger = silent
	}

	srv, err := server.New(serverCfg)
	if err != nil {
		panic(err)
	}
	cl, err := client.New(clientCfg)
	if err != nil {
		panic(err)
	}

	return srv, cl, fakeClock
}

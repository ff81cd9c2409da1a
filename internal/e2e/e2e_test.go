// Package e2e drives a paired Server and Client over the virtual
// transport at tick granularity, exercising the scenarios documented
// in the repository's protocol notes rather than either side alone.
package e2e_test

import (
	"testing"

	"github.com/netloom/unet/internal/client"
	"github.com/netloom/unet/internal/server"
	"github.com/netloom/unet/internal/testutil"
	"github.com/netloom/unet/pkg/packet"
	"github.com/netloom/unet/pkg/transport"
	"github.com/stretchr/testify/require"
)

func TestHandshakeCompletesInThreeClientTicks(t *testing.T) {
	t.Parallel()
	srv, cl, _ := testutil.Pair(server.DefaultServerConfig(), client.DefaultClientConfig())

	require.Equal(t, client.SendingConnectionRequest, cl.State())

	require.True(t, cl.Tick()) // emits ConnectionRequest
	require.NoError(t, srv.Tick())
	require.True(t, srv.SlotOccupied(0))

	require.True(t, cl.Tick()) // receives ChallengeRequest, emits ChallengeResponse
	require.Equal(t, client.SendingConnectionResponse, cl.State())

	require.NoError(t, srv.Tick()) // receives ChallengeResponse, emits KeepAlive
	require.True(t, srv.SlotConnected(0))

	require.True(t, cl.Tick()) // receives KeepAlive
	require.Equal(t, client.Connected, cl.State())
}

func TestClientTimeout(t *testing.T) {
	t.Parallel()
	serverCfg := server.DefaultServerConfig()
	serverCfg.TimeoutTicks = 1
	srv, cl, _ := testutil.Pair(serverCfg, client.DefaultClientConfig())

	require.True(t, cl.Tick())
	require.NoError(t, srv.Tick())
	require.True(t, cl.Tick())
	require.NoError(t, srv.Tick())
	require.True(t, cl.Tick())
	require.Equal(t, client.Connected, cl.State())

	// Pause the client: the server sees no further receives and kicks the
	// slot for inactivity within TimeoutTicks ticks.
	require.NoError(t, srv.Tick())
	require.NoError(t, srv.Tick())
	require.False(t, srv.SlotOccupied(0))

	require.False(t, cl.Tick()) // receives Disconnect(Timeout)
	reason, ok := cl.DisconnectReason()
	require.True(t, ok)
	require.Equal(t, packet.ReasonTimeout, reason)
	require.Equal(t, client.Disconnected, cl.State())
}

// TestOutOfOrderAdmissionAttempt exercises the documented newest-first
// drain order: a ConnectionRequest, a Data packet, and a Disconnect all
// arrive in the same tick before any handshake completes. The Disconnect
// is handled first and is a no-op (no slot yet exists), the Data is
// dropped for the same reason, and the ConnectionRequest admits the slot
// last, leaving connections[0] populated at the end of the tick.
func TestOutOfOrderAdmissionAttempt(t *testing.T) {
	t.Parallel()
	serverSide, side := transport.NewVirtualPair()
	cfg := server.DefaultServerConfig()
	cfg.Transport = serverSide
	srv, err := server.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	id := packet.PeerID(77)

	req := packet.NewConnectionRequest(id)
	req.SetSequence(0)
	require.NoError(t, side.Send(packet.Encode(req)))

	data := packet.NewData(id, 10)
	data.SetSequence(1)
	require.NoError(t, side.Send(packet.Encode(data)))

	disconnect := packet.NewDisconnect(id, packet.ReasonConnectionResetByPeer)
	disconnect.SetSequence(2)
	require.NoError(t, side.Send(packet.Encode(disconnect)))

	require.NoError(t, srv.Tick())
	require.True(t, srv.SlotOccupied(0))

	_, _, _ = side.RecvFrom() // drain ChallengeRequest

	keepAlive := packet.NewKeepAlive(id)
	keepAlive.SetSequence(3)
	require.NoError(t, side.Send(packet.Encode(keepAlive)))
	require.NoError(t, srv.Tick())
	require.True(t, srv.SlotOccupied(0))
}

package server

import (
	"net"

	"github.com/netloom/unet/pkg/packet"
	"github.com/netloom/unet/pkg/rollingaverage"
)

// connectionID identifies a server-side slot by the pair the protocol
// requires to be unique: the peer's claimed id and its source address.
type connectionID struct {
	id   packet.PeerID
	addr string
}

// connection is a single occupied slot in the server's fixed-capacity
// table. Liveness is tracked in whole ticks rather than wall-clock time: a
// counter reset to 0 on the relevant event and compared against a tick
// threshold at the point of use.
type connection struct {
	id        packet.PeerID
	addr      net.Addr
	index     int
	connected bool

	ticksSinceLastSend    uint64
	ticksSinceLastReceive uint64
	packetSequence        uint64
	packetsThisTick       uint32
	outgoingSequence      uint64
	timeoutTicks          uint64

	rolling *rollingaverage.RollingAverage
}

func newConnection(index int, id packet.PeerID, addr net.Addr, timeoutTicks uint64, rollingWindow int) *connection {
	return &connection{
		id:           id,
		addr:         addr,
		index:        index,
		timeoutTicks: timeoutTicks,
		rolling:      rollingaverage.New(rollingWindow),
	}
}

func (c *connection) cid() connectionID {
	return connectionID{id: c.id, addr: c.addr.String()}
}

// stillAlive zeroes the send-ticks counter; called whenever the server
// emits a datagram to this connection.
func (c *connection) stillAlive() { c.ticksSinceLastSend = 0 }

// resetTimeout zeroes the receive-ticks counter; called whenever a valid,
// in-order datagram arrives from this connection.
func (c *connection) resetTimeout() { c.ticksSinceLastReceive = 0 }

// shouldSendKeepAlive reports whether enough ticks have elapsed since the
// last emission to warrant a keep-alive.
func (c *connection) shouldSendKeepAlive(keepAliveTicks uint64) bool {
	return c.ticksSinceLastSend >= keepAliveTicks
}

// timedOut reports whether the connection has exceeded its configured
// receive-liveness window.
func (c *connection) timedOut() bool {
	return c.ticksSinceLastReceive >= c.timeoutTicks
}

// isSpamming reports whether the connection's smoothed packets-per-tick
// rate meets or exceeds max.
func (c *connection) isSpamming(max float32) bool {
	return c.rolling.Value() >= max
}

// isPacketOutOfOrder reports whether seq is a replay or reordering of an
// already-seen sequence number.
func (c *connection) isPacketOutOfOrder(seq uint64) bool {
	return c.packetSequence >= seq
}

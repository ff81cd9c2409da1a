// Package client implements the four-state session client: handshake,
// keep-alive pacing, and server-liveness timeout, driven one tick at a
// time over a Transport.
package client

import (
	"context"
	"fmt"

	"github.com/netloom/unet/pkg/diagnostics"
	"github.com/netloom/unet/pkg/packet"
	"github.com/netloom/unet/pkg/tick"
	"github.com/netloom/unet/pkg/transport"
)

// State is a session's position in its four-state lifecycle.
type State int

const (
	SendingConnectionRequest State = iota
	SendingConnectionResponse
	Connected
	Disconnected
)

func (s State) String() string {
	switch s {
	case SendingConnectionRequest:
		return "SendingConnectionRequest"
	case SendingConnectionResponse:
		return "SendingConnectionResponse"
	case Connected:
		return "Connected"
	case Disconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// Client is a single session against one server.
type Client struct {
	cfg       ClientConfig
	transport transport.Transport
	scheduler *tick.Scheduler

	id    packet.PeerID
	state State

	disconnectReason packet.DisconnectReason
	terminated       bool

	sendQueue             []packet.Packet
	ticksSinceLastSend    uint64
	ticksSinceLastReceive uint64
	nextSequence          uint64
}

// New builds a Client from cfg. If cfg.Transport is nil, a real UDP socket
// is dialed to cfg.Target. If cfg.ID is nil, a random peer id is minted.
func New(cfg ClientConfig) (*Client, error) {
	cfg.applyDefaults()

	id := packet.PeerID(0)
	if cfg.ID != nil {
		id = *cfg.ID
	} else {
		generated, err := packet.NewPeerID()
		if err != nil {
			return nil, fmt.Errorf("client: mint peer id: %w", err)
		}
		id = generated
	}

	tr := cfg.Transport
	if tr == nil {
		real, err := transport.Dial(cfg.Target)
		if err != nil {
			return nil, fmt.Errorf("client: dial %q: %w", cfg.Target, err)
		}
		tr = real
	}

	return &Client{
		cfg:       cfg,
		transport: tr,
		scheduler: tick.NewScheduler(cfg.TPS, cfg.Clock),
		id:        id,
		state:     SendingConnectionRequest,
	}, nil
}

// Close releases the underlying transport.
func (c *Client) Close() error { return c.transport.Close() }

// ID returns the client's peer identifier.
func (c *Client) ID() packet.PeerID { return c.id }

// State returns the client's current lifecycle state.
func (c *Client) State() State { return c.state }

// DisconnectReason returns the reason the session ended, if it has.
func (c *Client) DisconnectReason() (packet.DisconnectReason, bool) {
	return c.disconnectReason, c.state == Disconnected
}

// Terminated reports whether the client has stopped scheduling work,
// either because it was disconnected or because the server stopped
// responding.
func (c *Client) Terminated() bool { return c.terminated }

// Send enqueues a packet for delivery. It is drained in full on the next
// tick in which the client is Connected; packets sent before then wait in
// the queue. Callers from multiple goroutines must serialize their own
// calls to Send. Send returns ErrPeerTerminated once the client has
// stopped scheduling work.
func (c *Client) Send(p packet.Packet) error {
	if c.terminated {
		return ErrPeerTerminated
	}
	c.sendQueue = append(c.sendQueue, p)
	return nil
}

// Run drives Tick at the configured rate until ctx is cancelled or the
// client terminates.
func (c *Client) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.scheduler.Sleep()
		n := c.scheduler.Due()
		for i := 0; i < n && !c.terminated; i++ {
			if !c.Tick() {
				return nil
			}
		}
		if c.terminated {
			return nil
		}
	}
}

// Tick performs one scheduled work cycle: drain inbound datagrams, emit
// outbound, check server liveness, then advance tick counters. It returns
// false once the client has terminated, signaling the caller's loop to
// exit.
func (c *Client) Tick() bool {
	for {
		buf, _, ok := c.transport.RecvFrom()
		if !ok {
			break
		}
		pkt, err := packet.Decode(buf)
		if err != nil || pkt == nil {
			continue
		}
		c.handlePacket(pkt)
	}

	c.emit()

	if c.cfg.ServerNotRespondingTicks != nil && c.ticksSinceLastReceive > *c.cfg.ServerNotRespondingTicks {
		c.cfg.Logger.Info("server not responding", "peer_id", c.id, "ticks_since_last_receive", c.ticksSinceLastReceive)
		c.terminated = true
	}

	c.ticksSinceLastSend++
	c.ticksSinceLastReceive++

	return !c.terminated
}

func (c *Client) handlePacket(pkt packet.Packet) {
	diagnostics.Recv(c.cfg.Logger, pkt.Kind(), c.id, nil)
	c.ticksSinceLastReceive = 0

	switch p := pkt.(type) {
	case *packet.ChallengeRequest:
		if c.state == SendingConnectionRequest {
			c.state = SendingConnectionResponse
		}
	case *packet.KeepAlive:
		if c.state == SendingConnectionResponse {
			c.state = Connected
			c.cfg.Logger.Info("connected", "peer_id", c.id)
		}
	case *packet.Disconnect:
		if c.state != Disconnected {
			c.state = Disconnected
			c.disconnectReason = p.Reason
			c.terminated = true
			c.cfg.Logger.Info("disconnected", "peer_id", c.id, "reason", p.Reason.String())
		}
	case *packet.Data:
		// Delivery to the application sits above this core; no-op here.
	case *packet.Unimplemented:
		// Silently dropped, never routed.
	default:
		panic(fmt.Sprintf("client: impossible packet kind received: %s", pkt.Kind()))
	}
}

func (c *Client) emit() {
	switch c.state {
	case SendingConnectionRequest:
		c.send(packet.NewConnectionRequest(c.id))
	case SendingConnectionResponse:
		c.send(packet.NewChallengeResponse(c.id))
	case Connected:
		if len(c.sendQueue) > 0 {
			queue := c.sendQueue
			c.sendQueue = nil
			for _, p := range queue {
				c.send(p)
			}
		} else if c.ticksSinceLastSend >= c.cfg.KeepAliveTicks {
			c.send(packet.NewKeepAlive(c.id))
		}
	case Disconnected:
		// Terminal: nothing more to emit.
	}
}

func (c *Client) send(p packet.Packet) {
	p.SetSequence(c.nextSequence)
	c.nextSequence++

	diagnostics.Send(c.cfg.Logger, p.Kind(), c.id, nil)
	if err := c.transport.Send(packet.Encode(p)); err != nil {
		c.cfg.Logger.Error("send failed", "peer_id", c.id, "error", err)
		return
	}
	c.ticksSinceLastSend = 0
}

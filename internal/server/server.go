// Package server implements the fixed-capacity connection-oriented UDP
// server: slot admission, keep-alive, timeout, flood detection, and
// sequence-based replay rejection.
package server

import (
	"context"
	"fmt"
	"net"

	"github.com/netloom/unet/internal/metrics"
	"github.com/netloom/unet/pkg/diagnostics"
	"github.com/netloom/unet/pkg/packet"
	"github.com/netloom/unet/pkg/tick"
	"github.com/netloom/unet/pkg/transport"
)

// Server holds the fixed-capacity slot table and drives it one tick at a
// time, either under an injected clockwork.Clock (tests) or the real
// clock (Run).
type Server struct {
	cfg         ServerConfig
	transport   transport.Transport
	connections [MaxConnections]*connection
	metrics     *metrics.ServerMetrics
	scheduler   *tick.Scheduler
	tickCount   uint64
}

// New builds a Server from cfg. If cfg.Transport is nil, a real UDP socket
// is bound to cfg.Addr.
func New(cfg ServerConfig) (*Server, error) {
	cfg.applyDefaults()

	tr := cfg.Transport
	if tr == nil {
		real, err := transport.NewReal(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("server: bind %q: %w", cfg.Addr, err)
		}
		tr = real
	}

	return &Server{
		cfg:       cfg,
		transport: tr,
		metrics:   newServerMetrics(cfg.Registry),
		scheduler: tick.NewScheduler(cfg.TPS, cfg.Clock),
	}, nil
}

// Close releases the underlying transport.
func (s *Server) Close() error { return s.transport.Close() }

// TickCount returns the number of ticks processed so far.
func (s *Server) TickCount() uint64 { return s.tickCount }

// SlotOccupied reports whether slot idx currently holds a connection.
func (s *Server) SlotOccupied(idx int) bool { return s.connections[idx] != nil }

// SlotConnected reports whether slot idx holds a connection that has
// completed its handshake.
func (s *Server) SlotConnected(idx int) bool {
	c := s.connections[idx]
	return c != nil && c.connected
}

// ConnectionCount returns the number of currently occupied slots.
func (s *Server) ConnectionCount() int {
	n := 0
	for _, c := range s.connections {
		if c != nil {
			n++
		}
	}
	return n
}

// Run drives Tick at the configured rate until ctx is cancelled. The
// server never terminates on its own; only ctx cancellation stops it.
func (s *Server) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.scheduler.Sleep()
		n := s.scheduler.Due()
		for i := 0; i < n; i++ {
			if err := s.Tick(); err != nil {
				return err
			}
		}
	}
}

type inboundDatagram struct {
	pkt  packet.Packet
	from net.Addr
}

// Tick performs exactly one scheduled work cycle: reset per-tick counters,
// drain and handle inbound datagrams, emit keep-alives, kick timed-out and
// flooding connections, then advance every connection's tick counters.
func (s *Server) Tick() error {
	for _, c := range s.connections {
		if c != nil {
			c.packetsThisTick = 0
		}
	}

	var queue []inboundDatagram
	for {
		buf, from, ok := s.transport.RecvFrom()
		if !ok {
			break
		}
		pkt, err := packet.Decode(buf)
		if err != nil || pkt == nil {
			continue
		}
		queue = append(queue, inboundDatagram{pkt: pkt, from: from})
	}

	// Drain newest-first: see the "Processing order" note on admission
	// ordering under bursty contention.
	for i := len(queue) - 1; i >= 0; i-- {
		s.handlePacket(queue[i].pkt, queue[i].from)
	}

	for _, c := range s.connections {
		if c != nil && c.shouldSendKeepAlive(s.cfg.KeepAliveTicks) {
			s.sendKeepAlive(c)
		}
	}

	for idx, c := range s.connections {
		if c != nil && c.timedOut() {
			s.kick(idx, packet.ReasonTimeout)
		}
	}

	if s.cfg.MaxRollingPacketsPerTick != nil {
		capv := *s.cfg.MaxRollingPacketsPerTick
		for idx, c := range s.connections {
			if c != nil && c.isSpamming(capv) {
				s.kick(idx, packet.ReasonSpam)
			}
		}
	}

	for _, c := range s.connections {
		if c == nil {
			continue
		}
		c.ticksSinceLastSend++
		c.ticksSinceLastReceive++
		c.rolling.Add(float32(c.packetsThisTick))
	}

	s.tickCount++
	return nil
}

func (s *Server) handlePacket(pkt packet.Packet, from net.Addr) {
	hdr, hasHeader := pkt.Header()
	if !hasHeader {
		if _, ok := pkt.(*packet.Unimplemented); ok {
			return
		}
		panic(fmt.Sprintf("server: impossible packet kind received: %s", pkt.Kind()))
	}

	diagnostics.Recv(s.cfg.Logger, pkt.Kind(), hdr.PeerID, from)
	s.metrics.PacketsHandledTotal.WithLabelValues(pkt.Kind().String()).Inc()

	conn, idx := s.findByCID(connectionID{id: hdr.PeerID, addr: from.String()})
	if conn != nil {
		if conn.isPacketOutOfOrder(hdr.Sequence) {
			return
		}
		conn.resetTimeout()
		conn.packetsThisTick++
		conn.packetSequence = hdr.Sequence
	}

	switch p := pkt.(type) {
	case *packet.ConnectionRequest:
		s.admit(p, from)
	case *packet.ChallengeResponse:
		if conn != nil {
			conn.connected = true
			diagnostics.Connected(s.cfg.Logger, conn.id, conn.addr, conn.index)
			s.sendKeepAlive(conn)
		}
	case *packet.Disconnect:
		if conn != nil {
			s.kick(idx, p.Reason)
		}
	case *packet.KeepAlive, *packet.Data:
		// Bookkeeping above is the entire effect of these kinds.
	default:
		panic(fmt.Sprintf("server: impossible packet kind received: %s", pkt.Kind()))
	}
}

func (s *Server) findByCID(cid connectionID) (*connection, int) {
	for idx, c := range s.connections {
		if c != nil && c.cid() == cid {
			return c, idx
		}
	}
	return nil, -1
}

func (s *Server) findVacantSlot() int {
	for idx, c := range s.connections {
		if c == nil {
			return idx
		}
	}
	return -1
}

func (s *Server) admit(p *packet.ConnectionRequest, from net.Addr) {
	hdr, _ := p.Header()
	cid := connectionID{id: hdr.PeerID, addr: from.String()}

	if conn, _ := s.findByCID(cid); conn != nil {
		return // idempotent re-handshake
	}

	idx := s.findVacantSlot()
	if idx == -1 {
		s.cfg.Logger.Debug("admission rejected", "peer_id", hdr.PeerID, "addr", from, "error", ErrSlotTableFull)
		s.sendDisconnectTo(from, hdr.PeerID, packet.ReasonServerFull)
		return
	}

	conn := newConnection(idx, hdr.PeerID, from, s.cfg.TimeoutTicks, s.cfg.RollingAverageWindow)
	conn.packetSequence = hdr.Sequence
	s.connections[idx] = conn

	s.metrics.ConnectionsAcceptedTotal.Inc()
	s.metrics.ConnectionsCurrent.Set(float64(s.ConnectionCount()))

	s.emit(&packet.ChallengeRequest{}, hdr.PeerID, from)
	conn.stillAlive()
}

func (s *Server) sendKeepAlive(c *connection) {
	p := packet.NewKeepAlive(c.id)
	p.SetSequence(c.outgoingSequence)
	c.outgoingSequence++
	s.emit(p, c.id, c.addr)
	c.stillAlive()
}

func (s *Server) kick(idx int, reason packet.DisconnectReason) {
	c := s.connections[idx]
	if c == nil {
		return
	}
	id, addr := c.id, c.addr
	s.connections[idx] = nil

	s.metrics.ConnectionsKickedTotal.WithLabelValues(reason.String()).Inc()
	s.metrics.ConnectionsCurrent.Set(float64(s.ConnectionCount()))
	diagnostics.Disconnected(s.cfg.Logger, id, addr, idx, reason)

	p := packet.NewDisconnect(id, reason)
	p.SetSequence(c.outgoingSequence)
	s.emit(p, id, addr)
}

func (s *Server) sendDisconnectTo(addr net.Addr, id packet.PeerID, reason packet.DisconnectReason) {
	p := packet.NewDisconnect(id, reason)
	s.emit(p, id, addr)
}

func (s *Server) emit(p packet.Packet, id packet.PeerID, to net.Addr) {
	diagnostics.Send(s.cfg.Logger, p.Kind(), id, to)
	if err := s.transport.SendTo(packet.Encode(p), to); err != nil {
		s.cfg.Logger.Error("send failed", "peer_id", id, "addr", to, "error", err)
	}
}

package transport

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Real is a UDP transport polled without a blocking read. net.UDPConn has
// no true non-blocking read, so RecvFrom polls by setting a read deadline
// one millisecond ahead and treating a timeout as "nothing available"; a
// read on an empty socket therefore waits at most about that long. A
// deadline at or before the current time would fail the read before the
// socket is checked, even with a datagram queued.
type Real struct {
	conn *net.UDPConn
}

// NewReal binds a UDP socket to addr. An empty addr ("") binds an
// ephemeral client-side socket with no fixed local address.
func NewReal(addr string) (*Real, error) {
	var laddr *net.UDPAddr
	if addr != "" {
		resolved, err := net.ResolveUDPAddr("udp", addr)
		if err != nil {
			return nil, fmt.Errorf("transport: resolve %q: %w", addr, err)
		}
		laddr = resolved
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen: %w", err)
	}
	return &Real{conn: conn}, nil
}

// Dial binds an ephemeral local socket and connects it to target, so Send
// (without an explicit address) can be used.
func Dial(target string) (*Real, error) {
	raddr, err := net.ResolveUDPAddr("udp", target)
	if err != nil {
		return nil, fmt.Errorf("transport: resolve %q: %w", target, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %q: %w", target, err)
	}
	return &Real{conn: conn}, nil
}

func (r *Real) Send(buf []byte) error {
	_, err := r.conn.Write(buf)
	return err
}

func (r *Real) SendTo(buf []byte, to net.Addr) error {
	udpAddr, ok := to.(*net.UDPAddr)
	if !ok {
		return fmt.Errorf("transport: SendTo: not a *net.UDPAddr: %T", to)
	}
	_, err := r.conn.WriteToUDP(buf, udpAddr)
	return err
}

func (r *Real) RecvFrom() ([]byte, net.Addr, bool) {
	if err := r.conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return nil, nil, false
	}

	buf := make([]byte, MaxDatagramSize)
	n, from, err := r.conn.ReadFromUDP(buf)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, nil, false
		}
		// Any other receive error (including closed socket) is treated
		// as "nothing to read this tick", per the core's receive contract.
		return nil, nil, false
	}
	return buf[:n], from, true
}

func (r *Real) Close() error { return r.conn.Close() }

// LocalAddr returns the address the socket is bound to.
func (r *Real) LocalAddr() net.Addr { return r.conn.LocalAddr() }

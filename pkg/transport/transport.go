// Package transport abstracts the datagram medium a peer sends and
// receives over, so the same state machine code can run against a real
// UDP socket or an in-memory channel pair in tests.
package transport

import "net"

// MaxDatagramSize is the receive buffer size; no packet kind exceeds it.
const MaxDatagramSize = 640

// Transport is the non-blocking datagram medium a peer is bound to.
//
// Send/SendTo never block and never partially write a datagram. RecvFrom
// returns ok=false when no datagram is immediately available; any real
// transport error on receive is collapsed to ok=false, "nothing to read
// this tick" rather than surfaced as an error.
type Transport interface {
	// Send writes buf to the transport's implicit peer (set at
	// construction for Virtual, or the socket's connected remote for a
	// connected Real transport).
	Send(buf []byte) error
	// SendTo writes buf to the given address.
	SendTo(buf []byte, to net.Addr) error
	// RecvFrom returns the next available datagram, if any.
	RecvFrom() (buf []byte, from net.Addr, ok bool)
	// Close releases any underlying resources.
	Close() error
}

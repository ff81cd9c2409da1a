package transport

import "net"

// virtualAddr is the sentinel peer address reported for all datagrams
// received over a Virtual transport; the channel link is implicitly
// point-to-point, so "0.0.0.0:0" stands in for the unaddressable remote.
var virtualAddr = &net.UDPAddr{IP: net.IPv4zero, Port: 0}

// Virtual is an in-memory, channel-backed transport for deterministic
// tests: writes on one end of a pair arrive as reads on the other, with no
// real socket, loss, or reordering.
type Virtual struct {
	tx chan<- []byte
	rx <-chan []byte
}

// NewVirtualPair builds two Virtual transports wired to each other:
// datagrams sent on one arrive, in order, on the other.
func NewVirtualPair() (a, b *Virtual) {
	abChan := make(chan []byte, 256)
	baChan := make(chan []byte, 256)
	a = &Virtual{tx: abChan, rx: baChan}
	b = &Virtual{tx: baChan, rx: abChan}
	return a, b
}

func (v *Virtual) Send(buf []byte) error {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	select {
	case v.tx <- cp:
	default:
		// A full link drops the datagram, the same way a saturated socket
		// buffer would. Send never blocks.
	}
	return nil
}

func (v *Virtual) SendTo(buf []byte, _ net.Addr) error {
	return v.Send(buf)
}

func (v *Virtual) RecvFrom() ([]byte, net.Addr, bool) {
	select {
	case buf := <-v.rx:
		return buf, virtualAddr, true
	default:
		return nil, nil, false
	}
}

func (v *Virtual) Close() error { return nil }

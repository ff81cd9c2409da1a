package packet

// KeepAlive is the heartbeat datagram sent to keep a session from timing
// out, and is also the server's confirmation to a freshly admitted client
// that it is fully connected.
type KeepAlive struct {
	Hdr Header
}

func NewKeepAlive(id PeerID) *KeepAlive {
	return &KeepAlive{Hdr: NewHeader(id)}
}

func (p *KeepAlive) Kind() Kind { return KindKeepAlive }

func (p *KeepAlive) Header() (Header, bool) { return p.Hdr, true }

func (p *KeepAlive) SetSequence(seq uint64) { p.Hdr.Sequence = seq }

func (p *KeepAlive) Marshal() []byte {
	buf := make([]byte, 1+HeaderSize)
	buf[0] = byte(KindKeepAlive)
	_ = p.Hdr.Marshal(buf[1:])
	return buf
}

func unmarshalKeepAlive(body []byte) (*KeepAlive, error) {
	hdr, err := UnmarshalHeader(body)
	if err != nil {
		return nil, err
	}
	return &KeepAlive{Hdr: hdr}, nil
}

package packet

// ConnectionRequest is the first packet a client sends: "I am PeerID,
// let me in."
type ConnectionRequest struct {
	Hdr Header
}

// NewConnectionRequest builds a ConnectionRequest for the given client id.
func NewConnectionRequest(id PeerID) *ConnectionRequest {
	return &ConnectionRequest{Hdr: NewHeader(id)}
}

func (p *ConnectionRequest) Kind() Kind { return KindConnectionRequest }

func (p *ConnectionRequest) Header() (Header, bool) { return p.Hdr, true }

func (p *ConnectionRequest) SetSequence(seq uint64) { p.Hdr.Sequence = seq }

func (p *ConnectionRequest) Marshal() []byte {
	buf := make([]byte, 1+HeaderSize)
	buf[0] = byte(KindConnectionRequest)
	_ = p.Hdr.Marshal(buf[1:])
	return buf
}

func unmarshalConnectionRequest(body []byte) (*ConnectionRequest, error) {
	hdr, err := UnmarshalHeader(body)
	if err != nil {
		return nil, err
	}
	return &ConnectionRequest{Hdr: hdr}, nil
}

package packet

import "fmt"

// DisconnectReason explains why a session was torn down. It is encoded as a
// single byte in the Disconnect body.
type DisconnectReason uint8

const (
	ReasonTimeout               DisconnectReason = 0
	ReasonServerFull            DisconnectReason = 1
	ReasonSpam                  DisconnectReason = 2
	ReasonConnectionResetByPeer DisconnectReason = 3
)

func (r DisconnectReason) String() string {
	switch r {
	case ReasonTimeout:
		return "Timeout"
	case ReasonServerFull:
		return "ServerFull"
	case ReasonSpam:
		return "Spam"
	case ReasonConnectionResetByPeer:
		return "ConnectionResetByPeer"
	default:
		return fmt.Sprintf("DisconnectReason(%d)", uint8(r))
	}
}

// Disconnect tells the remote peer a session is being torn down, and why.
type Disconnect struct {
	Hdr    Header
	Reason DisconnectReason
}

func NewDisconnect(id PeerID, reason DisconnectReason) *Disconnect {
	return &Disconnect{Hdr: NewHeader(id), Reason: reason}
}

func (p *Disconnect) Kind() Kind { return KindDisconnect }

func (p *Disconnect) Header() (Header, bool) { return p.Hdr, true }

func (p *Disconnect) SetSequence(seq uint64) { p.Hdr.Sequence = seq }

func (p *Disconnect) Marshal() []byte {
	buf := make([]byte, 1+HeaderSize+1)
	buf[0] = byte(KindDisconnect)
	_ = p.Hdr.Marshal(buf[1:])
	buf[1+HeaderSize] = byte(p.Reason)
	return buf
}

func unmarshalDisconnect(body []byte) (*Disconnect, error) {
	if len(body) < HeaderSize+1 {
		return nil, fmt.Errorf("packet: %w: short Disconnect body (%d bytes)", ErrInvalidPacket, len(body))
	}
	hdr, err := UnmarshalHeader(body[:HeaderSize])
	if err != nil {
		return nil, err
	}
	return &Disconnect{Hdr: hdr, Reason: DisconnectReason(body[HeaderSize])}, nil
}

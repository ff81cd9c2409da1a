package packet

import (
	"encoding/binary"
	"fmt"
)

// Data carries a single application-level payload: a 4-byte big-endian
// signed integer. Delivery of that payload to the application sits above
// this core and is out of scope here.
type Data struct {
	Hdr Header
	Val int32
}

func NewData(id PeerID, val int32) *Data {
	return &Data{Hdr: NewHeader(id), Val: val}
}

func (p *Data) Kind() Kind { return KindData }

func (p *Data) Header() (Header, bool) { return p.Hdr, true }

func (p *Data) SetSequence(seq uint64) { p.Hdr.Sequence = seq }

func (p *Data) Marshal() []byte {
	buf := make([]byte, 1+HeaderSize+4)
	buf[0] = byte(KindData)
	_ = p.Hdr.Marshal(buf[1:])
	binary.BigEndian.PutUint32(buf[1+HeaderSize:], uint32(p.Val))
	return buf
}

func unmarshalData(body []byte) (*Data, error) {
	if len(body) < HeaderSize+4 {
		return nil, fmt.Errorf("packet: %w: short Data body (%d bytes)", ErrInvalidPacket, len(body))
	}
	hdr, err := UnmarshalHeader(body[:HeaderSize])
	if err != nil {
		return nil, err
	}
	val := int32(binary.BigEndian.Uint32(body[HeaderSize : HeaderSize+4]))
	return &Data{Hdr: hdr, Val: val}, nil
}

package packet

// Unimplemented is the sentinel Decode returns for any tag byte outside the
// six defined kinds. It exists only to tolerate unknown bytes arriving on
// the wire from a future protocol version; it is never constructed locally
// and should be silently dropped by callers rather than routed anywhere.
type Unimplemented struct{}

func (p *Unimplemented) Kind() Kind { return KindUnimplemented }

func (p *Unimplemented) Header() (Header, bool) { return Header{}, false }

func (p *Unimplemented) SetSequence(uint64) {}

func (p *Unimplemented) Marshal() []byte { return []byte{byte(KindUnimplemented)} }

package packet

// ChallengeRequest is the server's reply to a ConnectionRequest admitted
// into a slot. It is the only kind with no header and no body: the wire
// encoding is the single tag byte.
//
// A client never constructs or sends one; sending one is the server's
// exclusive privilege, and a server never receives one.
type ChallengeRequest struct{}

func (p *ChallengeRequest) Kind() Kind { return KindChallengeRequest }

func (p *ChallengeRequest) Header() (Header, bool) { return Header{}, false }

func (p *ChallengeRequest) SetSequence(uint64) {}

func (p *ChallengeRequest) Marshal() []byte {
	return []byte{byte(KindChallengeRequest)}
}

package packet

// ChallengeResponse is the client's reply to a ChallengeRequest, completing
// the handshake from the client's side.
//
// A server never constructs or sends one.
type ChallengeResponse struct {
	Hdr Header
}

func NewChallengeResponse(id PeerID) *ChallengeResponse {
	return &ChallengeResponse{Hdr: NewHeader(id)}
}

func (p *ChallengeResponse) Kind() Kind { return KindChallengeResponse }

func (p *ChallengeResponse) Header() (Header, bool) { return p.Hdr, true }

func (p *ChallengeResponse) SetSequence(seq uint64) { p.Hdr.Sequence = seq }

func (p *ChallengeResponse) Marshal() []byte {
	buf := make([]byte, 1+HeaderSize)
	buf[0] = byte(KindChallengeResponse)
	_ = p.Hdr.Marshal(buf[1:])
	return buf
}

func unmarshalChallengeResponse(body []byte) (*ChallengeResponse, error) {
	hdr, err := UnmarshalHeader(body)
	if err != nil {
		return nil, err
	}
	return &ChallengeResponse{Hdr: hdr}, nil
}

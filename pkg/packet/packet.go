// Package packet implements the unet wire format: a tagged-union datagram
// codec with a fixed 21-byte header shared by every kind except
// ChallengeRequest.
package packet

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

const (
	// Magic is the literal protocol tag every header begins with.
	Magic = "UNET1"

	// HeaderSize is the encoded size, in bytes, of Header: 5-byte magic,
	// 8-byte peer id, 8-byte sequence.
	HeaderSize = len(Magic) + 8 + 8

	// MaxDatagramSize is the largest datagram the transport will deliver;
	// anything longer is truncated by the transport before it reaches the
	// codec and will fail to decode.
	MaxDatagramSize = 640
)

// Kind identifies the tagged-union variant of a Packet. It is encoded as the
// leading byte of every datagram.
type Kind uint8

const (
	KindConnectionRequest Kind = 0
	KindChallengeRequest  Kind = 1
	KindChallengeResponse Kind = 2
	KindKeepAlive         Kind = 3
	KindData              Kind = 4
	KindDisconnect        Kind = 5

	// KindUnimplemented is never put on the wire. Decode returns it for any
	// tag byte outside 0-5 so callers can drop the datagram uniformly
	// instead of special-casing "unknown kind".
	KindUnimplemented Kind = 6
)

func (k Kind) String() string {
	switch k {
	case KindConnectionRequest:
		return "ConnectionRequest"
	case KindChallengeRequest:
		return "ChallengeRequest"
	case KindChallengeResponse:
		return "ChallengeResponse"
	case KindKeepAlive:
		return "KeepAlive"
	case KindData:
		return "Data"
	case KindDisconnect:
		return "Disconnect"
	default:
		return "Unimplemented"
	}
}

// PeerID is a 64-bit value a client mints for itself at construction and
// carries in every packet header. Combined with the sender's source
// address, it identifies a session on the server.
type PeerID uint64

// NewPeerID mints a random 64-bit peer identifier from a cryptographic
// source. A non-cryptographic generator would do just as well for the
// protocol's purposes, but nothing in this codebase reaches for one when it
// needs an opaque random token, so neither does this.
func NewPeerID() (PeerID, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("packet: generate peer id: %w", err)
	}
	return PeerID(binary.BigEndian.Uint64(buf[:])), nil
}

// Header is the fixed preamble carried by every packet kind except
// ChallengeRequest.
type Header struct {
	PeerID   PeerID
	Sequence uint64
}

// NewHeader builds a Header with sequence 0; the sender assigns the real
// sequence number at emission time via Packet.SetSequence.
func NewHeader(id PeerID) Header {
	return Header{PeerID: id}
}

// Marshal writes the encoded header into buf, which must be at least
// HeaderSize bytes.
func (h Header) Marshal(buf []byte) error {
	if len(buf) < HeaderSize {
		return fmt.Errorf("packet: header buffer too small: %d < %d", len(buf), HeaderSize)
	}
	copy(buf[0:5], Magic)
	binary.BigEndian.PutUint64(buf[5:13], uint64(h.PeerID))
	binary.BigEndian.PutUint64(buf[13:21], h.Sequence)
	return nil
}

// UnmarshalHeader decodes a Header from buf, validating the magic tag.
func UnmarshalHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("packet: %w: short header (%d bytes)", ErrInvalidPacket, len(buf))
	}
	if string(buf[0:5]) != Magic {
		return Header{}, fmt.Errorf("packet: %w: bad magic %q", ErrInvalidPacket, buf[0:5])
	}
	return Header{
		PeerID:   PeerID(binary.BigEndian.Uint64(buf[5:13])),
		Sequence: binary.BigEndian.Uint64(buf[13:21]),
	}, nil
}

// Packet is the common interface implemented by every wire message kind.
//
// This is a tagged union expressed as an interface rather than inheritance:
// the concrete type behind the interface is the single source of truth for
// Kind, and a type switch (see Encode/Decode) is the only place that needs
// to know about every variant.
type Packet interface {
	// Kind reports which wire variant this value represents.
	Kind() Kind

	// Header returns the packet's header and true, or a zero Header and
	// false for ChallengeRequest (and the locally-unconstructible
	// Unimplemented sentinel), which carry no header.
	Header() (Header, bool)

	// SetSequence assigns the outgoing sequence number. It is a no-op for
	// kinds that carry no header.
	SetSequence(seq uint64)

	// Marshal returns the canonical wire encoding: tag byte, header (if
	// any), then kind-specific body.
	Marshal() []byte
}

// Encode returns the canonical byte encoding of p. It is the inverse of
// Decode: Decode(Encode(p)) reproduces p for every constructible Packet.
func Encode(p Packet) []byte {
	return p.Marshal()
}

// Decode parses a single datagram into a Packet. It returns (nil, nil) for
// an empty buffer (nothing to do), a non-nil error for a buffer that looks
// like it carries a header but fails to parse, and KindUnimplemented for any
// tag byte outside the six defined kinds — never an error, since an unknown
// kind is a forward-compatibility signal to drop, not a malformed datagram.
func Decode(buf []byte) (Packet, error) {
	if len(buf) < 1 {
		return nil, nil
	}

	switch Kind(buf[0]) {
	case KindConnectionRequest:
		return unmarshalConnectionRequest(buf[1:])
	case KindChallengeRequest:
		return &ChallengeRequest{}, nil
	case KindChallengeResponse:
		return unmarshalChallengeResponse(buf[1:])
	case KindKeepAlive:
		return unmarshalKeepAlive(buf[1:])
	case KindData:
		return unmarshalData(buf[1:])
	case KindDisconnect:
		return unmarshalDisconnect(buf[1:])
	default:
		return &Unimplemented{}, nil
	}
}

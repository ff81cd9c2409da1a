package packet_test

import (
	"errors"
	"testing"

	"github.com/netloom/unet/pkg/packet"
	"github.com/stretchr/testify/require"
)

func allKinds(id packet.PeerID) []packet.Packet {
	return []packet.Packet{
		packet.NewConnectionRequest(id),
		&packet.ChallengeRequest{},
		packet.NewChallengeResponse(id),
		packet.NewKeepAlive(id),
		packet.NewData(id, 42),
		packet.NewDisconnect(id, packet.ReasonSpam),
	}
}

func TestRoundTrip(t *testing.T) {
	const id = packet.PeerID(0xdeadbeefcafef00d)

	for _, p := range allKinds(id) {
		p := p
		t.Run(p.Kind().String(), func(t *testing.T) {
			t.Parallel()

			p.SetSequence(7)
			encoded := packet.Encode(p)

			decoded, err := packet.Decode(encoded)
			require.NoError(t, err)
			require.Equal(t, p, decoded)

			// Byte-stable: encoding the decoded value reproduces the bytes.
			require.Equal(t, encoded, packet.Encode(decoded))
		})
	}
}

func TestHeaderBytes(t *testing.T) {
	for _, p := range allKinds(1) {
		hdr, hasHeader := p.Header()
		encoded := packet.Encode(p)
		if !hasHeader {
			continue
		}
		require.GreaterOrEqual(t, len(encoded), 1+packet.HeaderSize)
		require.Equal(t, packet.Magic, string(encoded[1:6]))
		require.Equal(t, packet.PeerID(1), hdr.PeerID)
	}
}

func TestDecodeEmptyYieldsNothing(t *testing.T) {
	p, err := packet.Decode(nil)
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = packet.Decode([]byte{})
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestDecodeUnknownKindIsUnimplemented(t *testing.T) {
	p, err := packet.Decode([]byte{0xFE})
	require.NoError(t, err)
	require.Equal(t, packet.KindUnimplemented, p.Kind())
}

func TestDecodeShortHeaderFails(t *testing.T) {
	_, err := packet.Decode([]byte{byte(packet.KindKeepAlive), 1, 2, 3})
	require.Error(t, err)
	require.True(t, errors.Is(err, packet.ErrInvalidPacket))
}

func TestDecodeBadMagicFails(t *testing.T) {
	buf := make([]byte, 1+packet.HeaderSize)
	buf[0] = byte(packet.KindKeepAlive)
	copy(buf[1:6], "XXXXX")
	_, err := packet.Decode(buf)
	require.Error(t, err)
	require.True(t, errors.Is(err, packet.ErrInvalidPacket))
}

func TestChallengeRequestHasNoHeaderOrBody(t *testing.T) {
	cr := &packet.ChallengeRequest{}
	require.Equal(t, []byte{byte(packet.KindChallengeRequest)}, packet.Encode(cr))

	_, hasHeader := cr.Header()
	require.False(t, hasHeader)

	decoded, err := packet.Decode([]byte{byte(packet.KindChallengeRequest)})
	require.NoError(t, err)
	require.Equal(t, packet.KindChallengeRequest, decoded.Kind())
}

// TestDataEncodingLiteral pins the wire format to the exact byte sequence
// the protocol documents for Data{id: 999, seq: 123, val: 0}.
func TestDataEncodingLiteral(t *testing.T) {
	d := packet.NewData(999, 0)
	d.SetSequence(123)

	want := []byte{
		0x04,
		0x55, 0x4E, 0x45, 0x54, 0x31, // "UNET1"
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xE7, // peer id = 999
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7B, // sequence = 123
		0x00, 0x00, 0x00, 0x00, // val = 0
	}
	require.Equal(t, want, packet.Encode(d))
}

func TestSetSequenceIsNoOpForHeaderlessKinds(t *testing.T) {
	cr := &packet.ChallengeRequest{}
	cr.SetSequence(999)
	require.Equal(t, []byte{byte(packet.KindChallengeRequest)}, packet.Encode(cr))

	u := &packet.Unimplemented{}
	u.SetSequence(999)
	require.Equal(t, []byte{byte(packet.KindUnimplemented)}, packet.Encode(u))
}

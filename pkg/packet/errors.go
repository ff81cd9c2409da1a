package packet

import "errors"

// ErrInvalidPacket is returned when a buffer that should carry a header or a
// kind-specific body is too short or otherwise malformed. Callers at the
// peer layer treat this the same as any other decode failure: drop the
// datagram, change no state.
var ErrInvalidPacket = errors.New("invalid packet")

package server

import "errors"

// ErrSlotTableFull is logged when admission is attempted with no vacant
// slot; no function returns it, so callers of the public API never see it,
// and the protocol response (Disconnect(ServerFull)) is sent instead.
var ErrSlotTableFull = errors.New("server: slot table full")

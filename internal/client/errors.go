package client

import "errors"

// ErrPeerTerminated is returned by Send once the client has terminated
// (disconnected or given up on an unresponsive server); the send queue no
// longer drains once Tick has returned false.
var ErrPeerTerminated = errors.New("client: peer terminated")

// Package diagnostics holds the recv/send/connect/disconnect log helpers
// shared by both peers: routine packet traffic at Debug, lifecycle events
// at Info, all tagged with peer identity.
package diagnostics

import (
	"log/slog"
	"net"

	"github.com/netloom/unet/pkg/packet"
)

// Recv logs receipt of a packet, tagged with the peer identity when known.
func Recv(log *slog.Logger, kind packet.Kind, id packet.PeerID, from net.Addr) {
	log.Debug("recv", "kind", kind.String(), "peer_id", id, "addr", addrString(from))
}

// Send logs emission of a packet to a peer.
func Send(log *slog.Logger, kind packet.Kind, id packet.PeerID, to net.Addr) {
	log.Debug("send", "kind", kind.String(), "peer_id", id, "addr", addrString(to))
}

// Connected logs a slot transitioning to connected.
func Connected(log *slog.Logger, id packet.PeerID, addr net.Addr, slot int) {
	log.Info("connected", "peer_id", id, "addr", addrString(addr), "slot", slot)
}

// Disconnected logs a slot being torn down.
func Disconnected(log *slog.Logger, id packet.PeerID, addr net.Addr, slot int, reason packet.DisconnectReason) {
	log.Info("disconnected", "peer_id", id, "addr", addrString(addr), "slot", slot, "reason", reason.String())
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}

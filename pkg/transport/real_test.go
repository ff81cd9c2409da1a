package transport_test

import (
	"testing"
	"time"

	"github.com/netloom/unet/pkg/transport"
	"github.com/stretchr/testify/require"
)

func TestRealTransportLoopback(t *testing.T) {
	server, err := transport.NewReal("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })

	client, err := transport.NewReal("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.SendTo([]byte("ping"), server.LocalAddr()))

	var (
		buf []byte
		ok  bool
	)
	require.Eventually(t, func() bool {
		buf, _, ok = server.RecvFrom()
		return ok
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, []byte("ping"), buf)
}

func TestRealTransportRecvFromEmptyReturnsFalse(t *testing.T) {
	r, err := transport.NewReal("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, _, ok := r.RecvFrom()
	require.False(t, ok)
}

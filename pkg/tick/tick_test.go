package tick_test

import (
	"testing"
	"time"

	"github.com/netloom/unet/pkg/tick"
	"github.com/stretchr/testify/require"
)

func TestFromDuration(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		tps  float32
		want float32
	}{
		{"seconds_20tps", 4 * time.Second, 20.0, 80.0},
		{"seconds_1tps", 4 * time.Second, 1.0, 4.0},
		{"millis_20tps_200ms", 200 * time.Millisecond, 20.0, 4.0},
		{"millis_20tps_1000ms", 1000 * time.Millisecond, 20.0, 20.0},
		{"millis_20tps_50ms", 50 * time.Millisecond, 20.0, 1.0},
		{"millis_1tps_200ms", 200 * time.Millisecond, 1.0, 0.2},
		{"millis_1tps_1000ms", 1000 * time.Millisecond, 1.0, 1.0},
		{"millis_1tps_50ms", 50 * time.Millisecond, 1.0, 0.05},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got := tick.FromDuration(c.d, c.tps)
			require.InDelta(t, c.want, got.Value, 0.0001)
		})
	}
}

func TestAsDuration(t *testing.T) {
	cases := []struct {
		name      string
		value     float32
		tps       float32
		wantMilli int64
	}{
		{"one_tick_20tps", 1.0, 20.0, 50},
		{"fifth_tick_20tps", 0.2, 20.0, 10},
		{"tenth_tick_20tps", 0.1, 20.0, 5},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got := tick.Tick{Value: c.value}.AsDuration(c.tps)
			require.Equal(t, c.wantMilli, got.Milliseconds())
		})
	}
}

func TestLess(t *testing.T) {
	require.True(t, tick.Tick{Value: 1}.Less(tick.Tick{Value: 2}))
	require.False(t, tick.Tick{Value: 2}.Less(tick.Tick{Value: 1}))
}

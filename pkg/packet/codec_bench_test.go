package packet_test

import (
	"testing"

	"github.com/netloom/unet/pkg/packet"
)

func BenchmarkEncodeData(b *testing.B) {
	p := packet.NewData(0xCAFEBABE, 42)
	p.SetSequence(1)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = packet.Encode(p)
	}
}

func BenchmarkDecodeData(b *testing.B) {
	p := packet.NewData(0xCAFEBABE, 42)
	p.SetSequence(1)
	buf := packet.Encode(p)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := packet.Decode(buf); err != nil {
			b.Fatal(err)
		}
	}
}

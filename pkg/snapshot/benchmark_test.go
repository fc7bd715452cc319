package snapshot

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/DataDog/zstd"
)

// recordText builds emitter-shaped text of roughly n bytes.
func recordText(n int) []byte {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; b.Len() < n; i++ {
		fmt.Fprintf(&b, "\n\t{\n\t\t'obj_name': 'leaf_%d',\n\t\t'beat_cnt': %d,\n\t},", i, i%16)
	}
	b.WriteString("\n]")
	return []byte(b.String())
}

// BenchmarkCompression compares levels on record text.
func BenchmarkCompression(b *testing.B) {
	data := recordText(256 * 1024)

	for _, level := range []int{zstd.BestSpeed, zstd.DefaultCompression, zstd.BestCompression} {
		b.Run(fmt.Sprintf("Level%d", level), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				if _, err := zstd.CompressLevel(nil, data, level); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkHeader benchmarks header operations.
func BenchmarkHeader(b *testing.B) {
	header := Header{
		Version:          RecordVersion,
		Length:           1024 * 1024,
		CompressedLength: 64 * 1024,
	}

	b.Run("Append", func(b *testing.B) {
		buf := make([]byte, 0, HeaderSize)
		for i := 0; i < b.N; i++ {
			buf, _ = header.AppendBinary(buf[:0])
		}
	})

	data, _ := header.AppendBinary(nil)

	b.Run("Parse", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := ParseHeader(data); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkEncodeRead benchmarks a full snapshot cycle.
func BenchmarkEncodeRead(b *testing.B) {
	data := recordText(1024 * 1024)

	b.Run("Encode", func(b *testing.B) {
		b.SetBytes(int64(len(data)))
		for i := 0; i < b.N; i++ {
			ws := &seekableBuffer{Buffer: &bytes.Buffer{}}
			if err := Encode(ws, data); err != nil {
				b.Fatal(err)
			}
		}
	})

	ws := &seekableBuffer{Buffer: &bytes.Buffer{}}
	if err := Encode(ws, data); err != nil {
		b.Fatal(err)
	}
	encoded := ws.Bytes()

	b.Run("ReadAll", func(b *testing.B) {
		b.SetBytes(int64(len(data)))
		for i := 0; i < b.N; i++ {
			if _, err := ReadAll(bytes.NewReader(encoded)); err != nil {
				b.Fatal(err)
			}
		}
	})
}

package transcode_test

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/transcodehq/transcode"
	"github.com/transcodehq/transcode/gzipcodec"
	"github.com/transcodehq/transcode/noopcodec"
	"github.com/transcodehq/transcode/zstdcodec"
)

// BenchmarkTranscode measures bulk throughput per codec with a reused
// transcoder over 1 MiB of repetitive input.
func BenchmarkTranscode(b *testing.B) {
	input := bytes.Repeat([]byte("benchmark payload 0123456789 "), 36158)[:1<<20]

	benches := []struct {
		name  string
		codec transcode.Codec
	}{
		{"noop", noopcodec.New()},
		{"gzip", gzipcodec.NewCompressor(gzip.BestSpeed)},
		{"zstd", zstdcodec.NewCompressor()},
	}

	for _, bb := range benches {
		b.Run(bb.name, func(b *testing.B) {
			tr, err := transcode.New(bb.codec)
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}
			defer tr.Close()

			b.SetBytes(int64(len(input)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := tr.Transcode(input); err != nil {
					b.Fatalf("Transcode() error = %v", err)
				}
			}
		})
	}
}

// BenchmarkDecompress measures decode throughput with a reused transcoder.
func BenchmarkDecompress(b *testing.B) {
	input := bytes.Repeat([]byte("benchmark payload 0123456789 "), 36158)[:1<<20]

	compressed, err := transcode.Transcode(zstdcodec.NewCompressor(), input)
	if err != nil {
		b.Fatalf("compress error = %v", err)
	}

	tr, err := transcode.New(zstdcodec.NewDecompressor())
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	defer tr.Close()

	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tr.Transcode(compressed); err != nil {
			b.Fatalf("Transcode() error = %v", err)
		}
	}
}

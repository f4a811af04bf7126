package transcode_test

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/klauspost/compress/flate"

	"github.com/transcodehq/transcode"
	"github.com/transcodehq/transcode/flatecodec"
	"github.com/transcodehq/transcode/gzipcodec"
	"github.com/transcodehq/transcode/noopcodec"
	"github.com/transcodehq/transcode/xxhashcodec"
	"github.com/transcodehq/transcode/zstdcodec"
)

// codecPair names a forward/inverse codec pair for round-trip tests.
type codecPair struct {
	name    string
	forward func() transcode.Codec
	inverse func() transcode.Codec
}

func pairs() []codecPair {
	return []codecPair{
		{
			name:    "gzip",
			forward: func() transcode.Codec { return gzipcodec.NewCompressor(gzip.DefaultCompression) },
			inverse: func() transcode.Codec { return gzipcodec.NewDecompressor() },
		},
		{
			name:    "flate",
			forward: func() transcode.Codec { return flatecodec.NewCompressor(flate.DefaultCompression) },
			inverse: func() transcode.Codec { return flatecodec.NewDecompressor() },
		},
		{
			name:    "zstd",
			forward: func() transcode.Codec { return zstdcodec.NewCompressor() },
			inverse: func() transcode.Codec { return zstdcodec.NewDecompressor() },
		},
		{
			name:    "xxhash",
			forward: func() transcode.Codec { return xxhashcodec.NewSigner() },
			inverse: func() transcode.Codec { return xxhashcodec.NewVerifier() },
		},
		{
			name:    "noop",
			forward: func() transcode.Codec { return noopcodec.New() },
			inverse: func() transcode.Codec { return noopcodec.New() },
		},
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"empty":      {},
		"tiny":       []byte("x"),
		"text":       []byte("the quick brown fox jumps over the lazy dog"),
		"repetitive": bytes.Repeat([]byte("ABCDEFGHIJ"), 10000),
		"binary":     binarySample(64 * 1024),
	}

	for _, pair := range pairs() {
		t.Run(pair.name, func(t *testing.T) {
			for name, input := range inputs {
				t.Run(name, func(t *testing.T) {
					encoded, err := transcode.Transcode(pair.forward(), input)
					if err != nil {
						t.Fatalf("forward Transcode() error = %v", err)
					}

					decoded, err := transcode.Transcode(pair.inverse(), encoded)
					if err != nil {
						t.Fatalf("inverse Transcode() error = %v", err)
					}

					if !bytes.Equal(decoded, input) {
						t.Errorf("round trip: got %d bytes, want %d bytes equal to input", len(decoded), len(input))
					}
				})
			}
		})
	}
}

func TestRoundTrip_SmallBufferFloor(t *testing.T) {
	// A tiny floor forces many margin growths and Process calls; results
	// must not change.
	input := bytes.Repeat([]byte("floor test data "), 500)

	for _, pair := range pairs() {
		t.Run(pair.name, func(t *testing.T) {
			encoded, err := transcode.Transcode(pair.forward(), input, transcode.WithBufferFloor(7))
			if err != nil {
				t.Fatalf("forward Transcode() error = %v", err)
			}
			decoded, err := transcode.Transcode(pair.inverse(), encoded, transcode.WithBufferFloor(7))
			if err != nil {
				t.Fatalf("inverse Transcode() error = %v", err)
			}
			if !bytes.Equal(decoded, input) {
				t.Error("round trip with small floor failed")
			}
		})
	}
}

func TestChainedCodecs(t *testing.T) {
	// Compress then sign; verify then decompress.
	input := bytes.Repeat([]byte("chained pipeline "), 1000)

	compressed, err := transcode.Transcode(gzipcodec.NewCompressor(gzip.BestSpeed), input)
	if err != nil {
		t.Fatalf("compress error = %v", err)
	}
	signed, err := transcode.Transcode(xxhashcodec.NewSigner(), compressed)
	if err != nil {
		t.Fatalf("sign error = %v", err)
	}

	verified, err := transcode.Transcode(xxhashcodec.NewVerifier(), signed)
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	restored, err := transcode.Transcode(gzipcodec.NewDecompressor(), verified)
	if err != nil {
		t.Fatalf("decompress error = %v", err)
	}

	if !bytes.Equal(restored, input) {
		t.Error("chained round trip failed")
	}
}

func TestTranscoder_AmortizedReuse(t *testing.T) {
	tr, err := transcode.New(zstdcodec.NewCompressor())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer tr.Close()

	dec, err := transcode.New(zstdcodec.NewDecompressor())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer dec.Close()

	for i := 0; i < 10; i++ {
		input := bytes.Repeat([]byte{byte('a' + i)}, 1000)

		encoded, err := tr.Transcode(input)
		if err != nil {
			t.Fatalf("Transcode() #%d error = %v", i, err)
		}
		decoded, err := dec.Transcode(encoded)
		if err != nil {
			t.Fatalf("decode #%d error = %v", i, err)
		}
		if !bytes.Equal(decoded, input) {
			t.Errorf("round trip #%d failed", i)
		}
	}
}

// binarySample produces deterministic pseudo-random bytes.
func binarySample(n int) []byte {
	data := make([]byte, n)
	state := uint32(2463534242)
	for i := range data {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		data[i] = byte(state)
	}
	return data
}

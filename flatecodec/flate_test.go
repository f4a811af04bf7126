package flatecodec

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/flate"

	"github.com/transcodehq/transcode"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", []byte{}},
		{"small", []byte("raw deflate test data")},
		{"large", bytes.Repeat([]byte("0123456789"), 20000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := transcode.Transcode(NewCompressor(flate.DefaultCompression), tt.input)
			if err != nil {
				t.Fatalf("compress error = %v", err)
			}

			decompressed, err := transcode.Transcode(NewDecompressor(), compressed)
			if err != nil {
				t.Fatalf("decompress error = %v", err)
			}

			if !bytes.Equal(decompressed, tt.input) {
				t.Errorf("round trip: got %d bytes, want %d", len(decompressed), len(tt.input))
			}
		})
	}
}

func TestDecompressor_ConcatenatedStreams(t *testing.T) {
	first, err := transcode.Transcode(NewCompressor(flate.BestSpeed), []byte("one "))
	if err != nil {
		t.Fatalf("compress error = %v", err)
	}
	second, err := transcode.Transcode(NewCompressor(flate.BestSpeed), []byte("two"))
	if err != nil {
		t.Fatalf("compress error = %v", err)
	}

	joined := append(append([]byte{}, first...), second...)
	decoded, err := transcode.Transcode(NewDecompressor(), joined)
	if err != nil {
		t.Fatalf("decompress error = %v", err)
	}

	if got := string(decoded); got != "one two" {
		t.Errorf("decoded = %q, want %q", got, "one two")
	}
}

func TestDecompressor_TruncatedData(t *testing.T) {
	compressed, err := transcode.Transcode(NewCompressor(flate.DefaultCompression), bytes.Repeat([]byte("z"), 4096))
	if err != nil {
		t.Fatalf("compress error = %v", err)
	}

	_, err = transcode.Transcode(NewDecompressor(), compressed[:len(compressed)/2])
	if err == nil {
		t.Error("Transcode() expected error for truncated deflate data, got nil")
	}
}

func TestCompressor_InvalidLevel(t *testing.T) {
	_, err := transcode.Transcode(NewCompressor(99), []byte("data"))
	if err == nil {
		t.Error("Transcode() expected error for invalid level, got nil")
	}
}

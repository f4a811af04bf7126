package xxhashcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/transcodehq/transcode"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", []byte{}},
		{"below trailer size", []byte("abc")},
		{"exactly trailer size", []byte("12345678")},
		{"text", []byte("the quick brown fox jumps over the lazy dog")},
		{"large", bytes.Repeat([]byte("XYZ"), 100000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, err := transcode.Transcode(NewSigner(), tt.input)
			if err != nil {
				t.Fatalf("sign error = %v", err)
			}
			if got, want := len(signed), len(tt.input)+TrailerSize; got != want {
				t.Errorf("len(signed) = %d, want %d", got, want)
			}

			verified, err := transcode.Transcode(NewVerifier(), signed)
			if err != nil {
				t.Fatalf("verify error = %v", err)
			}
			if !bytes.Equal(verified, tt.input) {
				t.Errorf("round trip: got %d bytes, want %d", len(verified), len(tt.input))
			}
		})
	}
}

func TestSigner_TrailerIsDigest(t *testing.T) {
	input := []byte("digest check payload")

	signed, err := transcode.Transcode(NewSigner(), input)
	if err != nil {
		t.Fatalf("sign error = %v", err)
	}

	if !bytes.Equal(signed[:len(input)], input) {
		t.Error("payload was not passed through unchanged")
	}

	got := binary.BigEndian.Uint64(signed[len(input):])
	if want := xxhash.Sum64(input); got != want {
		t.Errorf("trailer = %016x, want %016x", got, want)
	}
}

func TestVerifier_CorruptedPayload(t *testing.T) {
	signed, err := transcode.Transcode(NewSigner(), []byte("corruptible payload"))
	if err != nil {
		t.Fatalf("sign error = %v", err)
	}

	signed[3] ^= 0x01
	_, err = transcode.Transcode(NewVerifier(), signed)
	if !errors.Is(err, ErrChecksum) {
		t.Errorf("verify error = %v, want ErrChecksum", err)
	}
}

func TestVerifier_CorruptedTrailer(t *testing.T) {
	signed, err := transcode.Transcode(NewSigner(), []byte("corruptible payload"))
	if err != nil {
		t.Fatalf("sign error = %v", err)
	}

	signed[len(signed)-1] ^= 0x80
	_, err = transcode.Transcode(NewVerifier(), signed)
	if !errors.Is(err, ErrChecksum) {
		t.Errorf("verify error = %v, want ErrChecksum", err)
	}
}

func TestVerifier_Truncated(t *testing.T) {
	_, err := transcode.Transcode(NewVerifier(), []byte("short"))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("verify error = %v, want ErrTruncated", err)
	}
}

func TestVerifier_TightMargin(t *testing.T) {
	// Small output views force the verifier to emit the payload across
	// many calls while rotating its held-back tail.
	input := bytes.Repeat([]byte("rotating tail "), 20)

	signed, err := transcode.Transcode(NewSigner(), input)
	if err != nil {
		t.Fatalf("sign error = %v", err)
	}

	v := NewVerifier()
	if err := v.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer v.Close()
	if err := v.Start(transcode.Write); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	var got []byte
	in := signed
	for i := 0; ; i++ {
		if i > 10*len(signed) {
			t.Fatal("verifier made no progress")
		}
		out := make([]byte, 5)
		consumed, produced, status, err := v.Process(in, out)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		in = in[consumed:]
		got = append(got, out[:produced]...)
		if status == transcode.StatusEnd {
			break
		}
	}

	if !bytes.Equal(got, input) {
		t.Errorf("verified payload = %d bytes, want %d equal to input", len(got), len(input))
	}
}

// Package xxhashcodec provides integrity codecs backed by
// github.com/cespare/xxhash/v2. The Signer passes bytes through unchanged
// and appends an 8-byte big-endian XXH64 digest; the Verifier strips the
// trailer and fails if the digest does not match the payload.
package xxhashcodec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/transcodehq/transcode"
)

// TrailerSize is the length in bytes of the appended digest.
const TrailerSize = 8

// Sentinel errors for well-defined error conditions.
var (
	// ErrChecksum indicates the trailer digest does not match the payload.
	ErrChecksum = errors.New("xxhashcodec: checksum mismatch")

	// ErrTruncated indicates the input is shorter than the digest trailer.
	ErrTruncated = errors.New("xxhashcodec: input shorter than trailer")
)

// Compile-time checks that both codecs implement transcode.Codec.
var (
	_ transcode.Codec = (*Signer)(nil)
	_ transcode.Codec = (*Verifier)(nil)
)

// Signer passes bytes through while hashing them, then appends the digest.
type Signer struct {
	h       *xxhash.Digest
	trailer []byte
	pos     int
	started bool
}

// NewSigner returns a signing codec.
func NewSigner() *Signer {
	return &Signer{}
}

// Init creates the hash state.
func (s *Signer) Init() error {
	s.h = xxhash.New()
	return nil
}

// Start begins a new signed segment.
func (s *Signer) Start(dir transcode.Direction) error {
	s.h.Reset()
	s.trailer = nil
	s.pos = 0
	s.started = true
	return nil
}

// Process copies input to output, hashing the bytes that pass through. An
// empty in view emits the digest trailer.
func (s *Signer) Process(in, out []byte) (int, int, transcode.Status, error) {
	if !s.started {
		return 0, 0, transcode.StatusOK, fmt.Errorf("xxhashcodec: process before start: %w", transcode.ErrProtocol)
	}

	if len(in) > 0 {
		n := copy(out, in)
		s.h.Write(in[:n])
		return n, n, transcode.StatusOK, nil
	}

	if s.trailer == nil {
		s.trailer = binary.BigEndian.AppendUint64(nil, s.h.Sum64())
	}
	n := copy(out, s.trailer[s.pos:])
	s.pos += n
	if s.pos == TrailerSize {
		return 0, n, transcode.StatusEnd, nil
	}
	return 0, n, transcode.StatusOK, nil
}

// MinOutputSize leaves room for the trailer.
func (s *Signer) MinOutputSize(in []byte) int {
	return max(len(in), TrailerSize)
}

// ExpectedOutputSize is the payload plus the trailer.
func (s *Signer) ExpectedOutputSize(in []byte) int {
	return len(in) + TrailerSize
}

// Close is a no-op; the hash state holds no external resources.
func (s *Signer) Close() error {
	s.h = nil
	return nil
}

// Verifier strips and checks the digest trailer appended by a Signer. The
// final TrailerSize bytes are held back until the engine signals end of
// input, since only then is the payload/trailer split known.
type Verifier struct {
	h       *xxhash.Digest
	tail    [TrailerSize]byte
	tailLen int
	started bool
	checked bool
}

// NewVerifier returns a verifying codec.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Init creates the hash state.
func (v *Verifier) Init() error {
	v.h = xxhash.New()
	return nil
}

// Start begins a new signed segment.
func (v *Verifier) Start(dir transcode.Direction) error {
	v.h.Reset()
	v.tailLen = 0
	v.started = true
	v.checked = false
	return nil
}

// Process emits payload bytes, always retaining the most recent TrailerSize
// bytes as the candidate trailer. An empty in view verifies the digest.
func (v *Verifier) Process(in, out []byte) (int, int, transcode.Status, error) {
	if !v.started {
		return 0, 0, transcode.StatusOK, fmt.Errorf("xxhashcodec: process before start: %w", transcode.ErrProtocol)
	}

	if len(in) == 0 {
		if v.tailLen < TrailerSize {
			return 0, 0, transcode.StatusOK, ErrTruncated
		}
		if !v.checked {
			want := binary.BigEndian.Uint64(v.tail[:])
			if got := v.h.Sum64(); got != want {
				return 0, 0, transcode.StatusOK, fmt.Errorf("%w: digest %016x, trailer %016x", ErrChecksum, got, want)
			}
			v.checked = true
		}
		return 0, 0, transcode.StatusEnd, nil
	}

	// Everything beyond the final TrailerSize bytes of tail+in is payload.
	surplus := v.tailLen + len(in) - TrailerSize
	if surplus < 0 {
		surplus = 0
	}
	emit := min(surplus, len(out))

	// Payload comes from the retained tail first, then from in.
	fromTail := min(emit, v.tailLen)
	v.h.Write(v.tail[:fromTail])
	copy(out, v.tail[:fromTail])
	copy(v.tail[:], v.tail[fromTail:v.tailLen])
	v.tailLen -= fromTail

	fromIn := emit - fromTail
	v.h.Write(in[:fromIn])
	copy(out[fromTail:], in[:fromIn])
	consumed := fromIn

	// Refill the tail with the newest bytes.
	refill := min(TrailerSize-v.tailLen, len(in)-fromIn)
	copy(v.tail[v.tailLen:], in[fromIn:fromIn+refill])
	v.tailLen += refill
	consumed += refill

	return consumed, emit, transcode.StatusOK, nil
}

// MinOutputSize asks for room to pass the payload through.
func (v *Verifier) MinOutputSize(in []byte) int {
	return max(len(in), 1)
}

// ExpectedOutputSize is the input minus the trailer.
func (v *Verifier) ExpectedOutputSize(in []byte) int {
	return max(len(in)-TrailerSize, 0)
}

// Close is a no-op; the hash state holds no external resources.
func (v *Verifier) Close() error {
	v.h = nil
	return nil
}

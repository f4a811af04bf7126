// Package noopcodec provides an identity codec that copies input to output
// unchanged. It is its own inverse and is useful for testing the engine and
// for pipelines where a stage is optional.
package noopcodec

import (
	"github.com/transcodehq/transcode"
)

// Compile-time check that Codec implements transcode.Codec.
var _ transcode.Codec = (*Codec)(nil)

// Codec implements the identity transform.
type Codec struct{}

// New returns a new identity codec.
func New() *Codec {
	return &Codec{}
}

// Init is a no-op.
func (c *Codec) Init() error { return nil }

// Start is a no-op; the identity transform holds no segment state.
func (c *Codec) Start(dir transcode.Direction) error { return nil }

// Process copies as many bytes as fit and ends once the input is exhausted.
func (c *Codec) Process(in, out []byte) (int, int, transcode.Status, error) {
	n := copy(out, in)
	if n == len(in) {
		return n, n, transcode.StatusEnd, nil
	}
	return n, n, transcode.StatusOK, nil
}

// MinOutputSize asks for room to pass the input through, at least one byte.
func (c *Codec) MinOutputSize(in []byte) int {
	return max(len(in), 1)
}

// ExpectedOutputSize is exact for the identity transform.
func (c *Codec) ExpectedOutputSize(in []byte) int {
	return len(in)
}

// Close is a no-op.
func (c *Codec) Close() error { return nil }

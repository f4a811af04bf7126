// Package zstdcodec provides zstd compression and decompression codecs
// backed by github.com/klauspost/compress/zstd.
//
// The zstd APIs operate on whole frames, so both codecs buffer the segment
// internally: input is accumulated until the engine signals end of input,
// the frame is encoded or decoded in one shot, and the result is drained
// into whatever output space the engine provides. Concatenated frames are
// handled natively by the decoder.
package zstdcodec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/transcodehq/transcode"
)

// Compile-time checks that both codecs implement transcode.Codec.
var (
	_ transcode.Codec = (*Compressor)(nil)
	_ transcode.Codec = (*Decompressor)(nil)
)

// Compressor encodes bytes as a zstd frame.
type Compressor struct {
	level   zstd.EncoderLevel
	enc     *zstd.Encoder
	src     []byte
	out     []byte
	pos     int
	started bool
	encoded bool
}

// NewCompressor returns a zstd compressor at the default level.
func NewCompressor() *Compressor {
	return &Compressor{level: zstd.SpeedDefault}
}

// NewCompressorLevel returns a zstd compressor at the given level.
func NewCompressorLevel(level zstd.EncoderLevel) *Compressor {
	return &Compressor{level: level}
}

// Init creates the underlying encoder.
func (c *Compressor) Init() error {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(c.level))
	if err != nil {
		return fmt.Errorf("zstdcodec: %w", err)
	}
	c.enc = enc
	return nil
}

// Start begins a new frame.
func (c *Compressor) Start(dir transcode.Direction) error {
	c.src = c.src[:0]
	c.out = nil
	c.pos = 0
	c.started = true
	c.encoded = false
	return nil
}

// Process accumulates input until the engine signals end of input, then
// encodes the frame and drains it into out.
func (c *Compressor) Process(in, out []byte) (int, int, transcode.Status, error) {
	if !c.started {
		return 0, 0, transcode.StatusOK, fmt.Errorf("zstdcodec: process before start: %w", transcode.ErrProtocol)
	}

	var consumed int
	if len(in) > 0 {
		c.src = append(c.src, in...)
		consumed = len(in)
	} else if !c.encoded {
		c.out = c.enc.EncodeAll(c.src, nil)
		c.encoded = true
	}

	var produced int
	if c.encoded {
		produced = copy(out, c.out[c.pos:])
		c.pos += produced
		if c.pos == len(c.out) {
			return consumed, produced, transcode.StatusEnd, nil
		}
	}
	return consumed, produced, transcode.StatusOK, nil
}

// MinOutputSize leaves room for frame headers on tiny inputs.
func (c *Compressor) MinOutputSize(in []byte) int {
	return 64
}

// ExpectedOutputSize assumes a modest compression ratio.
func (c *Compressor) ExpectedOutputSize(in []byte) int {
	return len(in)/2 + 64
}

// Close releases the encoder.
func (c *Compressor) Close() error {
	if c.enc != nil {
		if err := c.enc.Close(); err != nil {
			return fmt.Errorf("zstdcodec: %w", err)
		}
		c.enc = nil
	}
	return nil
}

// Decompressor decodes zstd frames. Concatenated frames in one input are
// decoded in a single segment.
type Decompressor struct {
	dec     *zstd.Decoder
	src     []byte
	out     []byte
	pos     int
	started bool
	decoded bool
}

// NewDecompressor returns a zstd decompressor.
func NewDecompressor() *Decompressor {
	return &Decompressor{}
}

// Init creates the underlying decoder.
func (d *Decompressor) Init() error {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return fmt.Errorf("zstdcodec: %w", err)
	}
	d.dec = dec
	return nil
}

// Start begins a new segment.
func (d *Decompressor) Start(dir transcode.Direction) error {
	d.src = d.src[:0]
	d.out = nil
	d.pos = 0
	d.started = true
	d.decoded = false
	return nil
}

// Process accumulates input until the engine signals end of input, then
// decodes all frames and drains the result into out.
func (d *Decompressor) Process(in, out []byte) (int, int, transcode.Status, error) {
	if !d.started {
		return 0, 0, transcode.StatusOK, fmt.Errorf("zstdcodec: process before start: %w", transcode.ErrProtocol)
	}

	var consumed int
	if len(in) > 0 {
		d.src = append(d.src, in...)
		consumed = len(in)
	} else if !d.decoded {
		decoded, err := d.dec.DecodeAll(d.src, nil)
		if err != nil {
			return 0, 0, transcode.StatusOK, fmt.Errorf("zstdcodec: %w", err)
		}
		d.out = decoded
		d.decoded = true
	}

	var produced int
	if d.decoded {
		produced = copy(out, d.out[d.pos:])
		d.pos += produced
		if d.pos == len(d.out) {
			return consumed, produced, transcode.StatusEnd, nil
		}
	}
	return consumed, produced, transcode.StatusOK, nil
}

// MinOutputSize asks for a block's worth of space.
func (d *Decompressor) MinOutputSize(in []byte) int {
	return 128
}

// ExpectedOutputSize assumes input compressed at roughly 3:1.
func (d *Decompressor) ExpectedOutputSize(in []byte) int {
	return 3*len(in) + 64
}

// Close releases the decoder.
func (d *Decompressor) Close() error {
	if d.dec != nil {
		d.dec.Close()
		d.dec = nil
	}
	return nil
}

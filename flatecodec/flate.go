// Package flatecodec provides raw DEFLATE compression and decompression
// codecs backed by github.com/klauspost/compress/flate.
package flatecodec

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/transcodehq/transcode"
	"github.com/transcodehq/transcode/internal/bytesource"
)

// Compile-time checks that both codecs implement transcode.Codec.
var (
	_ transcode.Codec = (*Compressor)(nil)
	_ transcode.Codec = (*Decompressor)(nil)
)

// Compressor encodes bytes as a raw DEFLATE stream.
type Compressor struct {
	level   int
	buf     buffer
	fw      *flate.Writer
	started bool
	flushed bool
}

// NewCompressor returns a DEFLATE compressor with the given level.
// Levels follow flate: flate.DefaultCompression, flate.BestSpeed,
// flate.BestCompression, or 0-9.
func NewCompressor(level int) *Compressor {
	return &Compressor{level: level}
}

// Init creates the underlying writer, validating the level.
func (c *Compressor) Init() error {
	fw, err := flate.NewWriter(&c.buf, c.level)
	if err != nil {
		return fmt.Errorf("flatecodec: %w", err)
	}
	c.fw = fw
	return nil
}

// Start begins a new DEFLATE stream.
func (c *Compressor) Start(dir transcode.Direction) error {
	c.buf.reset()
	c.fw.Reset(&c.buf)
	c.started = true
	c.flushed = false
	return nil
}

// Process feeds input to the DEFLATE writer and drains encoded bytes into
// out. An empty in view flushes the final block.
func (c *Compressor) Process(in, out []byte) (int, int, transcode.Status, error) {
	if !c.started {
		return 0, 0, transcode.StatusOK, fmt.Errorf("flatecodec: process before start: %w", transcode.ErrProtocol)
	}

	var consumed int
	if len(in) > 0 {
		n, err := c.fw.Write(in)
		consumed = n
		if err != nil {
			return consumed, 0, transcode.StatusOK, fmt.Errorf("flatecodec: %w", err)
		}
	} else if !c.flushed {
		if err := c.fw.Close(); err != nil {
			return 0, 0, transcode.StatusOK, fmt.Errorf("flatecodec: %w", err)
		}
		c.flushed = true
	}

	produced := c.buf.drain(out)
	if c.flushed && c.buf.len() == 0 {
		return consumed, produced, transcode.StatusEnd, nil
	}
	return consumed, produced, transcode.StatusOK, nil
}

// MinOutputSize leaves room for a stored block header and the final block.
func (c *Compressor) MinOutputSize(in []byte) int {
	return 64
}

// ExpectedOutputSize assumes a modest compression ratio.
func (c *Compressor) ExpectedOutputSize(in []byte) int {
	return len(in)/2 + 64
}

// Close releases the writer.
func (c *Compressor) Close() error {
	c.fw = nil
	c.buf.reset()
	return nil
}

// Decompressor decodes one raw DEFLATE stream per segment.
type Decompressor struct {
	src     *bytesource.Source
	fr      io.ReadCloser
	started bool
}

// NewDecompressor returns a DEFLATE decompressor.
func NewDecompressor() *Decompressor {
	return &Decompressor{}
}

// Init prepares the input source and reader.
func (d *Decompressor) Init() error {
	d.src = bytesource.New(nil)
	d.fr = flate.NewReader(d.src)
	return nil
}

// Start begins a new DEFLATE stream.
func (d *Decompressor) Start(dir transcode.Direction) error {
	if err := d.fr.(flate.Resetter).Reset(d.src, nil); err != nil {
		return fmt.Errorf("flatecodec: %w", err)
	}
	d.started = true
	return nil
}

// Process decodes bytes from in into out, stopping at the final block of
// the current stream.
func (d *Decompressor) Process(in, out []byte) (int, int, transcode.Status, error) {
	if !d.started {
		return 0, 0, transcode.StatusOK, fmt.Errorf("flatecodec: process before start: %w", transcode.ErrProtocol)
	}

	d.src.Reset(in)

	n, err := d.fr.Read(out)
	if err == io.EOF {
		return d.src.Pos(), n, transcode.StatusEnd, nil
	}
	if err != nil {
		return d.src.Pos(), n, transcode.StatusOK, fmt.Errorf("flatecodec: %w", err)
	}
	return d.src.Pos(), n, transcode.StatusOK, nil
}

// MinOutputSize asks for a block's worth of space.
func (d *Decompressor) MinOutputSize(in []byte) int {
	return 128
}

// ExpectedOutputSize assumes input compressed at roughly 3:1.
func (d *Decompressor) ExpectedOutputSize(in []byte) int {
	return 3*len(in) + 64
}

// Close releases the reader.
func (d *Decompressor) Close() error {
	if d.fr != nil {
		if err := d.fr.Close(); err != nil {
			return fmt.Errorf("flatecodec: %w", err)
		}
		d.fr = nil
	}
	d.src = nil
	return nil
}

// buffer is a minimal drainable byte queue for encoder output.
type buffer struct {
	data []byte
	pos  int
}

func (b *buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *buffer) len() int {
	return len(b.data) - b.pos
}

func (b *buffer) drain(out []byte) int {
	n := copy(out, b.data[b.pos:])
	b.pos += n
	if b.pos == len(b.data) {
		b.data = b.data[:0]
		b.pos = 0
	}
	return n
}

func (b *buffer) reset() {
	b.data = b.data[:0]
	b.pos = 0
}

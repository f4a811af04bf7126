// Package gzipcodec provides gzip compression and decompression codecs.
//
// The decompressor stops at gzip member boundaries, so a file built from
// concatenated members decodes correctly: the engine restarts the codec for
// each member and the outputs are concatenated.
package gzipcodec

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/transcodehq/transcode"
	"github.com/transcodehq/transcode/internal/bytesource"
)

// Compile-time checks that both codecs implement transcode.Codec.
var (
	_ transcode.Codec = (*Compressor)(nil)
	_ transcode.Codec = (*Decompressor)(nil)
)

// Compressor encodes bytes into the gzip format.
type Compressor struct {
	level   int
	buf     buffer
	zw      *gzip.Writer
	started bool
	flushed bool
}

// NewCompressor returns a gzip compressor with the given compression level.
// Levels follow compress/gzip: gzip.DefaultCompression, gzip.BestSpeed,
// gzip.BestCompression, or 0-9.
func NewCompressor(level int) *Compressor {
	return &Compressor{level: level}
}

// Init validates the compression level.
func (c *Compressor) Init() error {
	if c.level < gzip.HuffmanOnly || c.level > gzip.BestCompression {
		return fmt.Errorf("gzipcodec: invalid compression level %d", c.level)
	}
	return nil
}

// Start begins a new gzip member.
func (c *Compressor) Start(dir transcode.Direction) error {
	c.buf.reset()
	if c.zw == nil {
		zw, err := gzip.NewWriterLevel(&c.buf, c.level)
		if err != nil {
			return fmt.Errorf("gzipcodec: %w", err)
		}
		c.zw = zw
	} else {
		c.zw.Reset(&c.buf)
	}
	c.started = true
	c.flushed = false
	return nil
}

// Process feeds input to the gzip writer and drains encoded bytes into out.
// An empty in view flushes the member trailer.
func (c *Compressor) Process(in, out []byte) (int, int, transcode.Status, error) {
	if !c.started {
		return 0, 0, transcode.StatusOK, fmt.Errorf("gzipcodec: process before start: %w", transcode.ErrProtocol)
	}

	var consumed int
	if len(in) > 0 {
		n, err := c.zw.Write(in)
		consumed = n
		if err != nil {
			return consumed, 0, transcode.StatusOK, fmt.Errorf("gzipcodec: %w", err)
		}
	} else if !c.flushed {
		if err := c.zw.Close(); err != nil {
			return 0, 0, transcode.StatusOK, fmt.Errorf("gzipcodec: %w", err)
		}
		c.flushed = true
	}

	produced := c.buf.drain(out)
	if c.flushed && c.buf.len() == 0 {
		return consumed, produced, transcode.StatusEnd, nil
	}
	return consumed, produced, transcode.StatusOK, nil
}

// MinOutputSize leaves room for the gzip header and trailer.
func (c *Compressor) MinOutputSize(in []byte) int {
	return 64
}

// ExpectedOutputSize assumes a modest compression ratio.
func (c *Compressor) ExpectedOutputSize(in []byte) int {
	return len(in)/2 + 64
}

// Close releases the writer.
func (c *Compressor) Close() error {
	c.zw = nil
	c.buf.reset()
	return nil
}

// Decompressor decodes one gzip member per segment.
type Decompressor struct {
	src     *bytesource.Source
	zr      *gzip.Reader
	started bool
	reset   bool
}

// NewDecompressor returns a gzip decompressor.
func NewDecompressor() *Decompressor {
	return &Decompressor{}
}

// Init prepares the input source.
func (d *Decompressor) Init() error {
	d.src = bytesource.New(nil)
	return nil
}

// Start begins a new gzip member. The member header is read on the next
// Process call, once input bytes are available.
func (d *Decompressor) Start(dir transcode.Direction) error {
	d.started = true
	d.reset = true
	return nil
}

// Process decodes bytes from in into out, stopping at the end of the
// current gzip member. Truncated or malformed input fails.
func (d *Decompressor) Process(in, out []byte) (int, int, transcode.Status, error) {
	if !d.started {
		return 0, 0, transcode.StatusOK, fmt.Errorf("gzipcodec: process before start: %w", transcode.ErrProtocol)
	}

	d.src.Reset(in)

	if d.reset {
		if len(in) == 0 {
			// A gzip member cannot be empty; without a header there is
			// nothing to decode.
			return 0, 0, transcode.StatusOK, fmt.Errorf("gzipcodec: missing header: %w", io.ErrUnexpectedEOF)
		}
		if err := d.readHeader(); err != nil {
			return d.src.Pos(), 0, transcode.StatusOK, fmt.Errorf("gzipcodec: %w", err)
		}
		d.reset = false
	}

	n, err := d.zr.Read(out)
	if err == io.EOF {
		return d.src.Pos(), n, transcode.StatusEnd, nil
	}
	if err != nil {
		return d.src.Pos(), n, transcode.StatusOK, fmt.Errorf("gzipcodec: %w", err)
	}
	return d.src.Pos(), n, transcode.StatusOK, nil
}

// readHeader (re)positions the gzip reader at the start of a member.
// Multistream is disabled so Read reports io.EOF at the member boundary
// instead of running into a following member.
func (d *Decompressor) readHeader() error {
	if d.zr == nil {
		zr, err := gzip.NewReader(d.src)
		if err != nil {
			return err
		}
		d.zr = zr
	} else if err := d.zr.Reset(d.src); err != nil {
		return err
	}
	d.zr.Multistream(false)
	return nil
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
	d.zr = nil
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

// Package bytesource adapts a replaceable byte slice to io.Reader and
// io.ByteReader. Decompressors in the standard library and in
// klauspost/compress read input byte-by-byte when the source implements
// io.ByteReader, which keeps them from buffering ahead; that makes the
// source's position an exact count of the bytes a decoder actually used,
// which segment-aware codecs report as consumed.
package bytesource

import "io"

// Source reads from a byte slice that can be swapped between calls. Reads
// past the end return io.EOF without blocking.
type Source struct {
	data []byte
	pos  int
}

// Compile-time checks for the interfaces decompressors sniff for.
var (
	_ io.Reader     = (*Source)(nil)
	_ io.ByteReader = (*Source)(nil)
)

// New returns a Source over data.
func New(data []byte) *Source {
	return &Source{data: data}
}

// Reset points the source at a new slice and rewinds the position.
func (s *Source) Reset(data []byte) {
	s.data = data
	s.pos = 0
}

// Pos returns the number of bytes read since the last Reset.
func (s *Source) Pos() int {
	return s.pos
}

// Read copies up to len(p) remaining bytes into p.
func (s *Source) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += n
	return n, nil
}

// ReadByte returns the next byte.
func (s *Source) ReadByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

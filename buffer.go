package transcode

import "fmt"

// Buffer is a growable byte container split into a filled region (data
// available to a consumer) and a margin region (free space available to a
// producer). Two cursors over one contiguous backing array keep the regions
// non-overlapping:
//
//	[0, read)        consumed, reclaimable
//	[read, write)    filled
//	[write, cap)     margin
//
// The invariant 0 <= read <= write <= cap holds after every operation.
// A Buffer is exclusively owned by the call context that created it and is
// not safe for concurrent use.
type Buffer struct {
	data  []byte
	read  int
	write int
}

// NewBuffer returns an empty buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, capacity)}
}

// NewBufferFrom returns a buffer pre-loaded with data: the filled region is
// the entire slice and the margin is empty. The buffer takes ownership of
// data.
func NewBufferFrom(data []byte) *Buffer {
	return &Buffer{data: data, write: len(data)}
}

// Filled returns a view of the filled region. The view is valid until the
// next mutating call.
func (b *Buffer) Filled() []byte {
	return b.data[b.read:b.write]
}

// Margin returns a mutable view of the margin region, for a producer to
// write into before calling Supply. The view is valid until the next
// mutating call.
func (b *Buffer) Margin() []byte {
	return b.data[b.write:]
}

// FilledLen returns the number of filled, unconsumed bytes.
func (b *Buffer) FilledLen() int {
	return b.write - b.read
}

// MarginLen returns the number of free margin bytes.
func (b *Buffer) MarginLen() int {
	return len(b.data) - b.write
}

// Cap returns the total capacity of the backing storage.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Consume marks n filled bytes as consumed.
func (b *Buffer) Consume(n int) error {
	if n < 0 || n > b.FilledLen() {
		return fmt.Errorf("%w: consume %d with %d filled", ErrBufferBounds, n, b.FilledLen())
	}
	b.read += n
	return nil
}

// Supply marks n margin bytes as filled, after a producer wrote them into
// the Margin view.
func (b *Buffer) Supply(n int) error {
	if n < 0 || n > b.MarginLen() {
		return fmt.Errorf("%w: supply %d with %d margin", ErrBufferBounds, n, b.MarginLen())
	}
	b.write += n
	return nil
}

// EnsureMargin guarantees MarginLen() >= min on return. It first compacts,
// shifting the filled region to the front of the storage and reclaiming
// already-consumed bytes, and grows the backing array only if compaction
// alone is insufficient. The filled bytes are never altered or lost.
func (b *Buffer) EnsureMargin(min int) {
	if min <= b.MarginLen() {
		return
	}

	filled := b.FilledLen()
	if b.read > 0 {
		copy(b.data, b.data[b.read:b.write])
		b.read = 0
		b.write = filled
	}
	if min <= b.MarginLen() {
		return
	}

	// Amortized growth: double, or exact-fit when doubling is not enough.
	capacity := 2 * len(b.data)
	if capacity < filled+min {
		capacity = filled + min
	}
	grown := make([]byte, capacity)
	copy(grown, b.data[:b.write])
	b.data = grown
}

// Take truncates the storage to exactly the filled length and returns it,
// transferring ownership to the caller. When nothing has been consumed the
// backing array is returned without copying. The buffer must not be used
// afterwards.
func (b *Buffer) Take() []byte {
	filled := b.FilledLen()
	if b.read > 0 {
		copy(b.data, b.data[b.read:b.write])
	}
	out := b.data[:filled]
	b.data = nil
	b.read = 0
	b.write = 0
	return out
}

package transcode

// Status is the outcome of a single Process call.
type Status int

const (
	// StatusOK means more work may remain, or more output space is needed.
	StatusOK Status = iota

	// StatusEnd means the codec reached a defined end-of-stream for the
	// current logical segment.
	StatusEnd
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Direction is the side of a duplex stream a codec is driven from.
type Direction int

const (
	// Read means the codec transforms bytes being read from a source
	// (typically decoding).
	Read Direction = iota

	// Write means the codec transforms bytes being written to a sink
	// (typically encoding). The bulk driver always uses Write.
	Write
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return "unknown"
	}
}

// Codec is a pluggable byte-to-byte transformation. The engine knows nothing
// about the specific transform; it only feeds input, provides output space,
// and obeys the statuses a codec reports.
//
// Lifecycle: Init is called once before any other method and Close exactly
// once after, on every exit path. Start begins a logical segment and may be
// called again after StatusEnd to process a following segment (e.g.
// concatenated compressed members).
type Codec interface {
	// Init prepares internal state. No other method may be called before it.
	Init() error

	// Start resets the codec for a new logical segment in the given
	// direction.
	Start(dir Direction) error

	// Process consumes up to len(in) bytes and produces up to len(out)
	// bytes, reporting how many of each along with a status. Consuming and
	// producing nothing on a given call is valid (e.g. when more output
	// space is needed). An empty in view signals that no further input will
	// arrive for the current segment; the codec must then flush pending
	// output and eventually return StatusEnd.
	//
	// The returned counts must be truthful even when err is non-nil; the
	// caller applies buffer accounting before propagating the error.
	Process(in, out []byte) (consumed, produced int, status Status, err error)

	// MinOutputSize returns a lower bound on the output space the caller
	// should provide before the next Process call, given the current input.
	// It is a scheduling hint only: Process must still behave correctly
	// (produce nothing, not fail) when given less.
	MinOutputSize(in []byte) int

	// ExpectedOutputSize estimates the total output size for the given
	// input. It is used only to size the first output allocation and may be
	// wrong in either direction.
	ExpectedOutputSize(in []byte) int

	// Close releases any resources held by the codec.
	Close() error
}

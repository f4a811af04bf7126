package transcode

import "fmt"

// Mode is the current phase of a duplex stream session.
type Mode int

const (
	// ModeIdle is the initial mode; no direction has been chosen yet.
	ModeIdle Mode = iota

	// ModeRead means the stream is actively decoding bytes for a reader.
	ModeRead

	// ModeWrite means the stream is actively encoding bytes from a writer.
	ModeWrite

	// ModeStop means the codec reported completion; buffers may still hold
	// unread output.
	ModeStop

	// ModeClose means resources have been released. Terminal.
	ModeClose

	// ModePanic means an unrecoverable codec error occurred. Terminal and
	// reachable from any non-terminal mode; only codec Close is permitted
	// afterwards.
	ModePanic
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeStop:
		return "stop"
	case ModeClose:
		return "close"
	case ModePanic:
		return "panic"
	default:
		return "unknown"
	}
}

// State is the bookkeeping record a duplex stream wrapper threads through a
// multi-call transcoding session: the current mode, the status of the last
// Process call, an auto-stop policy flag, and one buffer per direction. The
// State owns its buffers but never calls into the codec itself; lifecycle
// calls belong to the wrapper.
//
// Exactly one of read/write is active at a time. ModePanic is a sink: once
// entered it is never exited. ModeClose is terminal once entered.
type State struct {
	mode      Mode
	code      Status
	stopOnEnd bool
	in        *Buffer
	out       *Buffer
}

// NewState returns a State in ModeIdle with code StatusOK, auto-stop
// disabled, and two empty buffers of the given capacity.
func NewState(bufSize int) *State {
	return &State{
		in:  NewBuffer(bufSize),
		out: NewBuffer(bufSize),
	}
}

// Mode returns the current mode.
func (s *State) Mode() Mode { return s.mode }

// Code returns the status reported by the most recent Process call.
func (s *State) Code() Status { return s.code }

// StopOnEnd reports whether the stream auto-transitions to ModeStop once the
// codec reports StatusEnd.
func (s *State) StopOnEnd() bool { return s.stopOnEnd }

// SetStopOnEnd sets the auto-stop policy.
func (s *State) SetStopOnEnd(v bool) { s.stopOnEnd = v }

// In returns the buffer holding not-yet-processed input.
func (s *State) In() *Buffer { return s.in }

// Out returns the buffer holding processed but undelivered output.
func (s *State) Out() *Buffer { return s.out }

// Begin chooses the stream's active direction on first use. Only valid from
// ModeIdle; the wrapper is expected to have run codec Init and Start.
func (s *State) Begin(dir Direction) error {
	if s.mode != ModeIdle {
		return fmt.Errorf("%w: begin %s in mode %s", ErrProtocol, dir, s.mode)
	}
	if dir == Read {
		s.mode = ModeRead
	} else {
		s.mode = ModeWrite
	}
	return nil
}

// Observe records the status returned by a Process call. When the status is
// StatusEnd and the auto-stop policy is set, an active stream transitions to
// ModeStop.
func (s *State) Observe(status Status) {
	s.code = status
	if status == StatusEnd && s.stopOnEnd && (s.mode == ModeRead || s.mode == ModeWrite) {
		s.mode = ModeStop
	}
}

// Stop explicitly transitions an active stream to ModeStop.
func (s *State) Stop() error {
	if s.mode != ModeRead && s.mode != ModeWrite {
		return fmt.Errorf("%w: stop in mode %s", ErrProtocol, s.mode)
	}
	s.mode = ModeStop
	return nil
}

// Panic marks the stream as unrecoverable. Valid from any mode; terminal
// modes are left as they are.
func (s *State) Panic() {
	if s.mode == ModeClose || s.mode == ModePanic {
		return
	}
	s.mode = ModePanic
}

// Close transitions to ModeClose. Valid from ModeIdle, ModeStop and
// ModePanic, and idempotent once closed; an active stream must Stop first.
// The wrapper runs codec Close exactly once alongside this transition.
func (s *State) Close() error {
	switch s.mode {
	case ModeClose:
		return nil
	case ModeIdle, ModeStop, ModePanic:
		s.mode = ModeClose
		return nil
	default:
		return fmt.Errorf("%w: close in mode %s", ErrProtocol, s.mode)
	}
}

// Package transcode is a generic engine for transforming a byte stream
// through a pluggable codec: compression, decompression, checksumming, or
// any other byte-to-byte transducer. The engine knows nothing about the
// transform itself; it owns buffer management and flow control, feeding
// input to a codec, collecting output, growing buffers on demand, and
// restarting the codec when one logical segment ends while input remains
// (concatenated sub-streams).
//
// Example usage:
//
//	out, err := transcode.Transcode(gzipcodec.NewCompressor(gzip.DefaultCompression), data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// To amortize codec setup across many inputs, create a Transcoder and close
// it when done:
//
//	t, err := transcode.New(zstdcodec.NewDecompressor())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Close()
//
//	for _, blob := range blobs {
//	    plain, err := t.Transcode(blob)
//	    ...
//	}
package transcode

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/transcodehq/transcode/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrBufferBounds indicates a Consume or Supply call requested more
	// bytes than available. It signals a driver or codec logic defect and
	// is fatal to the current operation.
	ErrBufferBounds = errors.New("transcode: buffer bounds exceeded")

	// ErrClosed indicates the transcoder has been closed.
	ErrClosed = errors.New("transcode: transcoder closed")

	// ErrProtocol indicates misuse of the engine or a codec, such as a
	// state transition out of order.
	ErrProtocol = errors.New("transcode: protocol violation")

	// ErrNoCodec indicates no codec was provided.
	ErrNoCodec = errors.New("transcode: no codec provided")
)

// defaultBufferFloor guards the first output allocation against codecs
// whose sizing hints are degenerate (e.g. report zero).
const defaultBufferFloor = 256

// Transcoder drives one codec instance through bulk transcoding calls. The
// caller owns the codec lifecycle boundaries: New runs Init, Close runs the
// codec's Close, and any number of Transcode calls may happen in between.
// A Transcoder is not safe for concurrent use; the codec it wraps holds
// per-stream state.
type Transcoder struct {
	codec  Codec
	stats  stats.Collector
	logger *zap.Logger
	floor  int
	closed atomic.Bool
}

// New creates a Transcoder around codec and runs the codec's Init. The
// caller must Close the returned Transcoder to release codec resources.
func New(codec Codec, opts ...Option) (*Transcoder, error) {
	if codec == nil {
		return nil, ErrNoCodec
	}

	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	t := &Transcoder{
		codec:  codec,
		stats:  cfg.stats,
		logger: cfg.logger,
		floor:  cfg.floor,
	}

	if err := codec.Init(); err != nil {
		return nil, fmt.Errorf("transcode: init: %w", err)
	}

	t.logger.Debug("transcoder initialized", zap.Int("bufferFloor", t.floor))
	return t, nil
}

// Transcode runs the wrapped codec over input until it reports end of
// stream, returning the complete output. When the codec ends a segment
// while input bytes remain, it is restarted and the next segment is
// processed in the same call, so concatenated sub-streams decode as one
// input. A failed transcode returns no partial output.
func (t *Transcoder) Transcode(input []byte) ([]byte, error) {
	if t.closed.Load() {
		return nil, ErrClosed
	}

	t.stats.IncCounter(stats.MetricTranscodes, 1)
	start := time.Now()

	out, err := t.run(input)
	if err != nil {
		t.stats.IncCounter(stats.MetricErrors, 1)
		return nil, err
	}

	t.stats.IncCounter(stats.MetricBytesIn, int64(len(input)))
	t.stats.IncCounter(stats.MetricBytesOut, int64(len(out)))
	t.stats.ObserveHistogram(stats.MetricDuration, time.Since(start).Seconds())
	return out, nil
}

// Close releases the codec's resources. After Close, the transcoder should
// not be used.
func (t *Transcoder) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if err := t.codec.Close(); err != nil {
		return fmt.Errorf("transcode: close: %w", err)
	}
	return nil
}

// Codec returns the codec driven by this transcoder.
func (t *Transcoder) Codec() Codec {
	return t.codec
}

// run is the bulk driving loop: one complete input array in, one complete
// output array out.
func (t *Transcoder) run(input []byte) ([]byte, error) {
	in := NewBufferFrom(input)
	out := NewBuffer(t.initialSize(input))

	if err := t.codec.Start(Write); err != nil {
		return nil, fmt.Errorf("transcode: start: %w", err)
	}

	var (
		calls    int
		segments = 1
		need     = t.codec.MinOutputSize(in.Filled())
	)

	for {
		out.EnsureMargin(max(need, 1))

		consumed, produced, status, perr := t.codec.Process(in.Filled(), out.Margin())
		calls++

		// Buffer accounting must match what the codec reported even when
		// the call itself failed, so cleanup and diagnostics never
		// double-count or lose bytes.
		if err := in.Consume(consumed); err != nil {
			return nil, err
		}
		if err := out.Supply(produced); err != nil {
			return nil, err
		}
		if perr != nil {
			return nil, fmt.Errorf("transcode: process: %w", perr)
		}

		if status == StatusEnd {
			if in.FilledLen() > 0 {
				// A second logical segment begins immediately.
				if err := t.codec.Start(Write); err != nil {
					return nil, fmt.Errorf("transcode: start segment: %w", err)
				}
				segments++
				need = t.codec.MinOutputSize(in.Filled())
				continue
			}

			t.stats.IncCounter(stats.MetricProcessCalls, int64(calls))
			t.stats.IncCounter(stats.MetricSegments, int64(segments))
			t.logger.Debug("transcode complete",
				zap.Int("bytesIn", len(input)),
				zap.Int("bytesOut", out.FilledLen()),
				zap.Int("processCalls", calls),
				zap.Int("segments", segments),
			)
			return out.Take(), nil
		}

		if consumed == 0 && produced == 0 {
			// No forward progress: the codec wants more output space than
			// its hint admitted. Grow past the hint.
			need = max(2*need, t.floor)
			t.stats.IncCounter(stats.MetricBufferGrows, 1)
			continue
		}
		need = max(produced, t.codec.MinOutputSize(in.Filled()))
	}
}

// initialSize picks the first output allocation from the codec's hints,
// floored against degenerate estimates.
func (t *Transcoder) initialSize(input []byte) int {
	n := max(t.codec.MinOutputSize(input), t.codec.ExpectedOutputSize(input))
	return max(n, t.floor)
}

// Transcode runs codec over input with a managed lifecycle: the codec's
// Init is called before processing and its Close exactly once before
// returning, on every exit path including failures.
func Transcode(codec Codec, input []byte, opts ...Option) (out []byte, err error) {
	t, err := New(codec, opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := t.Close(); cerr != nil && err == nil {
			err = cerr
			out = nil
		}
	}()

	return t.Transcode(input)
}

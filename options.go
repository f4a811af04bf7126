package transcode

import (
	"go.uber.org/zap"

	"github.com/transcodehq/transcode/internal/stats"
)

// Option configures a Transcoder.
type Option interface {
	apply(*options)
}

// options holds the transcoder configuration.
type options struct {
	stats  stats.Collector
	logger *zap.Logger
	floor  int
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
		floor:  defaultBufferFloor,
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithBufferFloor sets the minimum size of the first output allocation,
// guarding against codecs whose sizing hints are degenerate.
// Default is 256 bytes. Values below 1 are ignored.
func WithBufferFloor(n int) Option {
	return optionFunc(func(o *options) {
		if n >= 1 {
			o.floor = n
		}
	})
}

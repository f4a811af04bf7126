// Package transcoderfx provides an fx module for a transcoder built around
// an application-supplied codec.
package transcoderfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/transcodehq/transcode"
	"github.com/transcodehq/transcode/internal/stats"
	"github.com/transcodehq/transcode/internal/stats/logger"
)

// Module provides a *transcode.Transcoder. Requires a transcode.Codec and a
// *zap.Logger to be provided by the application.
var Module = fx.Module("transcoder",
	fx.Provide(
		newStatsCollector,
		newTranscoder,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("transcode.stats"))
}

// Params holds dependencies for creating the transcoder.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Codec     transcode.Codec
	Lifecycle fx.Lifecycle
}

func newTranscoder(p Params) (*transcode.Transcoder, error) {
	t, err := transcode.New(p.Codec,
		transcode.WithStats(p.Collector),
		transcode.WithLogger(p.Logger.Named("transcode")),
	)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return t.Close()
		},
	})

	return t, nil
}

// Package zstdtranscoderfx provides a self-contained fx module for zstd
// compression and decompression transcoders.
package zstdtranscoderfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/transcodehq/transcode"
	"github.com/transcodehq/transcode/internal/stats"
	"github.com/transcodehq/transcode/internal/stats/logger"
	"github.com/transcodehq/transcode/zstdcodec"
)

// Module provides zstd compressor and decompressor transcoders. Requires a
// *zap.Logger to be provided.
var Module = fx.Module("zstdtranscoder",
	fx.Provide(
		newStatsCollector,
		newTranscoders,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("transcode.stats"))
}

// Params holds dependencies for creating the transcoders.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided transcoders.
type Result struct {
	fx.Out

	Compressor   *transcode.Transcoder `name:"zstdCompressor"`
	Decompressor *transcode.Transcoder `name:"zstdDecompressor"`
}

func newTranscoders(p Params) (Result, error) {
	opts := []transcode.Option{
		transcode.WithStats(p.Collector),
		transcode.WithLogger(p.Logger.Named("transcode")),
	}

	comp, err := transcode.New(zstdcodec.NewCompressor(), opts...)
	if err != nil {
		return Result{}, err
	}

	decomp, err := transcode.New(zstdcodec.NewDecompressor(), opts...)
	if err != nil {
		comp.Close()
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			cerr := comp.Close()
			if derr := decomp.Close(); derr != nil {
				return derr
			}
			return cerr
		},
	})

	return Result{
		Compressor:   comp,
		Decompressor: decomp,
	}, nil
}

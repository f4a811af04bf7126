package main

import (
	"compress/gzip"
	"fmt"

	"github.com/klauspost/compress/flate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/transcodehq/transcode"
	"github.com/transcodehq/transcode/flatecodec"
	"github.com/transcodehq/transcode/gzipcodec"
	"github.com/transcodehq/transcode/noopcodec"
	"github.com/transcodehq/transcode/xxhashcodec"
	"github.com/transcodehq/transcode/zstdcodec"
)

var (
	// Global flags.
	codecName string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "transcode",
	Short: "Run byte-stream codecs over files or standard input",
	Long: `Transcode runs a pluggable byte-to-byte codec over a complete input,
producing a complete output: compression, decompression, or checksum
tagging and verification.

Examples:
  # Compress a file with zstd
  transcode encode --codec zstd input.txt -o input.txt.zst

  # Decompress gzip data from stdin to stdout
  cat archive.gz | transcode decode --codec gzip

  # List available codecs
  transcode codecs`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&codecName, "codec", "c", "zstd", "codec to use (see 'transcode codecs')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newCodec builds the forward or inverse codec for a name.
func newCodec(name string, dir transcode.Direction) (transcode.Codec, error) {
	encode := dir == transcode.Write
	switch name {
	case "zstd":
		if encode {
			return zstdcodec.NewCompressor(), nil
		}
		return zstdcodec.NewDecompressor(), nil
	case "gzip":
		if encode {
			return gzipcodec.NewCompressor(gzip.DefaultCompression), nil
		}
		return gzipcodec.NewDecompressor(), nil
	case "flate":
		if encode {
			return flatecodec.NewCompressor(flate.DefaultCompression), nil
		}
		return flatecodec.NewDecompressor(), nil
	case "xxhash":
		if encode {
			return xxhashcodec.NewSigner(), nil
		}
		return xxhashcodec.NewVerifier(), nil
	case "noop":
		return noopcodec.New(), nil
	default:
		return nil, fmt.Errorf("unknown codec %q; run 'transcode codecs' for the list", name)
	}
}

// newLogger returns a development logger when --verbose is set.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/transcodehq/transcode"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Run the forward transform of a codec over input",
	Long: `Encode reads the whole input, runs the codec's forward transform
(compression, checksum tagging, ...) and writes the complete output.

With no file argument, input is read from stdin. With no --output flag,
output is written to stdout.

Examples:
  # Compress a file with zstd
  transcode encode --codec zstd input.txt -o input.txt.zst

  # Tag stdin with an xxhash trailer
  cat data.bin | transcode encode --codec xxhash > data.tagged`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

var (
	encodeOutput string
	encodeTiming bool
)

func init() {
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "output file (default stdout)")
	encodeCmd.Flags().BoolVar(&encodeTiming, "timing", false, "report timing and sizes to stderr")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	return runTransform(args, transcode.Write, encodeOutput, encodeTiming)
}

// runTransform is the shared body of encode and decode.
func runTransform(args []string, dir transcode.Direction, output string, timing bool) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	codec, err := newCodec(codecName, dir)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	start := time.Now()
	out, err := transcode.Transcode(codec, input, transcode.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("transcoding: %w", err)
	}
	elapsed := time.Since(start)

	if err := writeOutput(output, out); err != nil {
		return err
	}

	if timing {
		fmt.Fprintf(os.Stderr, "%d bytes in, %d bytes out in %s\n", len(input), len(out), elapsed)
	}
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing stdout: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

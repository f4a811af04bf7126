package main

import (
	"github.com/spf13/cobra"

	"github.com/transcodehq/transcode"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Run the inverse transform of a codec over input",
	Long: `Decode reads the whole input, runs the codec's inverse transform
(decompression, checksum verification, ...) and writes the complete output.

Concatenated segments decode in one call: a file made of several gzip
members produces the concatenation of their contents.

With no file argument, input is read from stdin. With no --output flag,
output is written to stdout.

Examples:
  # Decompress a zstd file
  transcode decode --codec zstd input.txt.zst -o input.txt

  # Verify and strip an xxhash trailer
  cat data.tagged | transcode decode --codec xxhash > data.bin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

var (
	decodeOutput string
	decodeTiming bool
)

func init() {
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "output file (default stdout)")
	decodeCmd.Flags().BoolVar(&decodeTiming, "timing", false, "report timing and sizes to stderr")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	return runTransform(args, transcode.Read, decodeOutput, decodeTiming)
}

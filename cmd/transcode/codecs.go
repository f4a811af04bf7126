package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var codecsCmd = &cobra.Command{
	Use:   "codecs",
	Short: "List available codecs",
	Args:  cobra.NoArgs,
	Run:   runCodecs,
}

func init() {
	rootCmd.AddCommand(codecsCmd)
}

// codecInfo describes one selectable codec.
type codecInfo struct {
	name   string
	encode string
	decode string
}

var codecTable = []codecInfo{
	{"zstd", "compress (zstd frame)", "decompress (handles concatenated frames)"},
	{"gzip", "compress (gzip member)", "decompress (handles concatenated members)"},
	{"flate", "compress (raw DEFLATE)", "decompress"},
	{"xxhash", "append 8-byte XXH64 trailer", "verify and strip trailer"},
	{"noop", "copy through unchanged", "copy through unchanged"},
}

func runCodecs(cmd *cobra.Command, args []string) {
	fmt.Printf("%-8s %-30s %s\n", "NAME", "ENCODE", "DECODE")
	for _, c := range codecTable {
		fmt.Printf("%-8s %-30s %s\n", c.name, c.encode, c.decode)
	}
}

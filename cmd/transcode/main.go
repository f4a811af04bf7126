// Package main provides the transcode CLI tool for running byte-stream
// codecs over files or standard input.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

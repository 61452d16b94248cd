// Command tablesync is the command line entry point for the
// synchronization engine's durable store.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tablesync/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

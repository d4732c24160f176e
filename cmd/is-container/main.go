package main

import (
	"errors"
	"os"

	"github.com/nixpig/is-container/internal/cli"
)

// exitNotContainer is the exit status when the process is not running inside
// a container.
const exitNotContainer = 2

func main() {
	cmd := cli.RootCmd()

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, cli.ErrNotContainer) {
			os.Exit(exitNotContainer)
		}

		cmd.PrintErrf("failed to execute: %s\n", err)
		os.Exit(1)
	}
}

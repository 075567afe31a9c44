package main

import (
	"os"

	"github.com/idilsaglam/tada/internal/cli"
)

func main() {
	// Hand every arg to the CLI runner; it owns flags, config and exit codes.
	os.Exit(cli.Run(os.Args[1:]))
}

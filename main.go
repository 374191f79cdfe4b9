package main

import (
	"os"

	"github.com/rami3l/golox/cmd"
)

func main() {
	if err := cmd.App().Execute(); err != nil {
		// cobra already printed usage/flag errors; just signal failure.
		os.Exit(1)
	}
}

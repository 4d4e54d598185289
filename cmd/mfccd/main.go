package main

import (
	"os"

	"github.com/neurlang/gomfcc/cmd/mfccd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

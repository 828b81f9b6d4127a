package main

import (
	"os"

	"github.com/dmaze/dungeonmaze/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/pyvet/pyvet/cmd/pyvet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}

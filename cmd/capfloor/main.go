package main

import (
	"os"

	"github.com/meenmo/capfloor/cmd/capfloor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

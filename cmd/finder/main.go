package main

import (
	"os"

	"finder/cmd/finder/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

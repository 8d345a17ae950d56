package main

import (
	"os"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

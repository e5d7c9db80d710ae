package main

import (
	"fmt"
	"os"

	"github.com/prabalesh/hostprobe/cmd/hostprobe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

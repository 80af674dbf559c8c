package main

import (
	"fmt"
	"os"

	"github.com/trknhr/neuron/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "neuron: %v\n", err)
		os.Exit(1)
	}
}

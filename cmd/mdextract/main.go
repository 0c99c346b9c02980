// Package main is the entry point for the mdextract CLI.
package main

import (
	"os"

	"github.com/jmylchreest/mdextract/cmd/mdextract/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

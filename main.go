// main is the entry point for the photochop CLI.
package main

import (
	"github.com/aaronvstory/photochop-progress-analyzer/cmd"
	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}

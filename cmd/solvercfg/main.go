// Package main is the entry point for the solvercfg CLI.
package main

import (
	"os"

	"github.com/thoreinstein/solvercfg/cmd/solvercfg/commands"
	"github.com/thoreinstein/solvercfg/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}

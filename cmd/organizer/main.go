// Package main is the entry point for the organizer CLI tool.
package main

import (
	"os"

	"github.com/localorganizer/organizer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

// Package main is the entry point for the homeboard CLI binary.
package main

import (
	"os"

	cli "homeboard/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}

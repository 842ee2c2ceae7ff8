// Command geoloc is the CLI entry point: build, query, serve, and the
// alternate-format import/export subcommands live under internal/cli.
package main

import (
	"fmt"
	"os"

	"github.com/loadzero/geoloc/internal/cli"
)

var version = "dev"

func main() {
	root := cli.New(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

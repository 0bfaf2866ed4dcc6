// catalogctl drives the racket catalog from the command line: feed imports,
// price updates, lookups and a feed directory watcher.
package main

import (
	"os"

	"padel-catalog/cmd/catalogctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

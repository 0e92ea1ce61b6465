// Command canfin computes net worth, monthly budget balance and loan
// qualification from a YAML snapshot, or serves the same calculations over a
// local JSON API.
package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}

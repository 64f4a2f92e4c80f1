package main

import "quicksearch/internal/cli"

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.Execute(version, commit, buildDate)
}

// Command spacedsync runs the flashcard sync backend's ingestion core: an
// HTTP service that accepts batches of CRDT operations and merges them into
// the shared store.
package main

import (
	"fmt"
	"os"

	"github.com/lfurzewaddock/spaced-backend/cmd/spacedsync/commands"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

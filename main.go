// goseal encrypts files with AES-256-CBC and keeps the session key in a
// password-protected key file.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/goseal/internal/commands"
	"github.com/idelchi/goseal/internal/config"
)

// version is set at build time.
var version = "dev" //nolint:gochecknoglobals

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}

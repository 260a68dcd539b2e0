// Package commands provides the command-line interface for the goseal tool.
//
// It implements commands for:
//   - key generation (password-protected key files)
//   - encryption
//   - decryption
//   - key file rewrapping (password change)
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/goseal/internal/config"
)

// bindConfig loads flag and environment values into cfg and validates it.
func bindConfig(cmd *cobra.Command, cfg *config.Config) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
		return fmt.Errorf("binding inherited flags: %w", err)
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return cfg.Validate()
}

// preRun returns a PreRunE handler that resolves positional args into cfg.Files
// and loads the configuration.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			cfg.Files = []string{"."}
		} else {
			cfg.Files = args
		}

		return bindConfig(cmd, cfg)
	}
}

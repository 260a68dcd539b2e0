package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/logic"
)

// NewKeygenCommand creates a new cobra command for the keygen subcommand.
func NewKeygenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate key material and write a password-protected key file",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindConfig(cmd, cfg)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if cfg.Password == "" {
				password, err := promptPassword("Password", true)
				if err != nil {
					return err
				}

				cfg.Password = string(password)
			}

			return logic.RunKeygen(cfg)
		},
	}

	cmd.Flags().StringP("output", "o", "goseal.key", "Path to write the key file")

	return cmd
}

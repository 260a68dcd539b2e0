package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/logic"
)

// NewRewrapCommand creates a new cobra command for the rewrap subcommand.
func NewRewrapCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rewrap [flags] keyfile",
		Short: "Change the password of a key file",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Files = args

			return bindConfig(cmd, cfg)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			current := []byte(cfg.Password)

			if len(current) == 0 {
				password, err := promptPassword("Current password", false)
				if err != nil {
					return err
				}

				current = password
			}

			next, err := promptPassword("New password", true)
			if err != nil {
				return err
			}

			return logic.RunRewrap(cfg, current, next)
		},
	}
}

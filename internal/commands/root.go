package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/encryption"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "goseal [flags] command [flags]",
		Short: "File encryption with password-protected key files",
		Long: `Encrypts and decrypts files with AES-256-CBC, keeping the session key in a
password-protected key file. Provides commands for key generation, encryption,
decryption, and changing a key file's password.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate("{{ .Version }}\n")

	viper.SetEnvPrefix("goseal")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")

	root.PersistentFlags().StringP("key", "k", "", "Session key material (48 bytes key||iv, hex-encoded)")
	root.PersistentFlags().StringP("key-file", "f", "", "Path to a password-protected key file")
	root.PersistentFlags().String("password", "", "Key file password (prompted for when empty)")
	root.PersistentFlags().Int("iterations", encryption.DefaultIterations,
		"PBKDF2 iteration count for key file wrapping (minimum 10000)")

	root.PersistentFlags().String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	root.PersistentFlags().String("decrypt-ext", "",
		"Suffix to append to decrypted files, after stripping the encrypted suffix")

	root.PersistentFlags().StringSlice("include", nil, "Patterns of files to include when walking directories")
	root.PersistentFlags().StringSlice("exclude", nil, "Patterns of files to exclude when walking directories")
	root.PersistentFlags().String("include-from", "", "JSONC file with include patterns")
	root.PersistentFlags().String("exclude-from", "", "JSONC file with exclude patterns")

	root.PersistentFlags().Bool("shared-iv", false,
		"Use the session IV for every file instead of a per-file IV header (headerless raw CBC)")
	root.PersistentFlags().Bool("preserve-timestamps", false, "Copy the source modification time to the output")
	root.PersistentFlags().Bool("dry", false, "Preview the files that would be processed")
	root.PersistentFlags().Bool("stats", false, "Print processing statistics")

	root.AddCommand(
		NewKeygenCommand(cfg),
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewRewrapCommand(cfg),
		NewCheckCommand(cfg),
	)

	return root
}

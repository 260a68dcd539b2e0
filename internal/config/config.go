// Package config defines the runtime configuration shared by all commands.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/idelchi/gogen/pkg/key"
)

// Config holds the runtime configuration, populated from flags and
// environment variables.
type Config struct {
	// Key is the session key material as hex (48 bytes: key||iv).
	Key string `mapstructure:"key" validate:"omitempty,len=96,exclusive=KeyFile"`

	// KeyFile is the path to a password-protected key file.
	KeyFile string `mapstructure:"key-file"`

	// Output is the destination path for generated key files.
	Output string `mapstructure:"output"`

	// Password for the key file. Prompted for when empty.
	Password string `mapstructure:"password"`

	// Iterations is the PBKDF2 iteration count used for key-file wrapping.
	// The key file stores no iteration field, so loading must use the same
	// count the file was saved with.
	Iterations int `mapstructure:"iterations" validate:"gte=10000"`

	// Parallel is the number of concurrent workers.
	Parallel int `mapstructure:"parallel" validate:"gte=1"`

	// EncryptSuffix is appended to encrypted files.
	EncryptSuffix string `mapstructure:"encrypt-ext"`

	// DecryptSuffix is appended to decrypted files after stripping EncryptSuffix.
	DecryptSuffix string `mapstructure:"decrypt-ext"`

	// Include/Exclude hold find -path style patterns for directory walks.
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`

	// IncludeFrom/ExcludeFrom point to JSONC files with additional patterns.
	IncludeFrom string `mapstructure:"include-from"`
	ExcludeFrom string `mapstructure:"exclude-from"`

	// SharedIV uses the session IV for every file instead of a per-file
	// random IV header, producing raw headerless CBC output.
	SharedIV bool `mapstructure:"shared-iv"`

	// PreserveTimestamps copies the source modification time to the output.
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	Quiet  bool `mapstructure:"quiet"`
	Delete bool `mapstructure:"delete"`
	Dry    bool `mapstructure:"dry"`
	Stats  bool `mapstructure:"stats"`

	// Decrypt switches the processing direction. Set by the decrypt command.
	Decrypt bool `mapstructure:"-"`

	// Files are the resolved positional arguments.
	Files []string `mapstructure:"-"`
}

// Validate validates the configuration against the struct tags.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("exclusive", validateExclusive); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Key != "" {
		if _, err := key.FromHex(c.Key); err != nil {
			return fmt.Errorf("invalid key format: %w", err)
		}
	}

	return nil
}

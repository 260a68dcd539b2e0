package logic

import (
	"errors"
	"fmt"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/encryption"
	"github.com/idelchi/goseal/internal/keyfile"
)

// RunKeygen generates fresh key material and writes it to a
// password-protected key file at cfg.Output.
func RunKeygen(cfg *config.Config) error {
	material, err := encryption.NewMaterial()
	if err != nil {
		return fmt.Errorf("generating key material: %w", err)
	}

	if err := keyfile.Save(cfg.Output, material, []byte(cfg.Password), cfg.Iterations); err != nil {
		return fmt.Errorf("saving key file: %w", err)
	}

	if !cfg.Quiet {
		fmt.Printf("Wrote key file %q\n", cfg.Output) //nolint:forbidigo
	}

	return nil
}

// RunRewrap re-encrypts an existing key file under a new password.
// The recovered material is identical; only the wrapping changes.
func RunRewrap(cfg *config.Config, current, next []byte) error {
	path := cfg.Files[0]

	material, err := keyfile.Load(path, current, cfg.Iterations)
	if err != nil {
		if errors.Is(err, encryption.ErrInvalidPadding) {
			return fmt.Errorf("wrong password or corrupt key file: %w", err)
		}

		return err
	}

	if err := keyfile.Save(path, material, next, cfg.Iterations); err != nil {
		return fmt.Errorf("saving key file: %w", err)
	}

	if !cfg.Quiet {
		fmt.Printf("Rewrapped key file %q\n", path) //nolint:forbidigo
	}

	return nil
}

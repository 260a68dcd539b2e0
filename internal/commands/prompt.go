package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/idelchi/goseal/internal/config"
)

// ensurePassword prompts for the key file password when one is needed and
// none was provided via flag or environment.
func ensurePassword(cfg *config.Config) error {
	if cfg.KeyFile == "" || cfg.Password != "" {
		return nil
	}

	password, err := promptPassword("Password", false)
	if err != nil {
		return err
	}

	cfg.Password = string(password)

	return nil
}

// promptPassword reads a password from the controlling terminal without echo.
// Error messages never include the password itself.
func promptPassword(label string, confirm bool) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal, use --password")
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)

	password, err := term.ReadPassword(fd)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	if len(password) == 0 {
		return nil, errors.New("password must not be empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, "Confirm: ")

		again, err := term.ReadPassword(fd)

		fmt.Fprintln(os.Stderr)

		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}

		if !bytes.Equal(password, again) {
			return nil, errors.New("passwords do not match")
		}
	}

	return password, nil
}

package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/datefeatures/internal/keyring"
	"github.com/julianstephens/datefeatures/internal/storage"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *Context) error {
	if !storage.IsPostgresTarget(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := storage.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, storage.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// Passwords are fine here; the keyring is encrypted.
		fmt.Fprintln(ctx.out(), "Note: the connection string contains a password; it is stored only in the OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}
	_, err := fmt.Fprintf(ctx.out(), "Connection string stored: %s\nUse --db %s to export to it.\n",
		keyring.MaskPassword(cmd.ConnectionString), KeyringTarget)
	return err
}

// KeyringDeleteCmd removes the connection string from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	_, err := fmt.Fprintln(ctx.out(), "Connection string deleted from OS keyring")
	return err
}

// KeyringStatusCmd reports whether the keyring is usable and holds a connection string
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	connStr, err := keyring.GetConnectionString()
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		_, err = fmt.Fprintln(ctx.out(), "OS keyring is available; no connection string stored")
	case err != nil:
		return err
	default:
		_, err = fmt.Fprintf(ctx.out(), "OS keyring is available; stored: %s\n", keyring.MaskPassword(connStr))
	}
	return err
}

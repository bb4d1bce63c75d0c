package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/datefeatures/internal/config"
	"github.com/julianstephens/datefeatures/internal/constants"
	"github.com/julianstephens/datefeatures/internal/keyring"
	"github.com/julianstephens/datefeatures/internal/logger"
	"github.com/julianstephens/datefeatures/internal/storage"
)

// KeyringTarget selects the connection string stored in the OS keyring.
const KeyringTarget = "keyring"

type Context struct {
	Ctx    context.Context
	Config *config.Config
	Out    io.Writer
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) config() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// ResolveTarget picks the export target: the --db flag, then the
// DATEFEATURES_DB environment variable, then the config file.
func (c *Context) ResolveTarget(flag string) string {
	if t := strings.TrimSpace(flag); t != "" {
		return config.ExpandHome(t)
	}
	if t := strings.TrimSpace(os.Getenv(constants.EnvDatabase)); t != "" {
		return config.ExpandHome(t)
	}
	return c.config().DatabaseTarget()
}

// OpenStore opens and initializes the export target. The keyring target may
// carry a password since it never appears on the command line.
func (c *Context) OpenStore(flag string) (storage.Provider, error) {
	target := c.ResolveTarget(flag)

	var store storage.Provider
	if target == KeyringTarget {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		if !storage.IsPostgresTarget(connStr) {
			return nil, errors.New("keyring connection string is not a PostgreSQL connection string")
		}
		store = storage.NewPostgresStore(connStr)
	} else {
		var err error
		if store, err = storage.Open(target); err != nil {
			return nil, err
		}
	}

	logger.Debug("Opening export target", "target", store.GetConfigPath())
	if err := store.Init(c.context()); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

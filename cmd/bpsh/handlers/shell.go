// Package handlers implements the command logic for the bpsh CLI.
package handlers

import (
	"context"
	"fmt"

	"github.com/bpshell/bpsh/internal/config"
	"github.com/bpshell/bpsh/internal/management"
	"github.com/bpshell/bpsh/internal/session"
	"github.com/bpshell/bpsh/internal/shell"
	"github.com/bpshell/bpsh/internal/workflow"
)

// Factory function variables - can be replaced in tests.
var (
	// findConfigFile locates the config file when no path was given.
	findConfigFile = config.FindConfigFile

	// loadConfig loads and validates the config file.
	loadConfig = config.Load

	// newManagementClient creates the management service client.
	newManagementClient = func(cfg *config.Config) management.Client {
		return management.NewHTTPClient(cfg.Server, cfg.Username, cfg.Password)
	}

	// runShell runs the interactive prompt loop.
	runShell = func(ctx context.Context, w *workflow.Workflow) error {
		return shell.New(w).Run(ctx)
	}
)

// Shell loads the configuration, wires a fresh session and starts the
// interactive shell. Each invocation is one session; nothing persists after
// the loop returns.
func Shell(ctx context.Context, configPath string) error {
	if configPath == "" {
		found, err := findConfigFile()
		if err != nil {
			return fmt.Errorf("no config: %w (create %s or pass --config)", err, config.DefaultConfigFilename)
		}
		configPath = found
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	client := newManagementClient(cfg)
	w := workflow.New(client, session.NewContext())

	return runShell(ctx, w)
}

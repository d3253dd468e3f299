// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/bpshell/bpsh/cmd/bpsh/handlers"
)

// Root returns the root command for the bpsh CLI. Running it without a
// subcommand starts the interactive shell.
func Root() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "bpsh",
		Short: "Provision a managed cluster from a blueprint",
		Long: `bpsh is an interactive shell for provisioning a managed cluster
from a blueprint.

A session walks through the build workflow: focus a blueprint with
'cluster build', assign discovered hosts to the blueprint's host groups
with 'cluster assign', then trigger creation with 'cluster create'.
Commands are offered only when the session state allows them; a failed
create rolls the session back to a retryable building state.

The management service endpoint and credentials are read from bpsh.yaml
(current directory or ~/.bpsh/). The BPSH_PASSWORD environment variable
overrides the configured password.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Shell(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: bpsh.yaml)")

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

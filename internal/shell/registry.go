// Package shell implements the interactive session: an explicit command
// registry gated by focus guards, and a prompt loop that offers only the
// commands whose guards currently pass.
package shell

import (
	"context"
	"fmt"

	"github.com/bpshell/bpsh/internal/workflow"
)

// Param describes one prompted command parameter.
type Param struct {
	Name        string
	Title       string
	Placeholder string
}

// Command pairs a command name with its availability guard and handler. Keeping
// the registry as plain data keeps availability logic testable without any
// terminal attached.
type Command struct {
	Name   string
	Help   string
	Params []Param
	Guard  func() bool
	Run    func(ctx context.Context, params map[string]string) string
}

// Registry returns the command set operating on the given workflow. Guards
// close over the workflow's session, so availability always reflects the
// current focus.
func Registry(w *workflow.Workflow) []Command {
	sess := w.Session()
	always := func() bool { return true }

	return []Command{
		{
			Name:  "blueprints",
			Help:  "List the available blueprints",
			Guard: always,
			Run: func(ctx context.Context, _ map[string]string) string {
				return w.Blueprints(ctx)
			},
		},
		{
			Name: "cluster build",
			Help: "Start building a cluster from a blueprint",
			Params: []Param{
				{Name: "blueprint", Title: "Blueprint id", Placeholder: "use 'blueprints' to see the list"},
			},
			Guard: sess.CanBuild,
			Run: func(ctx context.Context, params map[string]string) string {
				return w.StartBuild(ctx, params["blueprint"])
			},
		},
		{
			Name: "cluster assign",
			Help: "Assign a host to a host group",
			Params: []Param{
				{Name: "host", Title: "Host", Placeholder: "fully qualified host name"},
				{Name: "hostGroup", Title: "Host group", Placeholder: "host group to assign the host to"},
			},
			Guard: sess.CanAssign,
			Run: func(_ context.Context, params map[string]string) string {
				return w.AssignHost(params["host"], params["hostGroup"])
			},
		},
		{
			Name:  "cluster preview",
			Help:  "Show the currently assigned hosts",
			Guard: sess.CanPreview,
			Run: func(_ context.Context, _ map[string]string) string {
				return w.Preview()
			},
		},
		{
			Name:  "cluster create",
			Help:  "Create the cluster from the current blueprint and assignments",
			Guard: sess.CanCreate,
			Run: func(ctx context.Context, _ map[string]string) string {
				return w.CreateCluster(ctx)
			},
		},
		{
			Name:  "cluster delete",
			Help:  "Delete the cluster",
			Guard: sess.CanDelete,
			Run: func(ctx context.Context, _ map[string]string) string {
				return w.DeleteCluster(ctx)
			},
		},
		{
			Name:  "hello",
			Help:  "Print the banner",
			Guard: always,
			Run: func(_ context.Context, _ map[string]string) string {
				return Banner()
			},
		},
	}
}

// Available returns the commands whose guards pass right now. Guards are
// evaluated fresh on every call since earlier commands may have moved the
// focus.
func Available(registry []Command) []Command {
	var out []Command
	for _, cmd := range registry {
		if cmd.Guard() {
			out = append(out, cmd)
		}
	}
	return out
}

// Dispatch runs the named command. The guard is re-evaluated immediately
// before execution; an unavailable or unknown command is an error rather
// than a status string.
func Dispatch(ctx context.Context, registry []Command, name string, params map[string]string) (string, error) {
	for _, cmd := range registry {
		if cmd.Name != name {
			continue
		}
		if !cmd.Guard() {
			return "", fmt.Errorf("command %q is not available in the current state", name)
		}
		return cmd.Run(ctx, params), nil
	}
	return "", fmt.Errorf("unknown command %q", name)
}

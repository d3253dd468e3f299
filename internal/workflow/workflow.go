// Package workflow orchestrates the blueprint-to-cluster build sequence:
// focus a blueprint, assign discovered hosts to its host groups, create the
// cluster, and on failure retreat to a retryable building state.
package workflow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/bpshell/bpsh/internal/assignment"
	"github.com/bpshell/bpsh/internal/management"
	"github.com/bpshell/bpsh/internal/render"
	"github.com/bpshell/bpsh/internal/session"
)

// Status strings returned to the interactive caller. Failures at this layer
// are always communicated as statuses, never as propagated errors; transport
// problems are logged and collapsed into the matching failure status.
const (
	msgInvalidBlueprint = "Not a valid blueprint id"
	msgCreated          = "Successfully created cluster"
	msgCreateFailed     = "Failed to create cluster"
	msgDeleted          = "Successfully deleted the cluster"
	msgDeleteFailed     = "Could not delete the cluster"
	msgBlueprintsFailed = "Could not retrieve blueprints"
)

// Workflow owns the session state for one interactive session: the focus
// cursor and the host-group assignment store. It delegates all remote effects
// to the management client.
type Workflow struct {
	client  management.Client
	session *session.Context
	store   *assignment.Store
}

// New creates a workflow for a fresh session.
func New(client management.Client, sess *session.Context) *Workflow {
	return &Workflow{
		client:  client,
		session: sess,
		store:   assignment.NewStore(),
	}
}

// Session returns the session context, used by command guards.
func (w *Workflow) Session() *session.Context {
	return w.session
}

// Assignments returns the current host-group assignments. Read-only.
func (w *Workflow) Assignments() map[string][]string {
	return w.store.Snapshot()
}

// StartBuild focuses the session on building a cluster from the given
// blueprint. On success the assignment store is initialized with one empty
// host list per host group and the blueprint layout is returned for display.
// An unknown blueprint id changes nothing.
func (w *Workflow) StartBuild(ctx context.Context, blueprintID string) string {
	exists, err := w.client.BlueprintExists(ctx, blueprintID)
	if err != nil {
		log.Debug().Err(err).Str("blueprint", blueprintID).Msg("blueprint lookup failed")
		return msgInvalidBlueprint
	}
	if !exists {
		return msgInvalidBlueprint
	}

	// Fetch everything before touching session state so a failed lookup
	// leaves the focus where it was.
	layout, err := w.client.BlueprintLayout(ctx, blueprintID)
	if err != nil {
		log.Debug().Err(err).Str("blueprint", blueprintID).Msg("layout fetch failed")
		return msgInvalidBlueprint
	}
	groups, err := w.client.HostGroups(ctx, blueprintID)
	if err != nil {
		log.Debug().Err(err).Str("blueprint", blueprintID).Msg("host group fetch failed")
		return msgInvalidBlueprint
	}

	w.session.StartBuild(blueprintID)
	w.store.Init(groups)

	return render.MultiValueMap(layout, "HOSTGROUP", "COMPONENT")
}

// AssignHost appends the host to the named host group. The focus never
// changes; an unknown group leaves the store untouched.
func (w *Workflow) AssignHost(host, group string) string {
	if !w.store.Assign(host, group) {
		return fmt.Sprintf("%s is not a valid host group", group)
	}
	return fmt.Sprintf("%s has been added to %s", host, group)
}

// Preview renders the current host-group assignments.
func (w *Workflow) Preview() string {
	return render.MultiValueMap(w.store.Snapshot(), "HOSTGROUP", "HOST")
}

// CreateCluster asks the management service to create the focused cluster
// from the current assignments. The cluster is named after the blueprint id.
//
// On success the session moves to the connected state. On failure a
// best-effort cleanup delete is issued (its outcome intentionally ignored)
// and the store is reinitialized empty so the user can retry assignment
// without restarting the build; the focus stays on building.
func (w *Workflow) CreateCluster(ctx context.Context) string {
	blueprintID := w.session.Value()

	err := w.client.CreateCluster(ctx, blueprintID, blueprintID, w.store.Snapshot())
	if err == nil {
		w.session.Connect()
		w.store.Init(nil)
		return msgCreated
	}
	log.Debug().Err(err).Str("cluster", blueprintID).Msg("create failed, rolling back")

	if derr := w.client.DeleteCluster(ctx, blueprintID); derr != nil {
		// Remote state may be inconsistent here; the user will see the
		// failure status and can retry create.
		log.Debug().Err(derr).Str("cluster", blueprintID).Msg("rollback delete failed")
	}
	w.reinitStore(ctx, blueprintID)

	return msgCreateFailed
}

// DeleteCluster deletes the connected cluster. On failure nothing changes;
// the cluster is assumed to still exist.
func (w *Workflow) DeleteCluster(ctx context.Context) string {
	clusterID := w.session.Value()

	if err := w.client.DeleteCluster(ctx, clusterID); err != nil {
		log.Debug().Err(err).Str("cluster", clusterID).Msg("delete failed")
		return msgDeleteFailed
	}

	w.session.Reset()
	w.store.Init(nil)
	return msgDeleted
}

// Blueprints renders the ids of all registered blueprints.
func (w *Workflow) Blueprints(ctx context.Context) string {
	ids, err := w.client.Blueprints(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("blueprint listing failed")
		return msgBlueprintsFailed
	}
	return render.List("BLUEPRINT", ids)
}

// reinitStore rebuilds an empty store from the blueprint's host groups. If
// the fetch fails the previously known group names are reused so the session
// stays retryable.
func (w *Workflow) reinitStore(ctx context.Context, blueprintID string) {
	groups, err := w.client.HostGroups(ctx, blueprintID)
	if err != nil {
		log.Debug().Err(err).Str("blueprint", blueprintID).Msg("host group refresh failed, keeping known groups")
		for name := range w.store.Snapshot() {
			groups = append(groups, name)
		}
	}
	w.store.Init(groups)
}

// Package management defines the contract with the cluster management
// service and provides an HTTP implementation of it.
//
// The shell core only depends on the Client interface; tests use the
// hand-written fake in the fakes subpackage.
package management

import "context"

// Client is the management service consumed by the shell. All calls are
// synchronous; the shell issues one call at a time and blocks on it.
type Client interface {
	// Blueprints returns the ids of all registered blueprints.
	Blueprints(ctx context.Context) ([]string, error)

	// BlueprintExists reports whether a blueprint with the given id is
	// registered.
	BlueprintExists(ctx context.Context, id string) (bool, error)

	// BlueprintLayout returns the blueprint's host-group to component
	// mapping. Display only; it never feeds the assignment store.
	BlueprintLayout(ctx context.Context, id string) (map[string][]string, error)

	// HostGroups returns the names of the blueprint's host groups.
	HostGroups(ctx context.Context, id string) ([]string, error)

	// CreateCluster creates a cluster from the blueprint with the given
	// host-group assignments. A nil error means the service accepted the
	// cluster.
	CreateCluster(ctx context.Context, name, blueprintID string, assignments map[string][]string) error

	// DeleteCluster deletes the named cluster.
	DeleteCluster(ctx context.Context, id string) error
}

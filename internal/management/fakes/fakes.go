// Package fakes provides an in-memory management client for tests.
package fakes

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// CreateCall records one CreateCluster invocation.
type CreateCall struct {
	Name        string
	BlueprintID string
	Assignments map[string][]string
}

// Client simulates the management service. Blueprints are scripted through
// the Blueprints map; create/delete behavior is scripted through the error
// fields. All calls are recorded.
type Client struct {
	mu sync.Mutex

	// BlueprintDocs maps blueprint id to its host-group -> components layout.
	BlueprintDocs map[string]map[string][]string

	// CreateErr, when set, makes CreateCluster fail.
	CreateErr error
	// DeleteErr, when set, makes DeleteCluster fail.
	DeleteErr error

	// Clusters holds the assignments of successfully created clusters.
	Clusters map[string]map[string][]string

	CreateCalls []CreateCall
	DeleteCalls []string
}

// NewClient creates a fake with the given blueprint layouts.
func NewClient(blueprints map[string]map[string][]string) *Client {
	if blueprints == nil {
		blueprints = map[string]map[string][]string{}
	}
	return &Client{
		BlueprintDocs: blueprints,
		Clusters:      map[string]map[string][]string{},
	}
}

func (c *Client) Blueprints(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.BlueprintDocs))
	for id := range c.BlueprintDocs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (c *Client) BlueprintExists(_ context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.BlueprintDocs[id]
	return ok, nil
}

func (c *Client) BlueprintLayout(_ context.Context, id string) (map[string][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	layout, ok := c.BlueprintDocs[id]
	if !ok {
		return nil, fmt.Errorf("blueprint %s not found", id)
	}
	return layout, nil
}

func (c *Client) HostGroups(_ context.Context, id string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	layout, ok := c.BlueprintDocs[id]
	if !ok {
		return nil, fmt.Errorf("blueprint %s not found", id)
	}
	names := make([]string, 0, len(layout))
	for name := range layout {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (c *Client) CreateCluster(_ context.Context, name, blueprintID string, assignments map[string][]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Record a deep copy so later store mutations don't leak into the call log.
	copied := make(map[string][]string, len(assignments))
	for group, hosts := range assignments {
		copied[group] = append(make([]string, 0, len(hosts)), hosts...)
	}
	c.CreateCalls = append(c.CreateCalls, CreateCall{Name: name, BlueprintID: blueprintID, Assignments: copied})

	if c.CreateErr != nil {
		return c.CreateErr
	}
	c.Clusters[name] = copied
	return nil
}

func (c *Client) DeleteCluster(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DeleteCalls = append(c.DeleteCalls, id)
	if c.DeleteErr != nil {
		return c.DeleteErr
	}
	delete(c.Clusters, id)
	return nil
}

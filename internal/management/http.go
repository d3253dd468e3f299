package management

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bpshell/bpsh/internal/retry"
)

// ErrNotFound is returned by lookups when the management service has no
// resource with the requested id.
var ErrNotFound = errors.New("not found")

// HTTPClient talks to the management service's REST API. Lookups (GETs) are
// retried with backoff since they are safe to repeat; create and delete are
// issued exactly once.
type HTTPClient struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// blueprintDoc is the service's blueprint representation.
type blueprintDoc struct {
	ID         string      `json:"id"`
	HostGroups []hostGroup `json:"host_groups"`
}

type hostGroup struct {
	Name       string   `json:"name"`
	Components []string `json:"components"`
}

type blueprintList struct {
	Items []blueprintDoc `json:"items"`
}

// createClusterRequest is the body of POST /clusters/{name}.
type createClusterRequest struct {
	Blueprint  string              `json:"blueprint"`
	HostGroups map[string][]string `json:"host_groups"`
}

// NewHTTPClient creates a client for the management service at baseURL.
// Credentials are sent as HTTP basic auth on every request.
func NewHTTPClient(baseURL, username, password string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Blueprints returns the ids of all registered blueprints.
func (c *HTTPClient) Blueprints(ctx context.Context) ([]string, error) {
	var list blueprintList
	if err := c.getWithRetry(ctx, "/blueprints", &list); err != nil {
		return nil, fmt.Errorf("list blueprints: %w", err)
	}

	ids := make([]string, 0, len(list.Items))
	for _, bp := range list.Items {
		ids = append(ids, bp.ID)
	}
	return ids, nil
}

// BlueprintExists reports whether a blueprint with the given id is registered.
func (c *HTTPClient) BlueprintExists(ctx context.Context, id string) (bool, error) {
	_, err := c.blueprint(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BlueprintLayout returns the blueprint's host-group to component mapping.
func (c *HTTPClient) BlueprintLayout(ctx context.Context, id string) (map[string][]string, error) {
	bp, err := c.blueprint(ctx, id)
	if err != nil {
		return nil, err
	}

	layout := make(map[string][]string, len(bp.HostGroups))
	for _, hg := range bp.HostGroups {
		layout[hg.Name] = hg.Components
	}
	return layout, nil
}

// HostGroups returns the names of the blueprint's host groups.
func (c *HTTPClient) HostGroups(ctx context.Context, id string) ([]string, error) {
	bp, err := c.blueprint(ctx, id)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(bp.HostGroups))
	for _, hg := range bp.HostGroups {
		names = append(names, hg.Name)
	}
	return names, nil
}

// CreateCluster creates a cluster from the blueprint with the given
// host-group assignments.
func (c *HTTPClient) CreateCluster(ctx context.Context, name, blueprintID string, assignments map[string][]string) error {
	body, err := json.Marshal(createClusterRequest{
		Blueprint:  blueprintID,
		HostGroups: assignments,
	})
	if err != nil {
		return fmt.Errorf("encode create request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/clusters/"+url.PathEscape(name), bytes.NewReader(body))
	if err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("create cluster %s: %w", name, err)
	}
	return nil
}

// DeleteCluster deletes the named cluster.
func (c *HTTPClient) DeleteCluster(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/clusters/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("delete cluster %s: %w", id, err)
	}
	return nil
}

// blueprint fetches a single blueprint document, retrying transient failures.
func (c *HTTPClient) blueprint(ctx context.Context, id string) (*blueprintDoc, error) {
	var bp blueprintDoc
	if err := c.getWithRetry(ctx, "/blueprints/"+url.PathEscape(id), &bp); err != nil {
		return nil, err
	}
	return &bp, nil
}

// getWithRetry issues a GET and decodes the JSON response into out. 404s and
// client errors are fatal; everything else is retried with backoff.
func (c *HTTPClient) getWithRetry(ctx context.Context, path string, out any) error {
	return retry.Do(ctx, func() error {
		req, err := c.newRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return retry.Fatal(err)
		}
		return c.do(req, out)
	})
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("management request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return retry.Fatal(ErrNotFound)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return retry.Fatal(fmt.Errorf("%s: %s", resp.Status, bytes.TrimSpace(msg)))
	case resp.StatusCode >= 500:
		return fmt.Errorf("server error: %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return retry.Fatal(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

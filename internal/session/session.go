// Package session holds the per-session workflow cursor.
//
// A session tracks which workflow the user is currently engaged in via a
// Focus: either none, building a cluster from a blueprint, or connected to a
// created cluster. Command availability is derived from the focus through the
// Can* guard methods, which must be re-evaluated before every command offer
// since earlier commands may have moved the focus.
package session

// State identifies the workflow the session is focused on.
type State int

const (
	// StateNone means no workflow is in progress.
	StateNone State = iota
	// StateBuilding means a cluster build is in progress; the focus value
	// is the blueprint id the build was started from.
	StateBuilding
	// StateConnected means a cluster has been created; the focus value is
	// the cluster id.
	StateConnected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateConnected:
		return "connected"
	default:
		return "none"
	}
}

// Context is the session's mutable focus state. It is constructed once per
// session and shared by reference between the command handlers; there is a
// single writer (the active handler), so no locking.
type Context struct {
	state State
	value string
}

// NewContext returns a context with no focus.
func NewContext() *Context {
	return &Context{state: StateNone}
}

// State returns the current focus state.
func (c *Context) State() State { return c.state }

// Value returns the focus value: the blueprint id while building, the
// cluster id while connected, and "" when there is no focus.
func (c *Context) Value() string { return c.value }

// StartBuild focuses the session on building a cluster from the given
// blueprint. Callers must have validated the blueprint id first.
func (c *Context) StartBuild(blueprintID string) {
	c.state = StateBuilding
	c.value = blueprintID
}

// Connect moves a building session to the connected state. The focus value
// carries over: the blueprint id doubles as the cluster id.
func (c *Context) Connect() {
	c.state = StateConnected
}

// Reset clears the focus after the cluster has been deleted.
func (c *Context) Reset() {
	c.state = StateNone
	c.value = ""
}

// CanBuild reports whether a new cluster build may be started.
func (c *Context) CanBuild() bool { return c.state == StateNone }

// CanAssign reports whether hosts may be assigned to host groups.
func (c *Context) CanAssign() bool { return c.state == StateBuilding }

// CanPreview reports whether the current assignments may be shown.
func (c *Context) CanPreview() bool { return c.state == StateBuilding }

// CanCreate reports whether the cluster may be created.
func (c *Context) CanCreate() bool { return c.state == StateBuilding }

// CanDelete reports whether the cluster may be deleted.
func (c *Context) CanDelete() bool { return c.state == StateConnected }

// Package assignment tracks which hosts have been assigned to which host
// groups during a cluster build.
package assignment

// Store maps host-group names to the hosts assigned to them. The key set is
// fixed at initialization; values keep insertion order and permit duplicates,
// since the remote create call is the source of truth for real membership.
// A Store is owned by a single session and mutated by one command at a time.
type Store struct {
	groups map[string][]string
}

// NewStore returns a store with no host groups. Assign fails on every group
// until Init establishes the key set.
func NewStore() *Store {
	return &Store{groups: map[string][]string{}}
}

// Init replaces the whole mapping with one empty host list per group name.
// It is called when a build starts and again after a failed create, so the
// user retries assignment against a clean slate.
func (s *Store) Init(groupNames []string) {
	groups := make(map[string][]string, len(groupNames))
	for _, name := range groupNames {
		groups[name] = []string{}
	}
	s.groups = groups
}

// Assign appends host to the named group and reports whether the group
// exists. Unknown groups leave the store untouched. Hosts are not validated
// here; the management service rejects unknown hosts at create time.
func (s *Store) Assign(host, group string) bool {
	hosts, ok := s.groups[group]
	if !ok {
		return false
	}
	s.groups[group] = append(hosts, host)
	return true
}

// Snapshot returns the current group-to-hosts mapping for display. Callers
// must treat the result as read-only.
func (s *Store) Snapshot() map[string][]string {
	return s.groups
}

// Package output renders the sparse commit tree: a colorized smartlog graph,
// and a machine-readable JSON form.
package output

import (
	"fmt"
	"sort"

	"go-smartlog/internal/git"
)

// RefMap maps commit SHAs to the decorated reference names pointing at them
// (branch names, remote tracking names, and the HEAD marker).
type RefMap struct {
	names map[string][]string
}

// NewRefMap builds a RefMap from the repository's branches and HEAD.
func NewRefMap(repo git.Repository) (*RefMap, error) {
	m := &RefMap{names: make(map[string][]string)}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	if head.IsDetachedHead && head.Tip != nil {
		m.add(head.Tip.Sha, "HEAD")
	}

	branches, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	for _, b := range branches {
		if b.Tip == nil {
			continue
		}
		name := b.FriendlyName()
		if !head.IsDetachedHead && !b.IsRemote && name == head.FriendlyName() {
			name = "HEAD -> " + name
		}
		m.add(b.Tip.Sha, name)
	}

	return m, nil
}

func (m *RefMap) add(sha, name string) {
	m.names[sha] = append(m.names[sha], name)
}

// Get returns the sorted reference names for the SHA, or nil.
func (m *RefMap) Get(sha string) []string {
	names := m.names[sha]
	sort.Strings(names)
	return names
}

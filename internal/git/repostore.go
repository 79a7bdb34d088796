package git

import (
	"fmt"
)

// defaultPrimaryBranchNames are tried in order when no primary branch is
// configured.
var defaultPrimaryBranchNames = []string{"main", "master"}

// RepositoryStore provides higher-level domain queries built on top of a
// Repository.
type RepositoryStore struct {
	repo Repository
}

// NewRepositoryStore creates a new RepositoryStore wrapping the given Repository.
func NewRepositoryStore(repo Repository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

// PrimaryBranch resolves the primary branch of the repository. If name is
// non-empty it must resolve; otherwise the conventional names are tried in
// order.
func (s *RepositoryStore) PrimaryBranch(name string) (Branch, error) {
	if name != "" {
		tip, err := s.repo.BranchHead(name)
		if err != nil {
			return Branch{}, fmt.Errorf("resolving primary branch: %w", err)
		}
		return Branch{Name: NewBranchReferenceName(name), Tip: &tip}, nil
	}

	for _, candidate := range defaultPrimaryBranchNames {
		tip, err := s.repo.BranchHead(candidate)
		if err == nil {
			return Branch{Name: NewBranchReferenceName(candidate), Tip: &tip}, nil
		}
	}

	return Branch{}, fmt.Errorf("no primary branch found (tried %v): %w",
		defaultPrimaryBranchNames, ErrUnknownBranch)
}

// DisplayHeads returns the commits that should seed the sparse tree: the tips
// of all local branches (plus remote tracking branches when includeRemotes is
// set) and the current HEAD commit. The HEAD commit is last so callers can add
// it with the date limit overridden.
func (s *RepositoryStore) DisplayHeads(includeRemotes bool) ([]Commit, error) {
	branches, err := s.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	seen := make(map[string]struct{})
	var heads []Commit
	for _, b := range branches {
		if b.IsRemote && !includeRemotes {
			continue
		}
		if b.Tip == nil {
			continue
		}
		if _, ok := seen[b.Tip.Sha]; ok {
			continue
		}
		seen[b.Tip.Sha] = struct{}{}
		heads = append(heads, *b.Tip)
	}

	head, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	if head.Tip != nil {
		if _, ok := seen[head.Tip.Sha]; !ok {
			heads = append(heads, *head.Tip)
		}
	}

	return heads, nil
}

// Package testutil provides helpers for testing against git history: an
// in-memory commit graph implementing git.Repository, and a builder for real
// temporary repositories.
package testutil

import (
	"fmt"
	"time"

	"go-smartlog/internal/git"
)

// Compile-time check that GraphRepo implements git.Repository.
var _ git.Repository = (*GraphRepo)(nil)

// GraphRepo is an in-memory git.Repository over a synthetic commit DAG. It
// computes merge bases for real, so tests exercise the same ancestry
// semantics as a live repository — including multi-candidate bases from
// criss-cross merges.
type GraphRepo struct {
	commits  map[string]git.Commit
	branches map[string]string // branch name -> tip sha
	order    []string          // branch insertion order, for stable listings
	headRef  string            // branch name, or sha when detached
	detached bool
	clock    time.Time
}

// NewGraphRepo creates an empty graph.
func NewGraphRepo() *GraphRepo {
	return &GraphRepo{
		commits:  make(map[string]git.Commit),
		branches: make(map[string]string),
		clock:    time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Commit adds a commit with the given sha, message and parents. Commit times
// increase by one minute per call. Returns the commit.
func (g *GraphRepo) Commit(sha, message string, parents ...string) git.Commit {
	g.clock = g.clock.Add(time.Minute)
	return g.CommitAt(sha, message, g.clock, parents...)
}

// CommitAt adds a commit with an explicit timestamp.
func (g *GraphRepo) CommitAt(sha, message string, when time.Time, parents ...string) git.Commit {
	for _, p := range parents {
		if _, ok := g.commits[p]; !ok {
			panic(fmt.Sprintf("testutil: unknown parent %q of commit %q", p, sha))
		}
	}
	c := git.Commit{
		Sha:     sha,
		Parents: parents,
		When:    when,
		Message: message,
		Author:  "test@example.com",
	}
	g.commits[sha] = c
	if when.After(g.clock) {
		g.clock = when
	}
	return c
}

// SetBranch points a branch at the given sha, creating it if needed.
func (g *GraphRepo) SetBranch(name, sha string) {
	if _, ok := g.branches[name]; !ok {
		g.order = append(g.order, name)
	}
	g.branches[name] = sha
}

// SetHead attaches HEAD to a branch.
func (g *GraphRepo) SetHead(branch string) {
	g.headRef = branch
	g.detached = false
}

// SetDetachedHead points HEAD directly at a commit.
func (g *GraphRepo) SetDetachedHead(sha string) {
	g.headRef = sha
	g.detached = true
}

func (g *GraphRepo) Path() string             { return "" }
func (g *GraphRepo) WorkingDirectory() string { return "" }

func (g *GraphRepo) IsHeadDetached() bool { return g.detached }

func (g *GraphRepo) Head() (git.Branch, error) {
	if g.detached {
		tip, ok := g.commits[g.headRef]
		if !ok {
			return git.Branch{}, fmt.Errorf("detached HEAD at unknown commit %q", g.headRef)
		}
		return git.Branch{
			Name:           git.NewReferenceName("HEAD"),
			Tip:            &tip,
			IsDetachedHead: true,
		}, nil
	}

	sha, ok := g.branches[g.headRef]
	if !ok {
		return git.Branch{}, fmt.Errorf("HEAD points to unknown branch %q", g.headRef)
	}
	tip := g.commits[sha]
	return git.Branch{
		Name: git.NewBranchReferenceName(g.headRef),
		Tip:  &tip,
	}, nil
}

func (g *GraphRepo) Branches() ([]git.Branch, error) {
	var branches []git.Branch
	for _, name := range g.order {
		tip := g.commits[g.branches[name]]
		branches = append(branches, git.Branch{
			Name: git.NewBranchReferenceName(name),
			Tip:  &tip,
		})
	}
	return branches, nil
}

func (g *GraphRepo) BranchHead(name string) (git.Commit, error) {
	sha, ok := g.branches[name]
	if !ok {
		return git.Commit{}, fmt.Errorf("resolving branch %q: %w", name, git.ErrUnknownBranch)
	}
	return g.commits[sha], nil
}

func (g *GraphRepo) CommitFromSha(sha string) (git.Commit, error) {
	c, ok := g.commits[sha]
	if !ok {
		return git.Commit{}, fmt.Errorf("unknown commit %q", sha)
	}
	return c, nil
}

// MergeBase returns the maximal common ancestors of the two commits: common
// ancestors that are not themselves strict ancestors of another common
// ancestor.
func (g *GraphRepo) MergeBase(sha1, sha2 string) ([]git.Commit, error) {
	if _, ok := g.commits[sha1]; !ok {
		return nil, fmt.Errorf("unknown commit %q", sha1)
	}
	if _, ok := g.commits[sha2]; !ok {
		return nil, fmt.Errorf("unknown commit %q", sha2)
	}

	a1 := g.ancestors(sha1)
	a2 := g.ancestors(sha2)

	var common []string
	for sha := range a1 {
		if _, ok := a2[sha]; ok {
			common = append(common, sha)
		}
	}

	var bases []git.Commit
	for _, sha := range common {
		maximal := true
		for _, other := range common {
			if other == sha {
				continue
			}
			if _, ok := g.ancestors(other)[sha]; ok && other != sha {
				maximal = false
				break
			}
		}
		if maximal {
			bases = append(bases, g.commits[sha])
		}
	}
	return bases, nil
}

// ancestors returns the sha's ancestor set, including itself.
func (g *GraphRepo) ancestors(sha string) map[string]struct{} {
	seen := make(map[string]struct{})
	stack := []string{sha}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		stack = append(stack, g.commits[cur].Parents...)
	}
	return seen
}

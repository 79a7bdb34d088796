package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	path    string
	workDir string
}

// Open opens a git repository at the given path.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	root := wt.Filesystem.Root()

	return &GoGitRepository{
		repo:    r,
		path:    filepath.Join(root, ".git"),
		workDir: root,
	}, nil
}

func (r *GoGitRepository) Path() string {
	return r.path
}

func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

func (r *GoGitRepository) IsHeadDetached() bool {
	ref, err := r.repo.Head()
	if err != nil {
		return false
	}
	return !ref.Name().IsBranch()
}

func (r *GoGitRepository) Head() (Branch, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := r.commitFromHash(ref.Hash())
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD commit: %w", err)
	}

	isDetached := !ref.Name().IsBranch()
	name := NewReferenceName(string(ref.Name()))

	return Branch{
		Name:           name,
		Tip:            &commit,
		IsRemote:       false,
		IsDetachedHead: isDetached,
	}, nil
}

func (r *GoGitRepository) Branches() ([]Branch, error) {
	var branches []Branch

	// Local branches.
	localIter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing local branches: %w", err)
	}
	err = localIter.ForEach(func(ref *plumbing.Reference) error {
		commit, err := r.commitFromHash(ref.Hash())
		if err != nil {
			return nil // skip branches we can't resolve
		}
		branches = append(branches, Branch{
			Name:     NewReferenceName(string(ref.Name())),
			Tip:      &commit,
			IsRemote: false,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating local branches: %w", err)
	}

	// Remote branches.
	refIter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsRemote() {
			return nil
		}
		commit, err := r.commitFromHash(ref.Hash())
		if err != nil {
			return nil
		}
		branches = append(branches, Branch{
			Name:     NewReferenceName(string(ref.Name())),
			Tip:      &commit,
			IsRemote: true,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating remote branches: %w", err)
	}

	return branches, nil
}

func (r *GoGitRepository) BranchHead(name string) (Commit, error) {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return Commit{}, fmt.Errorf("resolving branch %q: %w", name, ErrUnknownBranch)
	}
	return r.commitFromHash(ref.Hash())
}

func (r *GoGitRepository) CommitFromSha(sha string) (Commit, error) {
	hash := plumbing.NewHash(sha)
	return r.commitFromHash(hash)
}

func (r *GoGitRepository) MergeBase(sha1, sha2 string) ([]Commit, error) {
	c1, err := r.repo.CommitObject(plumbing.NewHash(sha1))
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", sha1, err)
	}

	c2, err := r.repo.CommitObject(plumbing.NewHash(sha2))
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", sha2, err)
	}

	bases, err := c1.MergeBase(c2)
	if err != nil {
		return nil, fmt.Errorf("computing merge base: %w", err)
	}

	commits := make([]Commit, 0, len(bases))
	for _, b := range bases {
		commits = append(commits, convertCommit(b))
	}
	return commits, nil
}

// commitFromHash loads a go-git commit and converts it to our Commit type.
func (r *GoGitRepository) commitFromHash(hash plumbing.Hash) (Commit, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return Commit{}, fmt.Errorf("loading commit %s: %w", hash.String(), err)
	}
	return convertCommit(c), nil
}

// convertCommit converts a go-git commit to our Commit type.
func convertCommit(c *object.Commit) Commit {
	parents := make([]string, 0, c.NumParents())
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return Commit{
		Sha:     c.Hash.String(),
		Parents: parents,
		When:    c.Committer.When,
		Message: c.Message,
		Author:  c.Author.Email,
	}
}

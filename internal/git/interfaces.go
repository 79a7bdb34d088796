package git

import "errors"

// ErrUnknownBranch is returned when a branch name cannot be resolved to a
// commit.
var ErrUnknownBranch = errors.New("unknown branch")

// Repository provides low-level git operations.
// This is the key abstraction point for testing and backend swapping.
type Repository interface {
	// Path returns the path to the .git directory.
	Path() string

	// WorkingDirectory returns the path to the working directory.
	WorkingDirectory() string

	// IsHeadDetached returns true if HEAD is not pointing to a branch.
	IsHeadDetached() bool

	// Head returns the current HEAD branch.
	Head() (Branch, error)

	// Branches returns all branches in the repository.
	Branches() ([]Branch, error)

	// BranchHead resolves a local branch name to its current tip commit.
	// Returns an error wrapping ErrUnknownBranch if no such branch exists.
	BranchHead(name string) (Commit, error)

	// CommitFromSha returns the commit with the given SHA.
	CommitFromSha(sha string) (Commit, error)

	// MergeBase returns the common ancestors of two commits. The result may
	// hold zero, one, or (anomalously) more than one commit; callers decide
	// how to treat the ambiguous case.
	MergeBase(sha1, sha2 string) ([]Commit, error)
}

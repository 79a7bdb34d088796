// Package context provides the Snapshot, the resolved repository state an
// invocation renders from.
package context

import (
	"time"

	"go-smartlog/internal/git"
)

// Snapshot holds the state resolved once per invocation: the primary branch
// anchoring the tree, the current HEAD, and the effective date cutoff.
type Snapshot struct {
	// PrimaryBranch is the branch whose history forms the backbone.
	PrimaryBranch git.Branch

	// PrimaryTip is the primary branch's head commit.
	PrimaryTip git.Commit

	// Head is the current HEAD branch (possibly detached).
	Head git.Branch

	// HeadCommit is the commit HEAD points at.
	HeadCommit git.Commit

	// IsDetached is true when HEAD does not point to a branch.
	IsDetached bool

	// DateLimit is the cutoff below which commits are not displayed.
	// Zero means no cutoff.
	DateLimit time.Time
}

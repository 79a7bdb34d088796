package context

import (
	"fmt"
	"time"

	"go-smartlog/internal/config"
	"go-smartlog/internal/git"
)

// Options configures what the factory resolves.
type Options struct {
	// PrimaryBranch overrides the configured primary branch. Empty string
	// means use config or auto-detection.
	PrimaryBranch string

	// DateLimitDays overrides the configured cutoff. Zero means use config.
	DateLimitDays int

	// Now anchors the date cutoff. Zero means time.Now.
	Now time.Time
}

// NewSnapshot resolves the primary branch, HEAD state, and effective date
// cutoff for one invocation.
func NewSnapshot(store *git.RepositoryStore, repo git.Repository, cfg *config.Config, opts Options) (*Snapshot, error) {
	// 1. Resolve the primary branch (flag, then config, then detection).
	primaryName := opts.PrimaryBranch
	if primaryName == "" {
		primaryName = cfg.PrimaryBranchName()
	}
	primary, err := store.PrimaryBranch(primaryName)
	if err != nil {
		return nil, fmt.Errorf("resolving primary branch: %w", err)
	}
	if primary.Tip == nil {
		return nil, fmt.Errorf("primary branch %q has no tip commit", primary.FriendlyName())
	}

	// 2. Resolve HEAD.
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	if head.Tip == nil {
		return nil, fmt.Errorf("HEAD has no commit")
	}

	// 3. Compute the date cutoff.
	days := opts.DateLimitDays
	if days == 0 {
		days = cfg.DateLimit()
	}
	var dateLimit time.Time
	if days > 0 {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		dateLimit = now.AddDate(0, 0, -days)
	}

	return &Snapshot{
		PrimaryBranch: primary,
		PrimaryTip:    *primary.Tip,
		Head:          head,
		HeadCommit:    *head.Tip,
		IsDetached:    head.IsDetachedHead || repo.IsHeadDetached(),
		DateLimit:     dateLimit,
	}, nil
}

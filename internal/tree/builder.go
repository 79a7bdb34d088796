package tree

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go-smartlog/internal/git"
)

// Options configures a Builder.
type Options struct {
	// DateLimit drops commits older than this time from Add calls. The zero
	// time disables the cutoff.
	DateLimit time.Time

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Builder incrementally constructs the sparse commit tree. It owns the tree
// exclusively: every Add call runs to completion before the next, and either
// mutates the tree fully or leaves its structure unchanged (nodes created for
// an aborted walk may remain indexed as orphans, but are never linked in).
type Builder struct {
	repo     git.Repository
	resolver *AncestryResolver
	logger   *slog.Logger

	index *NodeIndex
	root  *Node
	tip   *Node

	dateLimit time.Time
	skipCount int
}

// NewBuilder creates a builder anchored to the given primary branch tip. The
// tip is indexed, marked as on the primary branch, and attached under the
// root sentinel.
func NewBuilder(repo git.Repository, primaryTip git.Commit, opts Options) (*Builder, error) {
	if repo == nil {
		return nil, errors.New("tree: repository is nil")
	}
	if primaryTip.IsEmpty() {
		return nil, errors.New("tree: primary branch tip is empty")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	b := &Builder{
		repo:      repo,
		resolver:  NewAncestryResolver(repo, logger),
		logger:    logger,
		index:     NewNodeIndex(),
		root:      newRootNode(),
		dateLimit: opts.DateLimit,
	}

	b.tip = newNode(primaryTip, true)
	b.root.addChild(b.tip)
	b.index.Insert(b.tip)

	return b, nil
}

// Root returns the root sentinel, the tree's sole entry point.
func (b *Builder) Root() *Node {
	return b.root
}

// Tip returns the node wrapping the primary branch's head commit.
func (b *Builder) Tip() *Node {
	return b.tip
}

// NodeFor returns the node created for the given commit SHA, or nil.
func (b *Builder) NodeFor(sha string) *Node {
	return b.index.Get(sha)
}

// SkipCount returns how many commits were dropped by the date cutoff.
func (b *Builder) SkipCount() int {
	return b.skipCount
}

// Add grafts the commit's ancestry chain onto the tree, honoring the date
// cutoff. Adding the same commit twice is a no-op, as is adding a commit with
// no common history with the primary branch (reported through the logger).
// An error is returned only when placing the commit would require guessing:
// a merge commit whose message doesn't follow the expected convention, or
// one naming an unknown branch.
func (b *Builder) Add(c git.Commit) error {
	return b.add(c, false)
}

// AddIgnoringDateLimit is Add without the date cutoff, for commits that must
// appear regardless of age (e.g. the current HEAD).
func (b *Builder) AddIgnoringDateLimit(c git.Commit) error {
	return b.add(c, true)
}

func (b *Builder) add(c git.Commit, ignoreDateLimit bool) error {
	if c.IsEmpty() {
		b.logger.Error("invalid commit value (empty)")
		return nil
	}

	if b.index.Get(c.Sha) != nil {
		b.logger.Debug("commit already processed", "sha", c.ShortSha())
		return nil
	}

	if !b.dateLimit.IsZero() && !ignoreDateLimit && c.When.Before(b.dateLimit) {
		b.skipCount++
		b.logger.Debug("skipping commit older than the date limit",
			"sha", c.ShortSha(), "when", c.When)
		return nil
	}

	b.logger.Info("adding commit", "sha", c.ShortSha())

	lca, found, err := b.resolver.LowestCommonAncestor(c, b.tip.Commit)
	if err != nil {
		if errors.Is(err, ErrUnsupportedMergeShape) {
			b.logger.Warn("dropping commit with unsupported ancestry",
				"sha", c.ShortSha(), "err", err)
			return nil
		}
		return err
	}
	if !found {
		b.logger.Warn("commit is not connected to the primary branch",
			"sha", c.ShortSha())
		return nil
	}

	// Walk backward from the commit toward the LCA, creating nodes for
	// commits not yet in the tree. The chain under construction runs from the
	// LCA (exclusive) toward the commit (inclusive), each newer commit
	// pointing up to the next.
	var chainHead *Node
	cur := c
	for cur.Sha != lca.Sha {
		var parentSha string
		switch len(cur.Parents) {
		case 1:
			parentSha = cur.Parents[0]
		case 2:
			dest, err := b.resolver.MergeDestinationParent(cur)
			if err != nil {
				if errors.Is(err, ErrUnsupportedMergeShape) {
					b.logger.Warn("dropping commit with unsupported ancestry",
						"sha", c.ShortSha(), "err", err)
					return nil
				}
				return err
			}
			b.logger.Debug("merge commit, continuing through mainline parent",
				"sha", cur.ShortSha(), "parent", dest.ShortSha())
			parentSha = dest.Sha
		default:
			b.logger.Warn("dropping commit: unsupported parent count on the walk",
				"sha", c.ShortSha(), "at", cur.ShortSha(), "parents", len(cur.Parents))
			return nil
		}

		node := b.index.Get(cur.Sha)
		if node == nil {
			node = newNode(cur, false)
			b.index.Insert(node)
		}

		if chainHead != nil {
			node.addChild(chainHead)
		}

		// The chain reconnected to existing structure; no need to keep
		// walking to the LCA.
		if node.HasParent() {
			chainHead = nil
			break
		}

		chainHead = node
		cur, err = b.repo.CommitFromSha(parentSha)
		if err != nil {
			return fmt.Errorf("loading parent of %s: %w", node.Commit.ShortSha(), err)
		}
	}

	lcaNode := b.index.Get(lca.Sha)
	if lcaNode == nil {
		lcaNode = newNode(lca, true)
		b.index.Insert(lcaNode)
		if err := b.insertLCA(lcaNode); err != nil {
			if errors.Is(err, ErrUnsupportedMergeShape) {
				b.logger.Warn("dropping commit: could not place its ancestor on the backbone",
					"sha", c.ShortSha(), "err", err)
				return nil
			}
			return err
		}
	}

	if chainHead != nil {
		lcaNode.addChild(chainHead)
	}
	return nil
}

// insertLCA splices a newly discovered common ancestor into the primary
// branch backbone at the correct depth. Starting from the tip, it walks
// upward until it finds a node whose parent is an ancestor-or-equal of the
// new LCA (or the root sentinel), and splices the new node in between.
func (b *Builder) insertLCA(lcaNode *Node) error {
	if lcaNode == b.tip {
		return nil
	}

	node := b.tip
	for node != nil {
		parent := node.Parent()
		if parent == b.root {
			splice(b.root, lcaNode, node)
			return nil
		}

		base, found, err := b.resolver.LowestCommonAncestor(lcaNode.Commit, parent.Commit)
		if err != nil {
			return err
		}
		if found && base.Sha == parent.Commit.Sha {
			splice(parent, lcaNode, node)
			return nil
		}

		node = parent
	}
	return nil
}

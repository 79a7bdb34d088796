package tree

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go-smartlog/internal/git"
)

// ErrUnsupportedMergeShape is returned when the merge-parent heuristic meets
// a commit with a parent count other than exactly two. Octopus merges are not
// supported.
var ErrUnsupportedMergeShape = errors.New("unsupported merge shape")

// AncestryResolver answers ancestry questions against the repository: lowest
// common ancestors, and which parent of a merge commit continues the mainline.
type AncestryResolver struct {
	repo   git.Repository
	logger *slog.Logger
}

// NewAncestryResolver creates a resolver over the given repository. A nil
// logger discards diagnostics.
func NewAncestryResolver(repo git.Repository, logger *slog.Logger) *AncestryResolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &AncestryResolver{repo: repo, logger: logger}
}

// LowestCommonAncestor returns the lowest common ancestor of a and b. The
// second return value is false when the commits share no history, and when
// the repository anomalously reports more than one candidate ancestor — a
// case we refuse to disambiguate. When the single candidate is itself a merge
// commit, the merge-parent heuristic is applied until the result lies on a
// well-defined mainline.
func (r *AncestryResolver) LowestCommonAncestor(a, b git.Commit) (git.Commit, bool, error) {
	bases, err := r.repo.MergeBase(a.Sha, b.Sha)
	if err != nil {
		return git.Commit{}, false, fmt.Errorf("querying merge base of %s and %s: %w",
			a.ShortSha(), b.ShortSha(), err)
	}

	if len(bases) == 0 {
		return git.Commit{}, false, nil
	}
	if len(bases) > 1 {
		r.logger.Error("merge base returned multiple candidates",
			"a", a.ShortSha(), "b", b.ShortSha(), "candidates", len(bases))
		return git.Commit{}, false, nil
	}

	base := bases[0]
	for base.IsMerge() {
		r.logger.Debug("merge base is a merge commit, resolving mainline parent",
			"base", base.ShortSha())
		base, err = r.MergeDestinationParent(base)
		if err != nil {
			return git.Commit{}, false, err
		}
	}
	return base, true, nil
}

// MergeDestinationParent determines which parent of a two-parent merge commit
// represents the continuation of the branch being merged into. The commit
// message names the incoming branch; the destination parent is whichever
// parent is not an ancestor of that branch's current head.
func (r *AncestryResolver) MergeDestinationParent(merge git.Commit) (git.Commit, error) {
	if len(merge.Parents) != 2 {
		return git.Commit{}, fmt.Errorf("%w: commit %s has %d parents",
			ErrUnsupportedMergeShape, merge.ShortSha(), len(merge.Parents))
	}

	msg, err := git.ParseMergeMessage(merge.Message)
	if err != nil {
		return git.Commit{}, fmt.Errorf("resolving mainline parent of %s: %w",
			merge.ShortSha(), err)
	}

	incomingHead, err := r.repo.BranchHead(msg.IncomingBranch)
	if err != nil {
		return git.Commit{}, fmt.Errorf("resolving incoming branch of %s: %w",
			merge.ShortSha(), err)
	}

	for _, parentSha := range merge.Parents {
		parent, err := r.repo.CommitFromSha(parentSha)
		if err != nil {
			return git.Commit{}, fmt.Errorf("loading parent %s: %w", parentSha, err)
		}

		base, found, err := r.LowestCommonAncestor(incomingHead, parent)
		if err != nil {
			return git.Commit{}, err
		}
		// A parent that is an ancestor of the incoming head belongs to the
		// merged-in branch; the other parent is the destination.
		if !found || base.Sha != parent.Sha {
			r.logger.Debug("resolved merge destination parent",
				"merge", merge.ShortSha(),
				"incoming", msg.IncomingBranch,
				"parent", parent.ShortSha())
			return parent, nil
		}
	}

	return git.Commit{}, fmt.Errorf("merge %s: both parents are ancestors of branch %q",
		merge.ShortSha(), msg.IncomingBranch)
}

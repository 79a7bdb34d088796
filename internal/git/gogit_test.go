package git_test

import (
	"testing"

	"go-smartlog/internal/git"
	"go-smartlog/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestOpen_InvalidPath(t *testing.T) {
	_, err := git.Open(t.TempDir())
	require.Error(t, err)
}

func TestGoGitRepository_HeadAndBranches(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	first := tr.AddCommit("initial")
	second := tr.AddCommit("more work")
	tr.CreateBranch("feature", first)

	repo, err := git.Open(tr.Path())
	require.NoError(t, err)
	require.False(t, repo.IsHeadDetached())

	head, err := repo.Head()
	require.NoError(t, err)
	require.Equal(t, "master", head.FriendlyName())
	require.Equal(t, second, head.Tip.Sha)

	branches, err := repo.Branches()
	require.NoError(t, err)
	names := make(map[string]string)
	for _, b := range branches {
		names[b.FriendlyName()] = b.Tip.Sha
	}
	require.Equal(t, second, names["master"])
	require.Equal(t, first, names["feature"])
}

func TestGoGitRepository_BranchHead(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	first := tr.AddCommit("initial")
	tr.CreateBranch("feature", first)

	repo, err := git.Open(tr.Path())
	require.NoError(t, err)

	tip, err := repo.BranchHead("feature")
	require.NoError(t, err)
	require.Equal(t, first, tip.Sha)

	_, err = repo.BranchHead("missing")
	require.ErrorIs(t, err, git.ErrUnknownBranch)
}

func TestGoGitRepository_CommitFromSha(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	first := tr.AddCommit("initial")
	second := tr.AddCommit("second commit")

	repo, err := git.Open(tr.Path())
	require.NoError(t, err)

	c, err := repo.CommitFromSha(second)
	require.NoError(t, err)
	require.Equal(t, second, c.Sha)
	require.Equal(t, []string{first}, c.Parents)
	require.Equal(t, "second commit", c.Subject())
	require.Equal(t, "test@example.com", c.Author)
	require.False(t, c.IsMerge())
}

func TestGoGitRepository_MergeBase(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("initial")
	forkPoint := tr.AddCommit("fork point")
	tr.CreateBranch("feature", forkPoint)
	mainTip := tr.AddCommit("main work")

	tr.Checkout("feature")
	featureTip := tr.AddCommit("feature work")

	repo, err := git.Open(tr.Path())
	require.NoError(t, err)

	bases, err := repo.MergeBase(featureTip, mainTip)
	require.NoError(t, err)
	require.Len(t, bases, 1)
	require.Equal(t, forkPoint, bases[0].Sha)
}

func TestGoGitRepository_MergeCommitParents(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("initial")
	forkPoint := tr.AddCommit("fork point")
	tr.CreateBranch("feature", forkPoint)
	mainTip := tr.AddCommit("main work")

	tr.Checkout("feature")
	featureTip := tr.AddCommit("feature work")

	tr.Checkout("master")
	mergeSha := tr.MergeCommit("Merge branch 'feature' into master", featureTip)

	repo, err := git.Open(tr.Path())
	require.NoError(t, err)

	merge, err := repo.CommitFromSha(mergeSha)
	require.NoError(t, err)
	require.True(t, merge.IsMerge())
	require.Equal(t, []string{mainTip, featureTip}, merge.Parents)
}

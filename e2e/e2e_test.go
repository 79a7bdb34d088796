// Package e2e contains end-to-end tests that exercise the full smartlog
// pipeline against real (temporary) git repositories.
//
// Each test creates a purpose-built git repo, builds the sparse tree through
// the public API, and asserts on the tree shape and rendered output. This
// tests all layers together: git adapter → context → tree builder → output.
package e2e

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"go-smartlog/internal/testutil"
	"go-smartlog/pkg/smartlog"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func build(t *testing.T, opts smartlog.Options) *smartlog.Result {
	t.Helper()
	result, err := smartlog.Build(opts)
	require.NoError(t, err)
	return result
}

func render(t *testing.T, result *smartlog.Result) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, result.Render(&buf))
	return buf.String()
}

// ---------------------------------------------------------------------------
// Backbone
// ---------------------------------------------------------------------------

func TestE2E_LinearHistory(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("initial commit")
	repo.AddCommit("second commit")
	head := repo.AddCommit("third commit")

	result := build(t, smartlog.Options{Path: repo.Path()})

	// go-git initializes repositories on master; detection picks it up.
	require.Equal(t, "master", result.Snapshot.PrimaryBranch.FriendlyName())
	require.Equal(t, head, result.Snapshot.HeadCommit.Sha)

	// Straight-line history collapses to the tip alone.
	root := result.Builder.Root()
	require.Len(t, root.Children(), 1)
	tip := root.Children()[0]
	require.Equal(t, head, tip.Commit.Sha)
	require.Empty(t, tip.Children())

	out := render(t, result)
	require.Contains(t, out, "*  "+head[:7])
	require.Contains(t, out, "third commit")
	require.NotContains(t, out, "initial commit")
}

func TestE2E_BranchFromInteriorCommit(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	fork := repo.AddCommit("fork point")
	repo.AddCommit("interior work")
	head := repo.AddCommit("main tip")

	repo.CreateBranch("feature", fork)
	repo.Checkout("feature")
	f1 := repo.AddCommit("feature work")
	f2 := repo.AddCommit("more feature work")
	repo.Checkout("master")

	result := build(t, smartlog.Options{Path: repo.Path()})

	// The fork point is spliced into the backbone; the feature chain hangs
	// off it next to the compressed path up to the tip.
	forkNode := result.Builder.NodeFor(fork)
	require.NotNil(t, forkNode)
	require.True(t, forkNode.OnPrimaryBranch)
	require.True(t, forkNode.Parent().IsRoot())
	require.Len(t, forkNode.Children(), 2)

	tipNode := result.Builder.NodeFor(head)
	require.NotNil(t, tipNode)
	require.Equal(t, forkNode, tipNode.Parent())
	require.False(t, tipNode.IsDirectChild())

	f1Node := result.Builder.NodeFor(f1)
	require.NotNil(t, f1Node)
	require.Equal(t, forkNode, f1Node.Parent())
	require.True(t, f1Node.IsDirectChild())
	require.Equal(t, f1Node, result.Builder.NodeFor(f2).Parent())

	out := render(t, result)
	require.Contains(t, out, "feature work")
	require.Contains(t, out, "(feature)")
	require.Contains(t, out, "(HEAD -> master)")
	require.NotContains(t, out, "interior work") // skipped commits stay hidden
}

// ---------------------------------------------------------------------------
// Merge commits
// ---------------------------------------------------------------------------

func TestE2E_WalkThroughMergeFollowsDestinationParent(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	base := repo.AddCommit("base")

	repo.CreateBranch("feature", base)
	repo.Checkout("feature")
	f1 := repo.AddCommit("feature work")
	repo.Checkout("master")
	m2 := repo.AddCommit("master work")
	merge := repo.MergeCommit("Merge branch 'feature' into master", f1)

	repo.CreateBranch("wip", merge)
	repo.Checkout("wip")
	w1 := repo.AddCommit("wip on top of merge")
	repo.Checkout("master")
	head := repo.AddCommit("post-merge work")

	result := build(t, smartlog.Options{Path: repo.Path()})

	// Walking wip back from the merge commit follows the parent on master
	// (m2), not the merged-in feature tip, so the chain joins the backbone
	// at m2.
	m2Node := result.Builder.NodeFor(m2)
	require.NotNil(t, m2Node)
	require.True(t, m2Node.OnPrimaryBranch)

	mergeNode := result.Builder.NodeFor(merge)
	require.NotNil(t, mergeNode)
	require.Equal(t, m2Node, mergeNode.Parent())
	require.Equal(t, mergeNode, result.Builder.NodeFor(w1).Parent())

	// The merged-in feature tip never appears on the wip chain.
	require.NotEqual(t, result.Builder.NodeFor(f1), mergeNode.Parent())
	require.NotNil(t, result.Builder.NodeFor(head))

	out := render(t, result)
	require.Contains(t, out, "wip on top of merge")
	require.Contains(t, out, "post-merge work")
}

// ---------------------------------------------------------------------------
// Date limit
// ---------------------------------------------------------------------------

func TestE2E_DateLimitHidesOldBranchesButNotHead(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	fork := repo.AddCommit("fork point")
	repo.CreateBranch("stale", fork)
	repo.Checkout("stale")
	old := repo.AddCommit("stale work")
	repo.Checkout("master")
	head := repo.AddCommit("current work")

	// The repo's synthetic clock sits in early 2025, far outside any recent
	// window, so every branch tip falls below the cutoff.
	result := build(t, smartlog.Options{Path: repo.Path(), DateLimitDays: 30})

	require.Nil(t, result.Builder.NodeFor(old))
	require.NotNil(t, result.Builder.NodeFor(head))
	require.Equal(t, 1, result.Builder.SkipCount())

	out := render(t, result)
	require.Contains(t, out, "current work")
	require.NotContains(t, out, "stale work")
	require.Contains(t, out, "1 older commit(s) hidden by the date limit")
}

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

func TestE2E_ConfigFilePrimaryBranch(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("initial commit")
	tip := repo.AddCommit("trunk tip")
	repo.CreateBranch("trunk", tip)
	repo.WriteConfig("primary-branch: trunk\n")

	result := build(t, smartlog.Options{Path: repo.Path()})

	require.Equal(t, "trunk", result.Snapshot.PrimaryBranch.FriendlyName())
	require.Equal(t, tip, result.Snapshot.PrimaryTip.Sha)
}

func TestE2E_FlagOverridesConfigFile(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("initial commit")
	tip := repo.AddCommit("tip")
	repo.CreateBranch("trunk", tip)
	repo.WriteConfig("primary-branch: trunk\n")

	result := build(t, smartlog.Options{Path: repo.Path(), PrimaryBranch: "master"})

	require.Equal(t, "master", result.Snapshot.PrimaryBranch.FriendlyName())
}

func TestE2E_ConfigDateLimit(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("old work")
	repo.Advance(24 * time.Hour)
	repo.AddCommit("newer work")
	repo.WriteConfig("date-limit-days: 30\n")

	result := build(t, smartlog.Options{Path: repo.Path()})

	require.False(t, result.Snapshot.DateLimit.IsZero())
}

// ---------------------------------------------------------------------------
// Detached HEAD and JSON output
// ---------------------------------------------------------------------------

func TestE2E_DetachedHeadAlwaysShown(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	interior := repo.AddCommit("interior commit")
	repo.AddCommit("tip commit")
	repo.CheckoutSha(interior)

	result := build(t, smartlog.Options{Path: repo.Path()})

	require.True(t, result.Snapshot.IsDetached)
	require.Equal(t, interior, result.Snapshot.HeadCommit.Sha)
	require.NotNil(t, result.Builder.NodeFor(interior))

	out := render(t, result)
	require.Contains(t, out, "*  "+interior[:7])
	require.Contains(t, out, "(HEAD)")
}

func TestE2E_JSONOutput(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	fork := repo.AddCommit("fork point")
	repo.CreateBranch("feature", fork)
	repo.Checkout("feature")
	repo.AddCommit("feature work")
	repo.Checkout("master")
	head := repo.AddCommit("main tip")

	result := build(t, smartlog.Options{Path: repo.Path()})

	var buf bytes.Buffer
	require.NoError(t, result.RenderJSON(&buf))

	var root struct {
		Children []struct {
			Sha      string `json:"sha"`
			Subject  string `json:"subject"`
			Children []struct {
				Sha string `json:"sha"`
			} `json:"children"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))
	require.Len(t, root.Children, 1)
	require.Equal(t, fork, root.Children[0].Sha)
	require.Len(t, root.Children[0].Children, 2)
	require.Equal(t, head, root.Children[0].Children[0].Sha)
}

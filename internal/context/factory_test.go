package context

import (
	"testing"
	"time"

	"go-smartlog/internal/config"
	"go-smartlog/internal/git"
	"go-smartlog/internal/testutil"

	"github.com/stretchr/testify/require"
)

func graphWithMain(t *testing.T) *testutil.GraphRepo {
	t.Helper()
	g := testutil.NewGraphRepo()
	g.Commit("a1", "initial")
	g.Commit("b1", "work", "a1")
	g.SetBranch("main", "b1")
	g.SetHead("main")
	return g
}

func TestNewSnapshot_Defaults(t *testing.T) {
	g := graphWithMain(t)
	store := git.NewRepositoryStore(g)

	snap, err := NewSnapshot(store, g, config.Default(), Options{})
	require.NoError(t, err)

	require.Equal(t, "main", snap.PrimaryBranch.FriendlyName())
	require.Equal(t, "b1", snap.PrimaryTip.Sha)
	require.Equal(t, "b1", snap.HeadCommit.Sha)
	require.False(t, snap.IsDetached)
	require.True(t, snap.DateLimit.IsZero())
}

func TestNewSnapshot_FlagOverridesConfig(t *testing.T) {
	g := graphWithMain(t)
	g.Commit("c1", "trunk work", "a1")
	g.SetBranch("trunk", "c1")
	store := git.NewRepositoryStore(g)

	configured := "main"
	cfg := config.Default().Merge(&config.Config{PrimaryBranch: &configured})

	snap, err := NewSnapshot(store, g, cfg, Options{PrimaryBranch: "trunk"})
	require.NoError(t, err)
	require.Equal(t, "trunk", snap.PrimaryBranch.FriendlyName())
	require.Equal(t, "c1", snap.PrimaryTip.Sha)
}

func TestNewSnapshot_DateLimit(t *testing.T) {
	g := graphWithMain(t)
	store := git.NewRepositoryStore(g)

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	days := 30
	cfg := config.Default().Merge(&config.Config{DateLimitDays: &days})

	snap, err := NewSnapshot(store, g, cfg, Options{Now: now})
	require.NoError(t, err)
	require.Equal(t, now.AddDate(0, 0, -30), snap.DateLimit)

	// A flag overrides the configured cutoff.
	snap, err = NewSnapshot(store, g, cfg, Options{Now: now, DateLimitDays: 7})
	require.NoError(t, err)
	require.Equal(t, now.AddDate(0, 0, -7), snap.DateLimit)
}

func TestNewSnapshot_DetachedHead(t *testing.T) {
	g := graphWithMain(t)
	g.SetDetachedHead("a1")
	store := git.NewRepositoryStore(g)

	snap, err := NewSnapshot(store, g, config.Default(), Options{})
	require.NoError(t, err)
	require.True(t, snap.IsDetached)
	require.Equal(t, "a1", snap.HeadCommit.Sha)
	require.Equal(t, "b1", snap.PrimaryTip.Sha)
}

func TestNewSnapshot_UnknownPrimaryBranch(t *testing.T) {
	g := graphWithMain(t)
	store := git.NewRepositoryStore(g)

	_, err := NewSnapshot(store, g, config.Default(), Options{PrimaryBranch: "release"})
	require.ErrorIs(t, err, git.ErrUnknownBranch)
}

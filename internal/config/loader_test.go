package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "", cfg.PrimaryBranchName())
	require.Equal(t, 0, cfg.DateLimit())
	require.False(t, cfg.IncludeRemotes())
	require.Equal(t, "auto", cfg.ColorMode())
}

func TestMerge(t *testing.T) {
	branch := "trunk"
	days := 14

	cfg := Default().Merge(&Config{
		PrimaryBranch: &branch,
		DateLimitDays: &days,
	})

	require.Equal(t, "trunk", cfg.PrimaryBranchName())
	require.Equal(t, 14, cfg.DateLimit())
	// Untouched fields keep their defaults.
	require.False(t, cfg.IncludeRemotes())
	require.Equal(t, "auto", cfg.ColorMode())
}

func TestMergeNil(t *testing.T) {
	cfg := Default()
	require.Same(t, cfg, cfg.Merge(nil))
}

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
primary-branch: develop
date-limit-days: 30
include-remote-branches: true
color: never
`))
	require.NoError(t, err)
	require.Equal(t, "develop", cfg.PrimaryBranchName())
	require.Equal(t, 30, cfg.DateLimit())
	require.True(t, cfg.IncludeRemotes())
	require.Equal(t, "never", cfg.ColorMode())
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	_, err := LoadFromBytes([]byte("primary-branch: [unclosed"))
	require.Error(t, err)
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	require.Equal(t, "auto", cfg.ColorMode())
	require.Equal(t, "", cfg.PrimaryBranchName())
}

func TestLoad_FindsFileInWorkDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".smartlog.yml")
	require.NoError(t, os.WriteFile(path, []byte("date-limit-days: 7\n"), 0o644))

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	require.Equal(t, 7, cfg.DateLimit())
	// Fields absent from the file fall through to defaults.
	require.Equal(t, "auto", cfg.ColorMode())
}

func TestLoad_ExplicitPathWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".smartlog.yml"), []byte("date-limit-days: 7\n"), 0o644))
	explicit := filepath.Join(dir, "other.yml")
	require.NoError(t, os.WriteFile(explicit, []byte("date-limit-days: 90\n"), 0o644))

	cfg, err := Load(dir, explicit)
	require.NoError(t, err)
	require.Equal(t, 90, cfg.DateLimit())
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

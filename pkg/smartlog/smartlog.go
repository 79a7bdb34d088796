// Package smartlog provides a public Go API for building and rendering a
// sparse commit tree from a local git repository.
//
// Basic usage:
//
//	result, err := smartlog.Build(smartlog.Options{Path: "/path/to/repo"})
//	if err != nil {
//	    return err
//	}
//	result.Render(os.Stdout)
package smartlog

import (
	"fmt"
	"io"
	"log/slog"

	"go-smartlog/internal/config"
	"go-smartlog/internal/git"
	"go-smartlog/internal/output"
	"go-smartlog/internal/tree"

	sctx "go-smartlog/internal/context"
)

// Options configures a smartlog build.
type Options struct {
	// Path to the git repository. Defaults to "." if empty.
	Path string

	// PrimaryBranch overrides the primary branch. Empty means config, then
	// auto-detection (main, master).
	PrimaryBranch string

	// DateLimitDays hides commits older than this many days. Zero means use
	// the configured value; the current HEAD is always shown.
	DateLimitDays int

	// IncludeRemoteBranches also grafts remote tracking branch tips.
	IncludeRemoteBranches bool

	// ConfigPath points at a smartlog YAML config file. If empty,
	// .smartlog.yml / smartlog.yml in the repo root are auto-detected.
	ConfigPath string

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Result holds the built tree and the state it was built from.
type Result struct {
	Builder  *tree.Builder
	Snapshot *sctx.Snapshot
	Config   *config.Config

	repo git.Repository
}

// Build opens the repository, resolves the invocation snapshot, and grafts
// all display heads (branch tips and HEAD) onto a sparse tree.
func Build(opts Options) (*Result, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	repo, err := git.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	return BuildFromRepository(repo, opts)
}

// BuildFromRepository is Build over an already-opened repository.
func BuildFromRepository(repo git.Repository, opts Options) (*Result, error) {
	cfg, err := config.Load(repo.WorkingDirectory(), opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	store := git.NewRepositoryStore(repo)
	snap, err := sctx.NewSnapshot(store, repo, cfg, sctx.Options{
		PrimaryBranch: opts.PrimaryBranch,
		DateLimitDays: opts.DateLimitDays,
	})
	if err != nil {
		return nil, fmt.Errorf("resolving repository state: %w", err)
	}

	builder, err := tree.NewBuilder(repo, snap.PrimaryTip, tree.Options{
		DateLimit: snap.DateLimit,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tree builder: %w", err)
	}

	heads, err := store.DisplayHeads(opts.IncludeRemoteBranches || cfg.IncludeRemotes())
	if err != nil {
		return nil, fmt.Errorf("collecting display heads: %w", err)
	}
	for _, head := range heads {
		if err := builder.Add(head); err != nil {
			return nil, fmt.Errorf("adding %s: %w", head.ShortSha(), err)
		}
	}

	// HEAD is shown regardless of age.
	if err := builder.AddIgnoringDateLimit(snap.HeadCommit); err != nil {
		return nil, fmt.Errorf("adding HEAD %s: %w", snap.HeadCommit.ShortSha(), err)
	}

	return &Result{
		Builder:  builder,
		Snapshot: snap,
		Config:   cfg,
		repo:     repo,
	}, nil
}

// Render writes the smartlog graph to w.
func (r *Result) Render(w io.Writer) error {
	refs, err := output.NewRefMap(r.repo)
	if err != nil {
		return fmt.Errorf("building ref map: %w", err)
	}

	headSha := r.Snapshot.HeadCommit.Sha
	printer := output.NewTreePrinter(w, output.NewNodePrinter(refs, headSha), headSha)
	if err := printer.Print(r.Builder.Root()); err != nil {
		return fmt.Errorf("rendering tree: %w", err)
	}

	if n := r.Builder.SkipCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "%d older commit(s) hidden by the date limit\n", n); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON writes the tree as JSON to w.
func (r *Result) RenderJSON(w io.Writer) error {
	return output.WriteJSON(w, r.Builder.Root())
}

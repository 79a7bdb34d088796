// Package config provides YAML configuration loading and default merging for
// the smartlog.
package config

// Config is the root configuration. Optional fields are pointers to support
// merge semantics: a nil field means "not set here, fall through".
type Config struct {
	// PrimaryBranch names the branch whose history forms the tree's spine.
	// Empty means auto-detect (main, then master).
	PrimaryBranch *string `yaml:"primary-branch"`

	// DateLimitDays drops commits older than this many days from the view.
	// Zero disables the cutoff.
	DateLimitDays *int `yaml:"date-limit-days"`

	// IncludeRemoteBranches also seeds the tree with remote tracking branch tips.
	IncludeRemoteBranches *bool `yaml:"include-remote-branches"`

	// Color controls colorized output: auto, always, or never.
	Color *string `yaml:"color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	primaryBranch := ""
	dateLimitDays := 0
	includeRemotes := false
	colorMode := "auto"
	return &Config{
		PrimaryBranch:         &primaryBranch,
		DateLimitDays:         &dateLimitDays,
		IncludeRemoteBranches: &includeRemotes,
		Color:                 &colorMode,
	}
}

// Merge overlays the non-nil fields of other onto c and returns c.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}
	if other.PrimaryBranch != nil {
		c.PrimaryBranch = other.PrimaryBranch
	}
	if other.DateLimitDays != nil {
		c.DateLimitDays = other.DateLimitDays
	}
	if other.IncludeRemoteBranches != nil {
		c.IncludeRemoteBranches = other.IncludeRemoteBranches
	}
	if other.Color != nil {
		c.Color = other.Color
	}
	return c
}

// PrimaryBranchName returns the configured primary branch, or "".
func (c *Config) PrimaryBranchName() string {
	if c.PrimaryBranch == nil {
		return ""
	}
	return *c.PrimaryBranch
}

// DateLimit returns the configured cutoff in days, or 0.
func (c *Config) DateLimit() int {
	if c.DateLimitDays == nil {
		return 0
	}
	return *c.DateLimitDays
}

// IncludeRemotes returns whether remote tracking branches are shown.
func (c *Config) IncludeRemotes() bool {
	return c.IncludeRemoteBranches != nil && *c.IncludeRemoteBranches
}

// ColorMode returns the configured color mode, defaulting to "auto".
func (c *Config) ColorMode() string {
	if c.Color == nil {
		return "auto"
	}
	return *c.Color
}

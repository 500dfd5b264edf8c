package config

import (
	"gitlab.com/tozd/go/errors"
)

// DefaultTarget is the build target triple whose collected-directive output
// is read when none is configured.
const DefaultTarget = "x86_64-apple-darwin"

// 📚 Config is the complete migrc configuration.
type Config struct {
	// ManualDirectives are extra raw directive strings merged into the
	// directive set after automatic collection, for directives the
	// collection step missed or mis-collected.
	ManualDirectives []string `json:"manual_directives,omitempty" yaml:"manual_directives,omitempty" toml:"manual_directives,omitempty" hcl:"manual_directives,optional"`

	// Target is the build target triple the collected-directive files were
	// produced for.
	Target string `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty" hcl:"target,optional"`

	// Extensions are the file extensions treated as migration candidates.
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty" toml:"extensions,omitempty" hcl:"extensions,optional"`

	// ExcludeGlobs are doublestar patterns (relative to each phase root)
	// for files to leave alone.
	ExcludeGlobs []string `json:"exclude_globs,omitempty" yaml:"exclude_globs,omitempty" toml:"exclude_globs,omitempty" hcl:"exclude_globs,optional"`

	// MatchMode selects how lines are compared against the directive set:
	// "line" (whole line, the default) or "body" (trimmed comment body).
	MatchMode string `json:"match_mode,omitempty" yaml:"match_mode,omitempty" toml:"match_mode,omitempty" hcl:"match_mode,optional"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Target:     DefaultTarget,
		Extensions: []string{".rs"},
		MatchMode:  "line",
	}
}

// applyDefaults fills unset fields so loaded configs behave like Default.
func (c *Config) applyDefaults() {
	if c.Target == "" {
		c.Target = DefaultTarget
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".rs"}
	}
	if c.MatchMode == "" {
		c.MatchMode = "line"
	}
}

// validate checks field values after loading.
func (c *Config) validate() error {
	switch c.MatchMode {
	case "line", "body":
		return nil
	default:
		return errors.Errorf("invalid match_mode %q: must be \"line\" or \"body\"", c.MatchMode)
	}
}

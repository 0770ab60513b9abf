package config

import (
	"strings"

	"github.com/arthur-debert/modwiz/pkg/condition"
	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/versions"
)

// Output formats for manifests
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the complete application configuration
type Config struct {
	Game      Game      `koanf:"game" json:"game" yaml:"game"`
	Installer Installer `koanf:"installer" json:"installer" yaml:"installer"`
	Flags     Flags     `koanf:"flags" json:"flags" yaml:"flags"`
	Output    Output    `koanf:"output" json:"output" yaml:"output"`
}

// Game describes the game installs target
type Game struct {
	Version string `koanf:"version" json:"version" yaml:"version"`
	DataDir string `koanf:"data_dir" json:"dataDir" yaml:"dataDir"`
}

// Installer describes the installer version reported to conditions
type Installer struct {
	Version string `koanf:"version" json:"version" yaml:"version"`
}

// Flags holds flag comparison settings
type Flags struct {
	UnsetMatchesEmpty bool `koanf:"unset_matches_empty" json:"unsetMatchesEmpty" yaml:"unsetMatchesEmpty"`
}

// Output holds presentation settings
type Output struct {
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// Validate checks values that cannot be checked by decoding alone
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return errors.Newf(errors.ErrConfigInvalid, "unknown output format %q, use text, json or yaml", c.Output.Format).
			WithDetail("key", "output.format")
	}
	if _, err := c.VersionChecker(); err != nil {
		return err
	}
	return nil
}

// UnsetFlagPolicy maps the flags settings to the evaluator's policy
func (c *Config) UnsetFlagPolicy() condition.UnsetFlagPolicy {
	if c.Flags.UnsetMatchesEmpty {
		return condition.UnsetMatchesEmpty
	}
	return condition.UnsetNeverMatches
}

// VersionChecker builds the version predicates from the configured game
// and installer versions
func (c *Config) VersionChecker() (*versions.Checker, error) {
	return versions.NewChecker(c.Game.Version, c.Installer.Version)
}

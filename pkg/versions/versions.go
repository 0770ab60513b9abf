// Package versions implements condition.VersionChecker on top of
// hashicorp/go-version. A requirement is satisfied when the configured
// version is at least the required one.
package versions

import (
	"strings"

	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/logging"
	goversion "github.com/hashicorp/go-version"
	"github.com/rs/zerolog"
)

// Checker compares requirements against the configured game and installer
// versions. A nil version satisfies every requirement: the caller did not
// tell us what is installed, so we do not block the install.
type Checker struct {
	game      *goversion.Version
	installer *goversion.Version
	logger    zerolog.Logger
}

// NewChecker parses the configured versions; empty strings leave the
// corresponding check unconstrained.
func NewChecker(game, installer string) (*Checker, error) {
	c := &Checker{logger: logging.GetLogger("versions")}

	var err error
	if c.game, err = parseConfigured("game", game); err != nil {
		return nil, err
	}
	if c.installer, err = parseConfigured("installer", installer); err != nil {
		return nil, err
	}
	return c, nil
}

func parseConfigured(which, raw string) (*goversion.Version, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := goversion.NewVersion(raw)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid %s version %q", which, raw).
			WithDetail("version", raw)
	}
	return v, nil
}

// GameVersion implements condition.VersionChecker
func (c *Checker) GameVersion(required string) bool {
	return c.satisfies("game", c.game, required)
}

// InstallerVersion implements condition.VersionChecker
func (c *Checker) InstallerVersion(required string) bool {
	return c.satisfies("installer", c.installer, required)
}

func (c *Checker) satisfies(which string, have *goversion.Version, required string) bool {
	if have == nil {
		return true
	}
	want, err := goversion.NewVersion(strings.TrimSpace(required))
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("kind", which).
			Str("required", required).
			Msg("Unparsable version requirement; treating it as unsatisfied")
		return false
	}
	ok := have.GreaterThanOrEqual(want)
	c.logger.Debug().
		Str("kind", which).
		Str("have", have.String()).
		Str("required", want.String()).
		Bool("satisfied", ok).
		Msg("Checked version requirement")
	return ok
}

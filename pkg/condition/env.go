package condition

import (
	"path/filepath"

	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/rs/zerolog"
)

// VersionChecker answers the two external version predicates a condition
// tree can contain. It is supplied by whoever builds the session.
type VersionChecker interface {
	// GameVersion reports whether the game satisfies the required version
	GameVersion(required string) bool
	// InstallerVersion reports whether the installer satisfies the required version
	InstallerVersion(required string) bool
}

// VersionFuncs adapts two closures to VersionChecker. A nil closure never
// satisfies its requirement.
type VersionFuncs struct {
	Game      func(required string) bool
	Installer func(required string) bool
}

func (v VersionFuncs) GameVersion(required string) bool {
	return v.Game != nil && v.Game(required)
}

func (v VersionFuncs) InstallerVersion(required string) bool {
	return v.Installer != nil && v.Installer(required)
}

// AlwaysSatisfied returns a checker that accepts every version requirement
func AlwaysSatisfied() VersionChecker {
	accept := func(string) bool { return true }
	return VersionFuncs{Game: accept, Installer: accept}
}

// UnsetFlagPolicy decides how a FlagCheck against the empty value treats a
// flag that was never set. The declarative format leaves this undefined.
type UnsetFlagPolicy int

const (
	// UnsetMatchesEmpty treats an unset flag as equal to "" and logs a warning
	UnsetMatchesEmpty UnsetFlagPolicy = iota
	// UnsetNeverMatches treats an unset flag as unequal to every value
	UnsetNeverMatches
)

// Env is the context of one evaluation pass. Existence checks are cached
// for the lifetime of the Env, so a new Env should be built whenever the
// filesystem may have changed.
type Env struct {
	FS         filesystem.FS
	TargetRoot string
	Flags      map[string]string
	Versions   VersionChecker
	UnsetFlags UnsetFlagPolicy
	Logger     *zerolog.Logger

	exists      map[string]bool
	warnedFlags map[string]bool
}

// WithFlags returns a fresh Env sharing everything but the flags and caches
func (e *Env) WithFlags(flags map[string]string) *Env {
	return &Env{
		FS:         e.FS,
		TargetRoot: e.TargetRoot,
		Flags:      flags,
		Versions:   e.Versions,
		UnsetFlags: e.UnsetFlags,
		Logger:     e.Logger,
	}
}

func (e *Env) logger() *zerolog.Logger {
	if e.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return e.Logger
}

// fileExists resolves rel under the target root and stats it once per Env
func (e *Env) fileExists(rel string) bool {
	full := filepath.Join(e.TargetRoot, filepath.FromSlash(rel))
	if e.exists == nil {
		e.exists = make(map[string]bool)
	}
	if cached, ok := e.exists[full]; ok {
		return cached
	}

	found := false
	if e.FS != nil {
		found = filesystem.Exists(e.FS, full)
	}
	e.exists[full] = found
	e.logger().Trace().Str("path", full).Bool("exists", found).Msg("Checked file existence")
	return found
}

func (e *Env) warnUnsetFlag(flag string) {
	if e.warnedFlags == nil {
		e.warnedFlags = make(map[string]bool)
	}
	if e.warnedFlags[flag] {
		return
	}
	e.warnedFlags[flag] = true
	e.logger().Warn().
		Str("flag", flag).
		Msg("Flag is unset and compared against an empty value; treating it as matching")
}

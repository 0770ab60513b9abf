package moduleconfig

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/arthur-debert/modwiz/pkg/installer"
	"github.com/arthur-debert/modwiz/pkg/logging"
)

const (
	// FomodDir is the directory holding the installer files
	FomodDir = "fomod"
	// ConfigFile is the installer description
	ConfigFile = "ModuleConfig.xml"
	// InfoFile is the optional metadata file
	InfoFile = "info.xml"
)

// Module is a decoded module directory
type Module struct {
	Root       string
	ConfigPath string
	InfoPath   string
	Config     *installer.Config
	// Info is nil when the module has no info.xml
	Info *Info
}

// Name returns the module config name, falling back to info.xml and then
// to the directory name
func (m *Module) Name() string {
	switch {
	case m.Config != nil && m.Config.Name != "":
		return m.Config.Name
	case m.Info != nil && m.Info.Name != "":
		return m.Info.Name
	default:
		return filepath.Base(m.Root)
	}
}

// Locate returns the path of fomod/ModuleConfig.xml under modRoot, matching
// both names without regard to case
func Locate(fsys filesystem.FS, modRoot string) (string, error) {
	return locate(fsys, modRoot, ConfigFile)
}

// LocateInfo returns the path of fomod/info.xml under modRoot
func LocateInfo(fsys filesystem.FS, modRoot string) (string, error) {
	return locate(fsys, modRoot, InfoFile)
}

func locate(fsys filesystem.FS, modRoot, name string) (string, error) {
	dir, err := findEntry(fsys, modRoot, FomodDir, true)
	if err != nil {
		return "", err
	}
	return findEntry(fsys, dir, name, false)
}

func findEntry(fsys filesystem.FS, dir, name string, wantDir bool) (string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", dir).
			WithDetail("path", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() == wantDir && strings.EqualFold(entry.Name(), name) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", errors.Newf(errors.ErrFileNotFound, "%s not found in %s", name, dir).
		WithDetail("path", filepath.Join(dir, name))
}

// Load locates and decodes the installer files of the module at modRoot.
// A missing or unreadable info.xml is logged and left out.
func Load(fsys filesystem.FS, modRoot string) (*Module, error) {
	logger := logging.GetLogger("moduleconfig.load")
	done := logging.LogOperationStart(logger, "load module")
	defer done()

	configPath, err := Locate(fsys, modRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "no installer config in %s", modRoot)
	}
	data, err := fsys.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", configPath).
			WithDetail("path", configPath)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "failed to decode %s", configPath).
			WithDetails(errors.GetErrorDetails(err)).
			WithDetail("path", configPath)
	}

	module := &Module{Root: modRoot, ConfigPath: configPath, Config: cfg}

	infoPath, err := LocateInfo(fsys, modRoot)
	if err != nil {
		logger.Debug().Str("module", modRoot).Msg("No info.xml")
		return module, nil
	}
	if data, err = fsys.ReadFile(infoPath); err == nil {
		module.Info, err = ParseInfo(data)
	}
	if err != nil {
		logger.Warn().Err(err).Str("path", infoPath).Msg("Ignoring unreadable info.xml")
		module.Info = nil
		return module, nil
	}
	module.InfoPath = infoPath

	logger.Info().
		Str("module", module.Name()).
		Str("path", configPath).
		Int("steps", len(cfg.Steps)).
		Msg("Module loaded")
	return module, nil
}

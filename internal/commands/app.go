package commands

import (
	"github.com/arthur-debert/modwiz/pkg/config"
	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/arthur-debert/modwiz/pkg/logging"
	"github.com/arthur-debert/modwiz/pkg/moduleconfig"
	"github.com/arthur-debert/modwiz/pkg/paths"
	"github.com/arthur-debert/modwiz/pkg/wizard"
)

// installOptions are the flags shared by plan and run
type installOptions struct {
	target string
	format string
}

// overrides turns the flags that were set into config keys
func (g *globalOptions) overrides(inst *installOptions) map[string]interface{} {
	out := map[string]interface{}{}
	if g.gameVersion != "" {
		out["game.version"] = g.gameVersion
	}
	if g.installerVersion != "" {
		out["installer.version"] = g.installerVersion
	}
	if inst != nil && inst.target != "" {
		out["game.data_dir"] = inst.target
	}
	if inst != nil && inst.format != "" {
		out["output.format"] = inst.format
	}
	return out
}

func (g *globalOptions) loadConfig(inst *installOptions) (*config.Config, error) {
	return config.Load(config.LoadOptions{
		ConfigFile: paths.ExpandHome(g.configFile),
		Overrides:  g.overrides(inst),
	})
}

// openSession loads the mod at modDir and prepares a wizard session for it
func (g *globalOptions) openSession(fsys filesystem.FS, cfg *config.Config, modDir string) (*moduleconfig.Module, *wizard.Session, error) {
	logger := logging.GetLogger("commands")

	module, err := moduleconfig.Load(fsys, paths.ExpandHome(modDir))
	if err != nil {
		return nil, nil, err
	}

	checker, err := cfg.VersionChecker()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Game.DataDir == "" {
		logger.Warn().Msg(MsgNoTarget)
	}

	session, err := wizard.NewSession(module.Config, wizard.Options{
		FS:         fsys,
		TargetRoot: cfg.Game.DataDir,
		ModRoot:    module.Root,
		Versions:   checker,
		UnsetFlags: cfg.UnsetFlagPolicy(),
	})
	if err != nil {
		return nil, nil, err
	}

	if !session.PrerequisitesMet() {
		if !g.force {
			return nil, nil, errors.Newf(errors.ErrPrerequisites, MsgPrerequisites, module.Name(), module.Config.Prerequisites).
				WithDetail("module", module.Name())
		}
		logger.Warn().Str("module", module.Name()).Msg("Prerequisites not met, continuing because of --force")
	}
	return module, session, nil
}

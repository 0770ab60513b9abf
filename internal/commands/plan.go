package commands

import (
	"github.com/arthur-debert/modwiz/pkg/choices"
	"github.com/arthur-debert/modwiz/pkg/display"
	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/arthur-debert/modwiz/pkg/installer"
	"github.com/arthur-debert/modwiz/pkg/logging"
	"github.com/arthur-debert/modwiz/pkg/paths"
	"github.com/arthur-debert/modwiz/pkg/wizard"
	"github.com/spf13/cobra"
)

func newPlanCmd(g *globalOptions) *cobra.Command {
	inst := &installOptions{}
	var choicesFile string
	var strict bool

	cmd := &cobra.Command{
		Use:     "plan <mod-dir>",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("commands.plan")
			fsys := filesystem.NewOS()

			cfg, err := g.loadConfig(inst)
			if err != nil {
				return err
			}

			preset := &choices.Choices{}
			if choicesFile != "" {
				if preset, err = choices.Load(fsys, paths.ExpandHome(choicesFile)); err != nil {
					return err
				}
			}

			module, session, err := g.openSession(fsys, cfg, args[0])
			if err != nil {
				return err
			}

			manifest, err := wizard.Run(session, func(step *installer.InstallStep) (installer.Selection, error) {
				sel, err := preset.SelectionFor(step)
				if err != nil {
					return nil, err
				}
				if err := installer.CheckSelection(step, sel); err != nil {
					if strict {
						return nil, err
					}
					logger.Warn().
						Str("step", step.Name).
						Strs("violations", errors.Items(err, errors.DetailViolations)).
						Msgf(MsgRuleWarning, step.Name)
				}
				return sel, nil
			})
			if err != nil {
				return err
			}

			return display.WriteManifest(cmd.OutOrStdout(), display.Manifest{
				Module: module.Name(),
				Files:  manifest,
			}, cfg.Output.Format, outputMode(cmd))
		},
	}

	cmd.Flags().StringVarP(&choicesFile, "choices", "c", "", MsgFlagChoices)
	cmd.Flags().StringVarP(&inst.target, "target", "t", "", MsgFlagTarget)
	cmd.Flags().StringVarP(&inst.format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	return cmd
}

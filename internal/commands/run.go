package commands

import (
	"fmt"
	"os"

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

func newRunCmd(g *globalOptions) *cobra.Command {
	inst := &installOptions{}
	var saveFile string

	cmd := &cobra.Command{
		Use:     "run <mod-dir>",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !display.IsTerminal(os.Stdin) {
				return errors.New(errors.ErrInvalidState, MsgNonInteractive)
			}

			cfg, err := g.loadConfig(inst)
			if err != nil {
				return err
			}
			module, session, err := g.openSession(filesystem.NewOS(), cfg, args[0])
			if err != nil {
				return err
			}

			mode := outputMode(cmd)
			prompter := &ptermPrompter{out: cmd.OutOrStdout(), mode: mode}
			manifest, made, err := runWizard(session, prompter)
			if err != nil {
				return err
			}

			if saveFile != "" {
				if err := saveChoices(paths.ExpandHome(saveFile), made); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), MsgChoicesSaved, saveFile)
			}

			return display.WriteManifest(cmd.OutOrStdout(), display.Manifest{
				Module: module.Name(),
				Files:  manifest,
			}, cfg.Output.Format, mode)
		},
	}

	cmd.Flags().StringVarP(&inst.target, "target", "t", "", MsgFlagTarget)
	cmd.Flags().StringVarP(&inst.format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().StringVarP(&saveFile, "save", "s", "", MsgFlagSave)
	return cmd
}

// madeChoice is the selection made on one visited step
type madeChoice struct {
	step *installer.InstallStep
	sel  installer.Selection
}

// runWizard shows every visible step through p until the user finishes or
// cancels. It returns the manifest and the choices of the steps on the
// final path through the wizard.
func runWizard(session *wizard.Session, p stepPrompter) ([]installer.FilePair, []madeChoice, error) {
	logger := logging.GetLogger("commands.run")

	step, err := session.Advance(nil)
	if err != nil {
		return nil, nil, err
	}
	if step == nil {
		logger.Info().Msg(MsgNoStepsInstalling)
		manifest, err := session.Finalize(nil)
		return manifest, nil, err
	}

	var path []madeChoice
	prefill := installer.DefaultSelection(step)
	for {
		p.ShowStep(len(path)+1, step)

		sel := prefill.Clone()
		for i, group := range step.Groups {
			if sel[i], err = p.ChooseGroup(group, sel[i]); err != nil {
				return nil, nil, err
			}
		}
		if err := installer.CheckSelection(step, sel); err != nil {
			p.Warn(err)
			prefill = sel
			continue
		}

		canAdvance, err := session.CanAdvance(sel)
		if err != nil {
			return nil, nil, err
		}
		act, err := p.ChooseAction(canAdvance, session.HasPreviousStep())
		if err != nil {
			return nil, nil, err
		}

		switch act {
		case actionCancel:
			return nil, nil, errors.New(errors.ErrCancelled, MsgCancelled).WithDetail("step", step.Name)

		case actionBack:
			popped, previous, err := session.Retreat()
			if err != nil {
				return nil, nil, err
			}
			if previous == nil {
				prefill = sel
				continue
			}
			path = path[:len(path)-1]
			step, prefill = previous, popped

		case actionNext:
			path = append(path, madeChoice{step: step, sel: sel})
			if !canAdvance {
				manifest, err := session.Finalize(sel)
				return manifest, path, err
			}
			if step, err = session.Advance(sel); err != nil {
				return nil, nil, err
			}
			prefill = installer.DefaultSelection(step)
		}
	}
}

func saveChoices(path string, made []madeChoice) error {
	format, err := choices.FormatFromPath(path)
	if err != nil {
		return err
	}
	out := &choices.Choices{}
	for _, m := range made {
		if err := out.Record(m.step, m.sel); err != nil {
			return err
		}
	}
	data, err := out.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", path)
	}
	return nil
}

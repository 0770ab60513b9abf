package commands

import (
	"fmt"
	"io"

	"github.com/arthur-debert/modwiz/pkg/display"
	"github.com/arthur-debert/modwiz/pkg/installer"
	"github.com/pterm/pterm"
)

type action int

const (
	actionNext action = iota
	actionBack
	actionCancel
)

// stepPrompter asks the user for the choices of one step
type stepPrompter interface {
	ShowStep(number int, step *installer.InstallStep)
	ChooseGroup(group *installer.PluginGroup, checked []bool) ([]bool, error)
	ChooseAction(canAdvance, hasPrevious bool) (action, error)
	Warn(err error)
}

// ptermPrompter prompts with pterm's interactive selects
type ptermPrompter struct {
	out  io.Writer
	mode display.Mode
}

func (p *ptermPrompter) ShowStep(number int, step *installer.InstallStep) {
	pterm.DefaultSection.Println(fmt.Sprintf(MsgStepTitle, number, step.Name))
}

func (p *ptermPrompter) ChooseGroup(group *installer.PluginGroup, checked []bool) ([]bool, error) {
	labels := make([]string, len(group.Plugins))
	for i, plugin := range group.Plugins {
		labels[i] = fmt.Sprintf("%d. %s", i+1, display.PluginLabel(plugin))
	}
	title := fmt.Sprintf("%s (%s)", group.Name, display.RuleLabel(group.Rule))

	switch group.Rule {
	case installer.SelectAll:
		fmt.Fprintf(p.out, MsgAllSelected+"\n", group.Name)
		out := make([]bool, len(group.Plugins))
		for i := range out {
			out[i] = true
		}
		return out, nil

	case installer.SelectExactlyOne, installer.SelectAtMostOne:
		options := labels
		if group.Rule == installer.SelectAtMostOne {
			options = append([]string{MsgNoneOption}, labels...)
		}
		prompt := pterm.DefaultInteractiveSelect.WithOptions(options)
		for i, c := range checked {
			if c {
				prompt = prompt.WithDefaultOption(labels[i])
				break
			}
		}
		picked, err := prompt.Show(title)
		if err != nil {
			return nil, err
		}
		return checkLabels(labels, picked), nil

	default:
		var defaults []string
		for i, c := range checked {
			if c {
				defaults = append(defaults, labels[i])
			}
		}
		picked, err := pterm.DefaultInteractiveMultiselect.
			WithOptions(labels).
			WithDefaultOptions(defaults).
			Show(title)
		if err != nil {
			return nil, err
		}
		return checkLabels(labels, picked...), nil
	}
}

func (p *ptermPrompter) ChooseAction(canAdvance, hasPrevious bool) (action, error) {
	forward := MsgActionFinish
	if canAdvance {
		forward = MsgActionNext
	}
	options := []string{forward}
	if hasPrevious {
		options = append(options, MsgActionBack)
	}
	options = append(options, MsgActionCancel)

	picked, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show()
	if err != nil {
		return actionCancel, err
	}
	switch picked {
	case MsgActionBack:
		return actionBack, nil
	case MsgActionCancel:
		return actionCancel, nil
	default:
		return actionNext, nil
	}
}

func (p *ptermPrompter) Warn(err error) {
	pterm.Warning.Println(display.FormatError(err, p.mode))
}

// checkLabels marks the positions of labels that were picked
func checkLabels(labels []string, picked ...string) []bool {
	out := make([]bool, len(labels))
	for _, name := range picked {
		for i, label := range labels {
			if label == name {
				out[i] = true
			}
		}
	}
	return out
}

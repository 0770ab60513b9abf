package installer

import (
	"fmt"

	"github.com/arthur-debert/modwiz/pkg/errors"
)

// Selection is a check matrix indexed [group][plugin] for one step
type Selection [][]bool

// Clone returns a deep copy of the selection
func (s Selection) Clone() Selection {
	if s == nil {
		return nil
	}
	clone := make(Selection, len(s))
	for i, group := range s {
		clone[i] = append([]bool(nil), group...)
	}
	return clone
}

// Empty reports whether the selection has no groups
func (s Selection) Empty() bool {
	return len(s) == 0
}

// EmptySelection returns an all-unchecked selection shaped like step
func EmptySelection(step *InstallStep) Selection {
	sel := make(Selection, len(step.Groups))
	for i, group := range step.Groups {
		sel[i] = make([]bool, len(group.Plugins))
	}
	return sel
}

// CheckShape verifies that sel matches the step's group and plugin counts
func CheckShape(step *InstallStep, sel Selection) error {
	if len(sel) != len(step.Groups) {
		return errors.SelectionShape(step.Name,
			"selection has %d groups but step %q has %d", len(sel), step.Name, len(step.Groups)).
			WithDetail("expectedGroups", len(step.Groups)).
			WithDetail("actualGroups", len(sel))
	}
	for i, group := range step.Groups {
		if len(sel[i]) != len(group.Plugins) {
			return errors.SelectionShape(step.Name,
				"selection for group %q has %d entries but the group has %d plugins",
				group.Name, len(sel[i]), len(group.Plugins)).
				WithDetail("group", group.Name).
				WithDetail("expectedPlugins", len(group.Plugins)).
				WithDetail("actualPlugins", len(sel[i]))
		}
	}
	return nil
}

// CheckSelection validates the group rules and plugin types of a selection.
// The wizard never calls it; it is meant for the UI before advancing.
func CheckSelection(step *InstallStep, sel Selection) error {
	if err := CheckShape(step, sel); err != nil {
		return err
	}

	var violations []string
	for i, group := range step.Groups {
		checked := 0
		for j, plugin := range group.Plugins {
			if sel[i][j] {
				checked++
				if plugin.CurrentType == TypeNotUsable {
					violations = append(violations, fmt.Sprintf("%q: plugin %q cannot be selected", group.Name, plugin.Name))
				}
			} else if plugin.CurrentType == TypeRequired {
				violations = append(violations, fmt.Sprintf("%q: plugin %q is required", group.Name, plugin.Name))
			}
		}

		switch group.Rule {
		case SelectExactlyOne:
			if checked != 1 {
				violations = append(violations, fmt.Sprintf("%q: select exactly one plugin (%d selected)", group.Name, checked))
			}
		case SelectAtLeastOne:
			if checked < 1 {
				violations = append(violations, fmt.Sprintf("%q: select at least one plugin", group.Name))
			}
		case SelectAtMostOne:
			if checked > 1 {
				violations = append(violations, fmt.Sprintf("%q: select at most one plugin (%d selected)", group.Name, checked))
			}
		case SelectAll:
			if checked != len(group.Plugins) {
				violations = append(violations, fmt.Sprintf("%q: all plugins must be selected", group.Name))
			}
		}
	}

	return errors.SelectionRule(step.Name, violations)
}

// DefaultSelection pre-checks what a UI would check when first showing the
// step: required and recommended plugins, every plugin of an All group, and
// the first usable plugin of a group that needs at least one choice.
func DefaultSelection(step *InstallStep) Selection {
	sel := EmptySelection(step)
	for i, group := range step.Groups {
		for j, plugin := range group.Plugins {
			switch {
			case group.Rule == SelectAll:
				sel[i][j] = true
			case plugin.CurrentType == TypeRequired || plugin.CurrentType == TypeRecommended:
				sel[i][j] = true
			}
		}

		if group.Rule == SelectExactlyOne || group.Rule == SelectAtMostOne {
			keepFirstChecked(sel[i])
		}
		if (group.Rule == SelectExactlyOne || group.Rule == SelectAtLeastOne) && !anyChecked(sel[i]) {
			for j, plugin := range group.Plugins {
				if plugin.Usable() {
					sel[i][j] = true
					break
				}
			}
		}
	}
	return sel
}

func keepFirstChecked(checks []bool) {
	found := false
	for j := range checks {
		if checks[j] && found {
			checks[j] = false
		}
		if checks[j] {
			found = true
		}
	}
}

func anyChecked(checks []bool) bool {
	for _, c := range checks {
		if c {
			return true
		}
	}
	return false
}

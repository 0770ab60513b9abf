package display

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/modwiz/pkg/installer"
)

var ruleLabels = map[installer.SelectionRule]string{
	installer.SelectAtLeastOne: "select at least one",
	installer.SelectAtMostOne:  "select at most one",
	installer.SelectExactlyOne: "select exactly one",
	installer.SelectAll:        "all selected",
	installer.SelectAny:        "select any",
}

// RuleLabel describes a selection rule in words
func RuleLabel(rule installer.SelectionRule) string {
	if label, ok := ruleLabels[rule]; ok {
		return label
	}
	return string(rule)
}

// StepText renders a step with every group and plugin. When sel is not
// empty it marks the checked plugins.
func StepText(step *installer.InstallStep, sel installer.Selection, mode Mode) string {
	var out strings.Builder
	out.WriteString(paint(mode, TitleStyle, step.Name) + "\n")

	for i, group := range step.Groups {
		out.WriteString(fmt.Sprintf("\n  %s %s\n",
			paint(mode, SubtitleStyle, group.Name),
			paint(mode, MutedStyle, "("+RuleLabel(group.Rule)+")")))

		for j, plugin := range group.Plugins {
			mark := "   "
			if !sel.Empty() && i < len(sel) && j < len(sel[i]) {
				mark = "[ ]"
				if sel[i][j] {
					mark = "[x]"
				}
			}
			out.WriteString(fmt.Sprintf("    %s %s%s\n", mark, plugin.Name, typeLabel(plugin, mode)))
			if plugin.Description != "" {
				out.WriteString("        " + paint(mode, MutedStyle, firstLine(plugin.Description)) + "\n")
			}
		}
	}
	return out.String()
}

// PluginLabel is the one-line form of a plugin used in prompts
func PluginLabel(plugin *installer.Plugin) string {
	return plugin.Name + typeLabel(plugin, ModeText)
}

func typeLabel(plugin *installer.Plugin, mode Mode) string {
	switch plugin.CurrentType {
	case installer.TypeRequired:
		return " " + paint(mode, WarningStyle, "(required)")
	case installer.TypeRecommended:
		return " " + paint(mode, SuccessStyle, "(recommended)")
	case installer.TypeNotUsable:
		return " " + paint(mode, ErrorStyle, "(not usable)")
	case installer.TypeCouldBeUsable:
		return " " + paint(mode, MutedStyle, "(could be usable)")
	default:
		return ""
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i]) + " ..."
	}
	return s
}

package display

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/modwiz/pkg/installer"
	"github.com/arthur-debert/modwiz/pkg/moduleconfig"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Overview describes a module as markdown: its metadata, prerequisites,
// steps with their visibility, groups and plugins, and the files installed
// regardless of choices
func Overview(m *moduleconfig.Module) string {
	var md strings.Builder
	cfg := m.Config

	fmt.Fprintf(&md, "# %s\n\n", m.Name())
	if m.Info != nil {
		var meta []string
		if m.Info.Author != "" {
			meta = append(meta, "by "+m.Info.Author)
		}
		if m.Info.Version != "" {
			meta = append(meta, "version "+m.Info.Version)
		}
		if m.Info.Website != "" {
			meta = append(meta, m.Info.Website)
		}
		if len(meta) > 0 {
			fmt.Fprintf(&md, "*%s*\n\n", strings.Join(meta, ", "))
		}
		if m.Info.Description != "" {
			fmt.Fprintf(&md, "%s\n\n", strings.TrimSpace(m.Info.Description))
		}
		if len(m.Info.Groups) > 0 {
			fmt.Fprintf(&md, "Categories: %s\n\n", strings.Join(m.Info.Groups, ", "))
		}
	}

	if cfg.Prerequisites != nil {
		fmt.Fprintf(&md, "**Requires:** `%s`\n\n", cfg.Prerequisites)
	}

	if len(cfg.Steps) == 0 {
		md.WriteString("No install steps: the required files are installed as is.\n\n")
	} else {
		md.WriteString("## Steps\n\n")
	}
	for i, step := range cfg.Steps {
		fmt.Fprintf(&md, "%d. **%s**", i+1, step.Name)
		if step.Visibility.String() != "always" {
			fmt.Fprintf(&md, " (shown when `%s`)", step.Visibility)
		}
		md.WriteString("\n")
		for _, group := range step.Groups {
			names := make([]string, len(group.Plugins))
			for j, plugin := range group.Plugins {
				names[j] = plugin.Name
			}
			fmt.Fprintf(&md, "   - %s, %s: %s\n", group.Name, RuleLabel(group.Rule), strings.Join(names, ", "))
		}
	}
	if len(cfg.Steps) > 0 {
		md.WriteString("\n")
	}

	writeFileList(&md, "Required files", cfg.RequiredFiles)

	if len(cfg.ConditionalPatterns) > 0 {
		md.WriteString("## Conditional installs\n\n")
		for _, cp := range cfg.ConditionalPatterns {
			fmt.Fprintf(&md, "- when `%s`: %d file(s)\n", cp.Condition, len(cp.Files))
		}
		md.WriteString("\n")
	}

	return md.String()
}

func writeFileList(md *strings.Builder, title string, files []installer.FileEntry) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(md, "## %s\n\n", title)
	for _, f := range files {
		fmt.Fprintf(md, "- `%s` to `%s`\n", f.Source, destinationLabel(f.Destination))
	}
	md.WriteString("\n")
}

// RenderMarkdown renders md for the terminal. In text mode, or when the
// renderer fails, the markdown is returned unchanged.
func RenderMarkdown(md string, mode Mode, width int) string {
	if mode != ModeTerminal {
		return md
	}

	style := "light"
	if termenv.HasDarkBackground() {
		style = "dark"
	}
	options := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}

// Package choices reads and writes preset wizard selections, so that a
// module can be installed without prompting. A choices file names the
// plugins to check per step and group:
//
//	[[step]]
//	name = "Textures"
//	  [[step.group]]
//	  name = "Resolution"
//	  plugins = ["2K"]
//
// The same structure is accepted as YAML.
package choices

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/arthur-debert/modwiz/pkg/installer"
	"github.com/arthur-debert/modwiz/pkg/logging"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a choices file
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "cannot tell the format of %s, use .toml, .yaml or .yml", path).
			WithDetail("path", path)
	}
}

// Choices is the content of a choices file
type Choices struct {
	Steps []Step `toml:"step" yaml:"step"`
}

// Step lists the groups chosen on one install step
type Step struct {
	Name   string  `toml:"name" yaml:"name"`
	Groups []Group `toml:"group" yaml:"group"`
}

// Group lists the plugins checked in one group
type Group struct {
	Name    string   `toml:"name" yaml:"name"`
	Plugins []string `toml:"plugins" yaml:"plugins"`
}

// Parse decodes data in the given format
func Parse(data []byte, format Format) (*Choices, error) {
	var c Choices
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &c)
	case FormatYAML:
		err = yaml.Unmarshal(data, &c)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown choices format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s choices", format)
	}
	return &c, nil
}

// Load reads a choices file, picking the format from its extension
func Load(fsys filesystem.FS, path string) (*Choices, error) {
	logger := logging.GetLogger("choices").With().Str("path", path).Logger()

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read choices file %s", path).
			WithDetail("path", path)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("steps", len(c.Steps)).Msg("Choices loaded")
	return c, nil
}

// Marshal encodes the choices in the given format
func (c *Choices) Marshal(format Format) ([]byte, error) {
	var data []byte
	var err error
	switch format {
	case FormatTOML:
		data, err = toml.Marshal(c)
	case FormatYAML:
		data, err = yaml.Marshal(c)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown choices format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to encode %s choices", format)
	}
	return data, nil
}

// Lookup returns the choices for the named step
func (c *Choices) Lookup(stepName string) (Step, bool) {
	for _, s := range c.Steps {
		if s.Name == stepName {
			return s, true
		}
	}
	return Step{}, false
}

// SelectionFor builds the selection for step. A step missing from the
// choices gets installer.DefaultSelection, and so does every group the
// step choice leaves out. Naming a group or plugin the step does not have
// is an INVALID_INPUT error.
func (c *Choices) SelectionFor(step *installer.InstallStep) (installer.Selection, error) {
	sel := installer.DefaultSelection(step)
	choice, ok := c.Lookup(step.Name)
	if !ok {
		return sel, nil
	}

	for _, g := range choice.Groups {
		gi := groupIndex(step, g.Name)
		if gi < 0 {
			return nil, errors.Newf(errors.ErrInvalidInput, "step %q has no group %q", step.Name, g.Name).
				WithDetail("step", step.Name).
				WithDetail("group", g.Name)
		}
		row := make([]bool, len(step.Groups[gi].Plugins))
		for _, name := range g.Plugins {
			pi := pluginIndex(step.Groups[gi], name)
			if pi < 0 {
				return nil, errors.Newf(errors.ErrInvalidInput, "group %q of step %q has no plugin %q", g.Name, step.Name, name).
					WithDetail("step", step.Name).
					WithDetail("group", g.Name).
					WithDetail("plugin", name)
			}
			row[pi] = true
		}
		sel[gi] = row
	}
	return sel, nil
}

// Record appends the checked plugins of sel as the choice for step,
// replacing an earlier choice for the same step
func (c *Choices) Record(step *installer.InstallStep, sel installer.Selection) error {
	if sel.Empty() {
		sel = installer.EmptySelection(step)
	}
	if err := installer.CheckShape(step, sel); err != nil {
		return err
	}

	choice := Step{Name: step.Name}
	for i, group := range step.Groups {
		g := Group{Name: group.Name, Plugins: []string{}}
		for j, plugin := range group.Plugins {
			if sel[i][j] {
				g.Plugins = append(g.Plugins, plugin.Name)
			}
		}
		choice.Groups = append(choice.Groups, g)
	}

	for i := range c.Steps {
		if c.Steps[i].Name == step.Name {
			c.Steps[i] = choice
			return nil
		}
	}
	c.Steps = append(c.Steps, choice)
	return nil
}

func groupIndex(step *installer.InstallStep, name string) int {
	for i, g := range step.Groups {
		if g.Name == name {
			return i
		}
	}
	return -1
}

func pluginIndex(group *installer.PluginGroup, name string) int {
	for i, p := range group.Plugins {
		if p.Name == name {
			return i
		}
	}
	return -1
}

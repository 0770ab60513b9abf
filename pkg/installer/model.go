package installer

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/modwiz/pkg/condition"
	"github.com/arthur-debert/modwiz/pkg/errors"
)

// TypePattern assigns Type to a plugin when Condition holds
type TypePattern struct {
	Condition *condition.Node
	Type      PluginType
}

// Flag is a named value set when a plugin is selected
type Flag struct {
	Name  string
	Value string
}

// Plugin is one selectable option of a group
type Plugin struct {
	Name        string
	Description string
	Image       string

	// CurrentType is recomputed by ResolveType each time the owning step
	// is shown; DefaultType is the fallback when no pattern matches.
	CurrentType  PluginType
	DefaultType  PluginType
	TypePatterns []TypePattern

	Flags []Flag
	Files []FileEntry
}

// ResolveType sets CurrentType from the first matching type pattern, or
// DefaultType when none matches.
func (p *Plugin) ResolveType(env *condition.Env) PluginType {
	p.CurrentType = p.DefaultType
	for _, pattern := range p.TypePatterns {
		if pattern.Condition.Evaluate(env) {
			p.CurrentType = pattern.Type
			break
		}
	}
	return p.CurrentType
}

// Usable reports whether the plugin may be selected in its current type
func (p *Plugin) Usable() bool {
	return p.CurrentType != TypeNotUsable
}

// PluginGroup is a set of plugins sharing a selection rule
type PluginGroup struct {
	Name    string
	Rule    SelectionRule
	Plugins []*Plugin
}

// InstallStep is one page of the wizard
type InstallStep struct {
	Name       string
	Visibility *condition.Node
	Groups     []*PluginGroup
}

// ResolveTypes resolves the type of every plugin of the step
func (s *InstallStep) ResolveTypes(env *condition.Env) {
	for _, group := range s.Groups {
		for _, plugin := range group.Plugins {
			plugin.ResolveType(env)
		}
	}
}

// ConditionalPattern installs Files at the end of the wizard when
// Condition holds
type ConditionalPattern struct {
	Condition *condition.Node
	Files     []FileEntry
}

// Config is the decoded installer description of one module
type Config struct {
	Name  string
	Image string

	// Prerequisites must hold for the module to be installable at all; nil
	// means there are none.
	Prerequisites *condition.Node

	RequiredFiles       []FileEntry
	Steps               []*InstallStep
	ConditionalPatterns []ConditionalPattern
}

// Clone deep-copies the steps, groups and plugins so that a session can
// update plugin types without touching other sessions. Conditions are
// immutable and shared.
func (c *Config) Clone() *Config {
	clone := *c
	clone.RequiredFiles = append([]FileEntry(nil), c.RequiredFiles...)
	clone.ConditionalPatterns = make([]ConditionalPattern, len(c.ConditionalPatterns))
	for i, cp := range c.ConditionalPatterns {
		clone.ConditionalPatterns[i] = ConditionalPattern{
			Condition: cp.Condition,
			Files:     append([]FileEntry(nil), cp.Files...),
		}
	}

	clone.Steps = make([]*InstallStep, len(c.Steps))
	for i, step := range c.Steps {
		if step == nil {
			continue
		}
		stepCopy := &InstallStep{
			Name:       step.Name,
			Visibility: step.Visibility,
			Groups:     make([]*PluginGroup, len(step.Groups)),
		}
		for j, group := range step.Groups {
			if group == nil {
				continue
			}
			groupCopy := &PluginGroup{
				Name:    group.Name,
				Rule:    group.Rule,
				Plugins: make([]*Plugin, len(group.Plugins)),
			}
			for k, plugin := range group.Plugins {
				if plugin == nil {
					continue
				}
				pluginCopy := *plugin
				pluginCopy.TypePatterns = append([]TypePattern(nil), plugin.TypePatterns...)
				pluginCopy.Flags = append([]Flag(nil), plugin.Flags...)
				pluginCopy.Files = append([]FileEntry(nil), plugin.Files...)
				groupCopy.Plugins[k] = &pluginCopy
			}
			stepCopy.Groups[j] = groupCopy
		}
		clone.Steps[i] = stepCopy
	}
	return &clone
}

// Validate reports every structural problem of the config as a single
// CONFIG_INVALID error.
func (c *Config) Validate() error {
	v := &validator{}

	if c.Prerequisites != nil {
		v.condition("prerequisites", c.Prerequisites)
	}
	v.files("required files", c.RequiredFiles)

	for i, step := range c.Steps {
		at := fmt.Sprintf("step[%d]", i)
		if step == nil {
			v.add(at + ": nil step")
			continue
		}
		at = fmt.Sprintf("step %q", step.Name)
		if step.Visibility == nil {
			v.add(at + ": missing visibility condition")
		} else {
			v.condition(at+" visibility", step.Visibility)
		}
		for j, group := range step.Groups {
			if group == nil {
				v.add(fmt.Sprintf("%s group[%d]: nil group", at, j))
				continue
			}
			groupAt := fmt.Sprintf("%s group %q", at, group.Name)
			for k, plugin := range group.Plugins {
				if plugin == nil {
					v.add(fmt.Sprintf("%s plugin[%d]: nil plugin", groupAt, k))
					continue
				}
				v.plugin(fmt.Sprintf("%s plugin %q", groupAt, plugin.Name), plugin)
			}
		}
	}

	for i, cp := range c.ConditionalPatterns {
		at := fmt.Sprintf("conditional pattern[%d]", i)
		if cp.Condition == nil {
			v.add(at + ": missing condition")
		} else {
			v.condition(at, cp.Condition)
		}
		v.files(at, cp.Files)
	}

	return v.err()
}

type validator struct {
	problems []string
}

func (v *validator) add(problem string) {
	v.problems = append(v.problems, problem)
}

func (v *validator) condition(at string, node *condition.Node) {
	err := node.Validate()
	if err == nil {
		return
	}
	for _, problem := range errors.Items(err, errors.DetailProblems) {
		v.add(fmt.Sprintf("%s: %s", at, problem))
	}
}

func (v *validator) files(at string, files []FileEntry) {
	for i, f := range files {
		if strings.TrimSpace(f.Source) == "" {
			v.add(fmt.Sprintf("%s file[%d]: empty source", at, i))
		}
	}
}

func (v *validator) plugin(at string, p *Plugin) {
	if !p.DefaultType.Valid() {
		v.add(fmt.Sprintf("%s: invalid default type %q", at, p.DefaultType))
	}
	for i, pattern := range p.TypePatterns {
		patternAt := fmt.Sprintf("%s type pattern[%d]", at, i)
		if pattern.Condition == nil {
			v.add(patternAt + ": missing condition")
		} else {
			v.condition(patternAt, pattern.Condition)
		}
		if !pattern.Type.Valid() {
			v.add(fmt.Sprintf("%s: invalid type %q", patternAt, pattern.Type))
		}
	}
	for i, flag := range p.Flags {
		if flag.Name == "" {
			v.add(fmt.Sprintf("%s flag[%d]: empty name", at, i))
		}
	}
	v.files(at, p.Files)
}

func (v *validator) err() error {
	return errors.ConfigInvalid("invalid installer config", v.problems)
}

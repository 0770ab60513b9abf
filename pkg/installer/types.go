package installer

import (
	"strings"

	"github.com/arthur-debert/modwiz/pkg/errors"
)

// PluginType describes how a plugin should be offered to the user
type PluginType string

const (
	TypeRequired      PluginType = "Required"
	TypeOptional      PluginType = "Optional"
	TypeRecommended   PluginType = "Recommended"
	TypeNotUsable     PluginType = "NotUsable"
	TypeCouldBeUsable PluginType = "CouldBeUsable"
)

var pluginTypes = []PluginType{TypeRequired, TypeOptional, TypeRecommended, TypeNotUsable, TypeCouldBeUsable}

// Valid reports whether t is one of the known plugin types
func (t PluginType) Valid() bool {
	for _, known := range pluginTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParsePluginType maps a type name from the declarative format, ignoring case
func ParsePluginType(name string) (PluginType, error) {
	for _, known := range pluginTypes {
		if strings.EqualFold(strings.TrimSpace(name), string(known)) {
			return known, nil
		}
	}
	return "", errors.Newf(errors.ErrConfigInvalid, "unknown plugin type %q", name).
		WithDetail("type", name)
}

// SelectionRule is the advisory cardinality of a plugin group
type SelectionRule string

const (
	SelectAtLeastOne SelectionRule = "SelectAtLeastOne"
	SelectAtMostOne  SelectionRule = "SelectAtMostOne"
	SelectExactlyOne SelectionRule = "SelectExactlyOne"
	SelectAll        SelectionRule = "SelectAll"
	SelectAny        SelectionRule = "SelectAny"
)

// ParseSelectionRule maps a group type name; anything unrecognised is SelectAny
func ParseSelectionRule(name string) SelectionRule {
	switch strings.TrimSpace(name) {
	case string(SelectAtLeastOne):
		return SelectAtLeastOne
	case string(SelectAtMostOne):
		return SelectAtMostOne
	case string(SelectExactlyOne):
		return SelectExactlyOne
	case string(SelectAll):
		return SelectAll
	default:
		return SelectAny
	}
}

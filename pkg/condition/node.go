package condition

import (
	"fmt"
	"path"
	"strings"

	"github.com/arthur-debert/modwiz/pkg/errors"
)

// Kind identifies the variant of a Node
type Kind int

const (
	KindAlways Kind = iota
	KindAnd
	KindOr
	KindFile
	KindFlag
	KindGameVersion
	KindInstallerVersion
)

func (k Kind) String() string {
	switch k {
	case KindAlways:
		return "always"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindFile:
		return "file"
	case KindFlag:
		return "flag"
	case KindGameVersion:
		return "game-version"
	case KindInstallerVersion:
		return "installer-version"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FileState is the state a FileCheck requires
type FileState int

const (
	// FilePresent requires the file to exist ("Active" in the XML format)
	FilePresent FileState = iota
	// FileAbsent requires the file not to exist
	FileAbsent
)

func (s FileState) String() string {
	if s == FilePresent {
		return "present"
	}
	return "absent"
}

// Node is one node of a condition tree. Nodes are immutable once built;
// only And and Or nodes have children.
type Node struct {
	kind     Kind
	children []*Node

	path  string
	state FileState

	flag  string
	value string

	version string
}

// Always returns a condition that is always true. Used where the source
// format omits a dependency block.
func Always() *Node {
	return &Node{kind: KindAlways}
}

// And returns a node that holds when every child holds. An empty And holds.
func And(children ...*Node) *Node {
	return &Node{kind: KindAnd, children: append([]*Node(nil), children...)}
}

// Or returns a node that holds when any child holds. An empty Or holds.
//
// FileCheck children on the same path are collapsed into one: a check
// requiring the file to be present wins over checks requiring it absent,
// otherwise the first occurrence is kept. The surviving check takes the
// position of the first occurrence. No other leaf kind is collapsed.
func Or(children ...*Node) *Node {
	kept := make([]*Node, 0, len(children))
	byPath := make(map[string]int)

	for _, child := range children {
		if child == nil || child.kind != KindFile {
			kept = append(kept, child)
			continue
		}
		idx, seen := byPath[child.path]
		if !seen {
			byPath[child.path] = len(kept)
			kept = append(kept, child)
			continue
		}
		if kept[idx].state != FilePresent && child.state == FilePresent {
			kept[idx] = child
		}
	}

	return &Node{kind: KindOr, children: kept}
}

// FileCheck returns a leaf testing the existence of path relative to the
// target root. Backslash separators are normalized to forward slashes.
func FileCheck(filePath string, state FileState) *Node {
	return &Node{kind: KindFile, path: NormalizePath(filePath), state: state}
}

// FlagCheck returns a leaf testing that flag has the given value
func FlagCheck(flag, value string) *Node {
	return &Node{kind: KindFlag, flag: flag, value: value}
}

// GameVersion returns a leaf delegating to VersionChecker.GameVersion
func GameVersion(version string) *Node {
	return &Node{kind: KindGameVersion, version: version}
}

// InstallerVersion returns a leaf delegating to VersionChecker.InstallerVersion
func InstallerVersion(version string) *Node {
	return &Node{kind: KindInstallerVersion, version: version}
}

// NormalizePath converts a path from the declarative format (which may use
// backslashes) to a clean slash-separated relative path.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

func (n *Node) Kind() Kind { return n.kind }

// Children returns a copy of the child list; nil for leaves
func (n *Node) Children() []*Node {
	if n.children == nil {
		return nil
	}
	return append([]*Node(nil), n.children...)
}

func (n *Node) Path() string { return n.path }

func (n *Node) State() FileState { return n.state }

// Flag returns the flag name and expected value of a FlagCheck
func (n *Node) Flag() (string, string) { return n.flag, n.value }

func (n *Node) Version() string { return n.version }

// Validate reports structural problems in the tree: nil children, file
// checks without a path and flag checks without a name.
func (n *Node) Validate() error {
	var problems []string
	n.collectProblems("", &problems)
	return errors.ConfigInvalid("invalid condition", problems)
}

func (n *Node) collectProblems(at string, problems *[]string) {
	where := at
	if where == "" {
		where = "root"
	}
	switch n.kind {
	case KindAnd, KindOr:
		for i, child := range n.children {
			childAt := fmt.Sprintf("%s.%s[%d]", where, n.kind, i)
			if child == nil {
				*problems = append(*problems, childAt+": nil condition")
				continue
			}
			child.collectProblems(childAt, problems)
		}
	case KindFile:
		if n.path == "" {
			*problems = append(*problems, where+": file check without a path")
		}
	case KindFlag:
		if n.flag == "" {
			*problems = append(*problems, where+": flag check without a flag name")
		}
	case KindGameVersion, KindInstallerVersion:
		if n.version == "" {
			*problems = append(*problems, where+": version check without a version")
		}
	}
}

// String renders the condition as a readable expression
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case KindAlways:
		return "always"
	case KindAnd, KindOr:
		if len(n.children) == 0 {
			return "always"
		}
		op := " AND "
		if n.kind == KindOr {
			op = " OR "
		}
		parts := make([]string, len(n.children))
		for i, child := range n.children {
			parts[i] = child.String()
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return "(" + strings.Join(parts, op) + ")"
	case KindFile:
		return fmt.Sprintf("file %q is %s", n.path, n.state)
	case KindFlag:
		return fmt.Sprintf("flag %q == %q", n.flag, n.value)
	case KindGameVersion:
		return fmt.Sprintf("game version >= %s", n.version)
	case KindInstallerVersion:
		return fmt.Sprintf("installer version >= %s", n.version)
	default:
		return n.kind.String()
	}
}

package moduleconfig

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/modwiz/pkg/condition"
	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/installer"
	"github.com/arthur-debert/modwiz/pkg/logging"
	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

// Parse decodes a ModuleConfig.xml document. Malformed XML is a
// CONFIG_PARSE error; every structural problem found is reported in a
// single CONFIG_INVALID error with the list under the "problems" detail.
func Parse(data []byte) (*installer.Config, error) {
	doc, err := readDocument(data)
	if err != nil {
		return nil, err
	}

	root := doc.Root()
	if root.Tag != "config" {
		return nil, errors.Newf(errors.ErrConfigInvalid, "expected root element <config>, found <%s>", root.Tag).
			WithDetail("root", root.Tag)
	}

	p := &parser{logger: logging.GetLogger("moduleconfig.parse")}
	cfg := p.config(root)
	if err := errors.ConfigInvalid("invalid module config", p.problems); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type parser struct {
	logger   zerolog.Logger
	problems []string
}

func (p *parser) add(at, format string, args ...interface{}) {
	p.problems = append(p.problems, at+": "+fmt.Sprintf(format, args...))
}

func (p *parser) config(root *etree.Element) *installer.Config {
	cfg := &installer.Config{
		Name: strings.TrimSpace(textOf(root.SelectElement("moduleName"))),
	}
	if img := root.SelectElement("moduleImage"); img != nil {
		cfg.Image = normalizeSource(img.SelectAttrValue("path", ""))
	}
	if deps := root.SelectElement("moduleDependencies"); deps != nil {
		cfg.Prerequisites = p.composite("moduleDependencies", deps)
	}
	if req := root.SelectElement("requiredInstallFiles"); req != nil {
		cfg.RequiredFiles = p.files("requiredInstallFiles", req)
	}

	if steps := root.SelectElement("installSteps"); steps != nil {
		elems := p.ordered("installSteps", steps, steps.SelectElements("installStep"))
		for i, el := range elems {
			cfg.Steps = append(cfg.Steps, p.step(fmt.Sprintf("installStep[%d]", i), el))
		}
	}

	if cond := root.SelectElement("conditionalFileInstalls"); cond != nil {
		if patterns := cond.SelectElement("patterns"); patterns != nil {
			for i, el := range patterns.SelectElements("pattern") {
				at := fmt.Sprintf("conditionalFileInstalls pattern[%d]", i)
				cfg.ConditionalPatterns = append(cfg.ConditionalPatterns, installer.ConditionalPattern{
					Condition: p.requiredComposite(at, el),
					Files:     p.files(at, el.SelectElement("files")),
				})
			}
		}
	}

	p.logger.Debug().
		Str("module", cfg.Name).
		Int("steps", len(cfg.Steps)).
		Int("requiredFiles", len(cfg.RequiredFiles)).
		Int("conditionalPatterns", len(cfg.ConditionalPatterns)).
		Msg("Decoded module config")
	return cfg
}

func (p *parser) step(at string, el *etree.Element) *installer.InstallStep {
	step := &installer.InstallStep{
		Name:       p.requiredAttr(at, el, "name"),
		Visibility: condition.Always(),
	}
	at = fmt.Sprintf("installStep %q", step.Name)

	if visible := el.SelectElement("visible"); visible != nil {
		step.Visibility = p.composite(at+" visible", visible)
	}

	if groups := el.SelectElement("optionalFileGroups"); groups != nil {
		for _, g := range p.ordered(at, groups, groups.SelectElements("group")) {
			step.Groups = append(step.Groups, p.group(at, g))
		}
	}
	return step
}

func (p *parser) group(at string, el *etree.Element) *installer.PluginGroup {
	group := &installer.PluginGroup{
		Name: p.requiredAttr(at+" group", el, "name"),
		Rule: installer.ParseSelectionRule(el.SelectAttrValue("type", "")),
	}
	at = fmt.Sprintf("%s group %q", at, group.Name)

	if plugins := el.SelectElement("plugins"); plugins != nil {
		for _, pl := range p.ordered(at, plugins, plugins.SelectElements("plugin")) {
			group.Plugins = append(group.Plugins, p.plugin(at, pl))
		}
	}
	return group
}

func (p *parser) plugin(at string, el *etree.Element) *installer.Plugin {
	plugin := &installer.Plugin{
		Name:        p.requiredAttr(at+" plugin", el, "name"),
		Description: strings.TrimSpace(textOf(el.SelectElement("description"))),
	}
	at = fmt.Sprintf("%s plugin %q", at, plugin.Name)

	if img := el.SelectElement("image"); img != nil {
		plugin.Image = normalizeSource(img.SelectAttrValue("path", ""))
	}
	plugin.Files = p.files(at, el.SelectElement("files"))

	if flags := el.SelectElement("conditionFlags"); flags != nil {
		for _, f := range flags.SelectElements("flag") {
			plugin.Flags = append(plugin.Flags, installer.Flag{
				Name:  p.requiredAttr(at+" flag", f, "name"),
				Value: f.Text(),
			})
		}
	}

	p.typeDescriptor(at, el.SelectElement("typeDescriptor"), plugin)
	plugin.CurrentType = plugin.DefaultType
	return plugin
}

// typeDescriptor reads either a fixed <type> or a <dependencyType> with a
// default type and conditional patterns
func (p *parser) typeDescriptor(at string, el *etree.Element, plugin *installer.Plugin) {
	if el == nil {
		p.add(at, "missing typeDescriptor")
		return
	}

	if fixed := el.SelectElement("type"); fixed != nil {
		plugin.DefaultType = p.pluginType(at+" type", fixed)
		return
	}

	dep := el.SelectElement("dependencyType")
	if dep == nil {
		p.add(at, "typeDescriptor needs a type or a dependencyType")
		return
	}
	def := dep.SelectElement("defaultType")
	if def == nil {
		p.add(at, "dependencyType without defaultType")
	} else {
		plugin.DefaultType = p.pluginType(at+" defaultType", def)
	}

	if patterns := dep.SelectElement("patterns"); patterns != nil {
		for i, pat := range patterns.SelectElements("pattern") {
			patAt := fmt.Sprintf("%s type pattern[%d]", at, i)
			typeEl := pat.SelectElement("type")
			if typeEl == nil {
				p.add(patAt, "missing type")
				continue
			}
			plugin.TypePatterns = append(plugin.TypePatterns, installer.TypePattern{
				Condition: p.requiredComposite(patAt, pat),
				Type:      p.pluginType(patAt+" type", typeEl),
			})
		}
	}
}

func (p *parser) pluginType(at string, el *etree.Element) installer.PluginType {
	name := p.requiredAttr(at, el, "name")
	if name == "" {
		return ""
	}
	t, err := installer.ParsePluginType(name)
	if err != nil {
		p.add(at, "unknown plugin type %q", name)
		return ""
	}
	return t
}

// requiredComposite reads the <dependencies> child every pattern must have
func (p *parser) requiredComposite(at string, el *etree.Element) *condition.Node {
	deps := el.SelectElement("dependencies")
	if deps == nil {
		p.add(at, "pattern without dependencies")
		return condition.Always()
	}
	return p.composite(at, deps)
}

// composite decodes a dependency block: an operator attribute and any mix
// of leaf dependencies and nested <dependencies> blocks
func (p *parser) composite(at string, el *etree.Element) *condition.Node {
	var children []*condition.Node
	for _, child := range el.ChildElements() {
		if node := p.dependency(at, child); node != nil {
			children = append(children, node)
		}
	}

	op := strings.TrimSpace(el.SelectAttrValue("operator", "And"))
	switch {
	case strings.EqualFold(op, "And"):
		return condition.And(children...)
	case strings.EqualFold(op, "Or"):
		return condition.Or(children...)
	default:
		p.add(at, "unknown dependency operator %q", op)
		return condition.And(children...)
	}
}

func (p *parser) dependency(at string, el *etree.Element) *condition.Node {
	switch el.Tag {
	case "dependencies":
		return p.composite(at, el)
	case "fileDependency":
		file := p.requiredAttr(at+" fileDependency", el, "file")
		state, ok := fileStates[strings.ToLower(strings.TrimSpace(el.SelectAttrValue("state", "")))]
		if !ok {
			p.add(at, "fileDependency %q has unknown state %q", file, el.SelectAttrValue("state", ""))
		}
		return condition.FileCheck(file, state)
	case "flagDependency":
		flag := p.requiredAttr(at+" flagDependency", el, "flag")
		return condition.FlagCheck(flag, el.SelectAttrValue("value", ""))
	case "gameDependency":
		return condition.GameVersion(p.requiredAttr(at+" gameDependency", el, "version"))
	case "fommDependency":
		return condition.InstallerVersion(p.requiredAttr(at+" fommDependency", el, "version"))
	default:
		p.logger.Warn().
			Str("at", at).
			Str("element", el.Tag).
			Msg("Ignoring unsupported dependency")
		return nil
	}
}

var fileStates = map[string]condition.FileState{
	"active":   condition.FilePresent,
	"inactive": condition.FileAbsent,
	"missing":  condition.FileAbsent,
}

// files decodes the <file> and <folder> children of el in document order
func (p *parser) files(at string, el *etree.Element) []installer.FileEntry {
	if el == nil {
		return nil
	}
	var files []installer.FileEntry
	for i, child := range el.ChildElements() {
		if child.Tag != "file" && child.Tag != "folder" {
			continue
		}
		fileAt := fmt.Sprintf("%s %s[%d]", at, child.Tag, i)

		src := normalizeSource(p.requiredAttr(fileAt, child, "source"))
		entry := installer.NewFileEntry(src, "")
		if dst := child.SelectAttr("destination"); dst != nil {
			entry.Destination = normalizeDestination(dst.Value)
		}
		if raw := child.SelectAttrValue("priority", ""); raw != "" {
			priority, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				p.add(fileAt, "invalid priority %q", raw)
			}
			entry.Priority = priority
		}
		entry.AlwaysInstall = p.boolAttr(fileAt, child, "alwaysInstall")
		entry.InstallIfUsable = p.boolAttr(fileAt, child, "installIfUsable")
		files = append(files, entry)
	}
	return files
}

func (p *parser) boolAttr(at string, el *etree.Element, name string) bool {
	raw := el.SelectAttrValue(name, "")
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		p.add(at, "invalid %s value %q", name, raw)
	}
	return v
}

func (p *parser) requiredAttr(at string, el *etree.Element, name string) string {
	attr := el.SelectAttr(name)
	if attr == nil {
		p.add(at, "missing %s attribute", name)
		return ""
	}
	return attr.Value
}

// ordered applies the order attribute of container to its children,
// sorting by their name attribute. The format default is Ascending.
func (p *parser) ordered(at string, container *etree.Element, elems []*etree.Element) []*etree.Element {
	order := strings.TrimSpace(container.SelectAttrValue("order", "Ascending"))
	switch {
	case strings.EqualFold(order, "Explicit"):
		return elems
	case strings.EqualFold(order, "Ascending"), strings.EqualFold(order, "Descending"):
	default:
		p.add(at, "unknown order %q", order)
		return elems
	}

	sorted := append([]*etree.Element(nil), elems...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a := strings.ToLower(sorted[i].SelectAttrValue("name", ""))
		b := strings.ToLower(sorted[j].SelectAttrValue("name", ""))
		if strings.EqualFold(order, "Descending") {
			return a > b
		}
		return a < b
	})
	return sorted
}

func textOf(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return el.Text()
}

// normalizeSource converts the format's backslash paths to forward slashes
func normalizeSource(p string) string {
	return strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
}

func normalizeDestination(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

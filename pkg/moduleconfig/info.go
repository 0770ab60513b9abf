package moduleconfig

import (
	"strings"

	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/beevik/etree"
)

// Info is the descriptive metadata of info.xml
type Info struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	Website     string   `json:"website,omitempty" yaml:"website,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Groups      []string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// ParseInfo decodes an info.xml document. Element names are matched
// without regard to case since tools disagree on them.
func ParseInfo(data []byte) (*Info, error) {
	doc, err := readDocument(data)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if !strings.EqualFold(root.Tag, "fomod") {
		return nil, errors.Newf(errors.ErrConfigInvalid, "expected root element <fomod>, found <%s>", root.Tag).
			WithDetail("root", root.Tag)
	}

	info := &Info{
		Name:        childText(root, "Name"),
		Author:      childText(root, "Author"),
		Version:     childText(root, "Version"),
		Website:     childText(root, "Website"),
		Description: childText(root, "Description"),
	}
	if groups := child(root, "Groups"); groups != nil {
		for _, el := range groups.ChildElements() {
			if g := strings.TrimSpace(el.Text()); g != "" {
				info.Groups = append(info.Groups, g)
			}
		}
	}
	return info, nil
}

func child(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if strings.EqualFold(c.Tag, tag) {
			return c
		}
	}
	return nil
}

func childText(el *etree.Element, tag string) string {
	return strings.TrimSpace(textOf(child(el, tag)))
}

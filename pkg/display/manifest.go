package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/installer"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Manifest formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Manifest is the serialized result of a wizard run
type Manifest struct {
	Module string               `json:"module" yaml:"module"`
	Files  []installer.FilePair `json:"files" yaml:"files"`
}

// WriteManifest writes m to w in the given format. The text format is a
// table in terminal mode and one "source -> destination" line per file
// otherwise.
func WriteManifest(w io.Writer, m Manifest, format string, mode Mode) error {
	if m.Files == nil {
		m.Files = []installer.FilePair{}
	}

	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode manifest as JSON")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode manifest as YAML")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode manifest as YAML")
		}
		return nil
	case FormatText, "":
		_, err := io.WriteString(w, ManifestText(m, mode))
		return err
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown manifest format %q", format)
	}
}

// ManifestText renders the manifest for people
func ManifestText(m Manifest, mode Mode) string {
	var out strings.Builder

	header := fmt.Sprintf("%s: %d file(s) to install", m.Module, len(m.Files))
	out.WriteString(paint(mode, TitleStyle, header) + "\n")

	if len(m.Files) == 0 {
		out.WriteString(paint(mode, MutedStyle, "nothing to install") + "\n")
		return out.String()
	}

	if mode == ModeTerminal {
		data := pterm.TableData{{"#", "Source", "Destination"}}
		for i, f := range m.Files {
			data = append(data, []string{strconv.Itoa(i + 1), f.Source, destinationLabel(f.Destination)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err == nil {
			out.WriteString(table + "\n")
			return out.String()
		}
	}

	for _, f := range m.Files {
		out.WriteString(fmt.Sprintf("%s -> %s\n", f.Source, destinationLabel(f.Destination)))
	}
	return out.String()
}

// destinationLabel shows the install root for an empty destination
func destinationLabel(dst string) string {
	if dst == "" {
		return "."
	}
	return dst
}

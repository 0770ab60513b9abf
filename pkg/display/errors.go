package display

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/modwiz/pkg/errors"
)

// FormatError renders err as "[CODE] message". Errors carrying a list of
// problems or violations render the list one item per line instead.
func FormatError(err error, mode Mode) string {
	code := errors.GetErrorCode(err)
	if code == errors.ErrUnknown {
		return paint(mode, ErrorStyle, "error:") + " " + err.Error()
	}

	prefix := paint(mode, ErrorStyle, fmt.Sprintf("[%s]", code))
	for _, key := range []string{errors.DetailProblems, errors.DetailViolations} {
		items := errors.Items(err, key)
		if len(items) == 0 {
			continue
		}
		var out strings.Builder
		fmt.Fprintf(&out, "%s %d %s:", prefix, len(items), key)
		for _, item := range items {
			out.WriteString("\n  - " + item)
		}
		return out.String()
	}

	return prefix + " " + strings.TrimPrefix(err.Error(), fmt.Sprintf("[%s] ", code))
}

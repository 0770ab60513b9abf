package wizard

import (
	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/installer"
)

// Chooser returns the selection to make on a step
type Chooser func(step *installer.InstallStep) (installer.Selection, error)

// Run drives a fresh session to the end without going back: every
// visible step gets the selection chosen for it, then the session is
// finalized.
func Run(s *Session, choose Chooser) ([]installer.FilePair, error) {
	if s.State() != StateNotStarted {
		return nil, s.invalidState("run")
	}

	step, err := s.Advance(nil)
	for err == nil && step != nil {
		var sel installer.Selection
		if sel, err = choose(step); err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "no selection for step %q", step.Name).
				WithDetails(errors.GetErrorDetails(err)).
				WithDetail("step", step.Name)
		}
		step, err = s.Advance(sel)
	}
	if err != nil {
		return nil, err
	}
	return s.Finalize(nil)
}

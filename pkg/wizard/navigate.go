package wizard

import (
	"github.com/arthur-debert/modwiz/pkg/condition"
	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/installer"
)

// Advance applies sel to the current step, then moves to the next step
// whose visibility holds under the updated flags. It returns that step, or
// nil when no later step is visible and the wizard is completed.
//
// Before the first advance sel must be empty. An empty selection on a step
// means nothing was checked.
func (s *Session) Advance(sel installer.Selection) (*installer.InstallStep, error) {
	switch s.State() {
	case StateCompleted, StateFinalized:
		return nil, s.invalidState("advance")
	case StateNotStarted:
		if !sel.Empty() {
			return nil, errors.SelectionShape("", "no step is shown yet, selection must be empty").
				WithDetail("actualGroups", len(sel))
		}
	case StateAtStep:
		step := s.cfg.Steps[s.current]
		normalized, err := normalize(step, sel)
		if err != nil {
			return nil, err
		}
		s.apply(step, normalized)
		s.history = append(s.history, normalized)
		s.visited = append(s.visited, s.current)
	}

	env := s.env(s.flags)
	next := s.nextVisible(env, s.current+1)
	if next < 0 {
		s.current = len(s.cfg.Steps)
		s.logger.Info().
			Int("visited", len(s.history)).
			Int("files", len(s.files)).
			Msg("Wizard completed")
		return nil, nil
	}

	step := s.cfg.Steps[next]
	step.ResolveTypes(env)
	s.current = next

	s.logger.Info().
		Int("index", next).
		Str("step", step.Name).
		Msg("Entered step")
	return step, nil
}

// CanAdvance reports whether a later step would be visible after applying
// sel. It changes nothing in the session.
func (s *Session) CanAdvance(sel installer.Selection) (bool, error) {
	flags := s.Flags()

	switch s.State() {
	case StateFinalized:
		return false, s.invalidState("look ahead")
	case StateCompleted:
		return false, nil
	case StateNotStarted:
		if !sel.Empty() {
			return false, errors.SelectionShape("", "no step is shown yet, selection must be empty").
				WithDetail("actualGroups", len(sel))
		}
	case StateAtStep:
		step := s.cfg.Steps[s.current]
		normalized, err := normalize(step, sel)
		if err != nil {
			return false, err
		}
		setFlags(flags, step, normalized)
	}

	return s.nextVisible(s.env(flags), s.current+1) >= 0, nil
}

// Retreat moves back to the previously visited step. It resets the
// runtime state and replays the recorded selections up to that step, so
// flags and files are exactly what they were when it was first shown.
//
// It returns the selection that was made on the step it moved back to,
// for the UI to pre-fill, and that step. Both are nil when there is no
// previous step. When the replay cannot reach that step again the session
// is left unchanged and an INTERNAL error is returned.
func (s *Session) Retreat() (installer.Selection, *installer.InstallStep, error) {
	if s.finalized {
		return nil, nil, s.invalidState("retreat")
	}
	if len(s.history) == 0 {
		return nil, nil, nil
	}

	saved := s.snapshot()
	popped := saved.history[len(saved.history)-1]
	replay := saved.history[:len(saved.history)-1]
	s.history = nil
	s.visited = nil
	s.reset()

	step, err := s.replay(replay, saved.visited)
	if err != nil {
		s.restore(saved)
		return nil, nil, err
	}

	s.logger.Info().
		Int("index", s.current).
		Str("step", step.Name).
		Int("replayed", len(replay)).
		Msg("Retreated to step")
	return popped.Clone(), step, nil
}

// replay advances from the start with the recorded selections. Each
// advance must land on the step it landed on originally; conditions on
// the filesystem may have changed since.
func (s *Session) replay(selections []installer.Selection, visited []int) (*installer.InstallStep, error) {
	step, err := s.Advance(nil)
	for i := 0; ; i++ {
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to replay selections")
		}
		if step == nil || s.current != visited[i] {
			return nil, errors.New(errors.ErrInternal, "replaying selections did not reach the previous step").
				WithDetail("replayed", i).
				WithDetail("expectedIndex", visited[i]).
				WithDetail("actualIndex", s.current)
		}
		if i == len(selections) {
			return step, nil
		}
		step, err = s.Advance(selections[i])
	}
}

// sessionState is the mutable part of a session, kept so a failed replay
// can be undone
type sessionState struct {
	current int
	flags   map[string]string
	files   []installer.FileEntry
	history []installer.Selection
	visited []int
	types   []installer.PluginType
}

func (s *Session) snapshot() sessionState {
	st := sessionState{
		current: s.current,
		flags:   s.Flags(),
		files:   s.Files(),
		history: append([]installer.Selection(nil), s.history...),
		visited: append([]int(nil), s.visited...),
	}
	s.eachPlugin(func(p *installer.Plugin) { st.types = append(st.types, p.CurrentType) })
	return st
}

func (s *Session) restore(st sessionState) {
	s.current = st.current
	s.flags = st.flags
	s.files = st.files
	s.history = st.history
	s.visited = st.visited
	i := 0
	s.eachPlugin(func(p *installer.Plugin) {
		p.CurrentType = st.types[i]
		i++
	})
}

func (s *Session) eachPlugin(fn func(*installer.Plugin)) {
	for _, step := range s.cfg.Steps {
		for _, group := range step.Groups {
			for _, plugin := range group.Plugins {
				fn(plugin)
			}
		}
	}
}

func (s *Session) nextVisible(env *condition.Env, from int) int {
	for i := from; i < len(s.cfg.Steps); i++ {
		if s.cfg.Steps[i].Visibility.Evaluate(env) {
			return i
		}
		s.logger.Debug().
			Int("index", i).
			Str("step", s.cfg.Steps[i].Name).
			Msg("Skipping hidden step")
	}
	return -1
}

// apply records the flags and files of one step's selection
func (s *Session) apply(step *installer.InstallStep, sel installer.Selection) {
	setFlags(s.flags, step, sel)

	before := len(s.files)
	for i, group := range step.Groups {
		for j, plugin := range group.Plugins {
			if sel[i][j] {
				s.files = installer.MergeFiles(s.files, plugin.Files...)
				continue
			}
			for _, f := range plugin.Files {
				if f.AlwaysInstall || (f.InstallIfUsable && plugin.Usable()) {
					s.files = installer.MergeFiles(s.files, f)
				}
			}
		}
	}
	installer.SortByPriority(s.files)

	s.logger.Debug().
		Str("step", step.Name).
		Int("flags", len(s.flags)).
		Int("newFiles", len(s.files)-before).
		Msg("Applied selection")
}

// setFlags sets the flags of every checked plugin, later plugins
// overwriting earlier ones
func setFlags(flags map[string]string, step *installer.InstallStep, sel installer.Selection) {
	for i, group := range step.Groups {
		for j, plugin := range group.Plugins {
			if !sel[i][j] {
				continue
			}
			for _, flag := range plugin.Flags {
				flags[flag.Name] = flag.Value
			}
		}
	}
}

func normalize(step *installer.InstallStep, sel installer.Selection) (installer.Selection, error) {
	if sel.Empty() {
		return installer.EmptySelection(step), nil
	}
	if err := installer.CheckShape(step, sel); err != nil {
		return nil, err
	}
	return sel.Clone(), nil
}

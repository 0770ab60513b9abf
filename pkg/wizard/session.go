package wizard

import (
	"fmt"

	"github.com/arthur-debert/modwiz/pkg/condition"
	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/arthur-debert/modwiz/pkg/installer"
	"github.com/arthur-debert/modwiz/pkg/logging"
	"github.com/rs/zerolog"
)

// State is the position of a session in the wizard
type State int

const (
	StateNotStarted State = iota
	StateAtStep
	StateCompleted
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateAtStep:
		return "at-step"
	case StateCompleted:
		return "completed"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options configures a Session
type Options struct {
	// FS answers existence checks for file conditions and source checks
	FS filesystem.FS

	// TargetRoot is the directory file conditions are resolved against,
	// usually the game's data directory
	TargetRoot string

	// ModRoot is the directory holding the module's sources. When set,
	// required and conditional files whose source is missing are skipped
	// with a warning at finalize.
	ModRoot string

	// Versions answers game and installer version conditions. Required.
	Versions condition.VersionChecker

	// UnsetFlags decides how unset flags compare against ""
	UnsetFlags condition.UnsetFlagPolicy

	// Logger overrides the component logger
	Logger *zerolog.Logger
}

// Session is one run of the wizard over a config
type Session struct {
	cfg    *installer.Config
	opts   Options
	logger zerolog.Logger

	current   int
	finalized bool

	flags   map[string]string
	files   []installer.FileEntry
	history []installer.Selection
	visited []int // step index of each history entry
}

// NewSession validates cfg and prepares a session in the not-started
// state. The session works on its own copy of the config.
func NewSession(cfg *installer.Config, opts Options) (*Session, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrConfigInvalid, "no installer config")
	}
	if opts.FS == nil {
		return nil, errors.New(errors.ErrConfigInvalid, "no filesystem configured for condition checks")
	}
	if opts.Versions == nil {
		return nil, errors.New(errors.ErrConfigInvalid, "no version checker configured")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg.Clone(),
		opts:   opts,
		logger: logging.GetLogger("wizard.session"),
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	}
	s.opts.Logger = &s.logger
	s.reset()

	s.logger.Debug().
		Str("module", cfg.Name).
		Int("steps", len(cfg.Steps)).
		Int("requiredFiles", len(cfg.RequiredFiles)).
		Int("conditionalPatterns", len(cfg.ConditionalPatterns)).
		Msg("Session created")

	return s, nil
}

// reset returns the runtime state to not-started and resolves every
// plugin type against empty flags
func (s *Session) reset() {
	s.current = -1
	s.flags = make(map[string]string)
	s.files = nil

	env := s.env(s.flags)
	for _, step := range s.cfg.Steps {
		step.ResolveTypes(env)
	}
}

// env builds a fresh evaluation environment, so existence checks are
// cached for one operation only
func (s *Session) env(flags map[string]string) *condition.Env {
	return &condition.Env{
		FS:         s.opts.FS,
		TargetRoot: s.opts.TargetRoot,
		Flags:      flags,
		Versions:   s.opts.Versions,
		UnsetFlags: s.opts.UnsetFlags,
		Logger:     s.opts.Logger,
	}
}

// State reports where the session is
func (s *Session) State() State {
	switch {
	case s.finalized:
		return StateFinalized
	case s.current < 0:
		return StateNotStarted
	case s.current >= len(s.cfg.Steps):
		return StateCompleted
	default:
		return StateAtStep
	}
}

// Name returns the module name of the config
func (s *Session) Name() string { return s.cfg.Name }

// HasNoSteps reports whether the config is non-interactive
func (s *Session) HasNoSteps() bool {
	return len(s.cfg.Steps) == 0
}

// PrerequisitesMet evaluates the module-level prerequisites
func (s *Session) PrerequisitesMet() bool {
	if s.cfg.Prerequisites == nil {
		return true
	}
	return s.cfg.Prerequisites.Evaluate(s.env(s.flags))
}

// Steps returns the session's steps, including their current plugin types
func (s *Session) Steps() []*installer.InstallStep {
	return append([]*installer.InstallStep(nil), s.cfg.Steps...)
}

// CurrentStep returns the step being shown, or nil outside the at-step state
func (s *Session) CurrentStep() *installer.InstallStep {
	if s.State() != StateAtStep {
		return nil
	}
	return s.cfg.Steps[s.current]
}

// CurrentIndex returns the index of the current step; -1 before the first
// advance and len(steps) once completed
func (s *Session) CurrentIndex() int { return s.current }

// Flags returns a copy of the active flags
func (s *Session) Flags() map[string]string {
	out := make(map[string]string, len(s.flags))
	for k, v := range s.flags {
		out[k] = v
	}
	return out
}

// Files returns a copy of the accumulated files in priority order
func (s *Session) Files() []installer.FileEntry {
	return append([]installer.FileEntry(nil), s.files...)
}

// History returns a copy of the selections made on the visited steps that
// were left, oldest first
func (s *Session) History() []installer.Selection {
	out := make([]installer.Selection, len(s.history))
	for i, sel := range s.history {
		out[i] = sel.Clone()
	}
	return out
}

// HasPreviousStep reports whether Retreat would move back
func (s *Session) HasPreviousStep() bool {
	return !s.finalized && len(s.history) > 0
}

func (s *Session) invalidState(op string) error {
	return errors.Newf(errors.ErrInvalidState, "cannot %s: session is %s", op, s.State()).
		WithDetail("state", s.State().String())
}

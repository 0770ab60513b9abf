package wizard

import (
	"path/filepath"

	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/arthur-debert/modwiz/pkg/installer"
	"github.com/arthur-debert/modwiz/pkg/logging"
)

// Finalize applies sel to the step being shown and returns the install
// manifest: required files, then the files of the selected plugins, then
// the files of every conditional pattern that holds, deduplicated and
// ordered by ascending priority. The session cannot be used afterwards.
//
// Once completed, sel must be empty: every visited step already has its
// selection applied.
func (s *Session) Finalize(sel installer.Selection) ([]installer.FilePair, error) {
	done := logging.LogOperationStart(s.logger, "finalize")
	defer done()

	switch s.State() {
	case StateFinalized:
		return nil, s.invalidState("finalize")
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
	case StateCompleted:
		// the last step's selection was applied when it was left
		if !sel.Empty() {
			return nil, errors.Newf(errors.ErrInvalidState,
				"cannot finalize with a selection: session is %s, retreat to change the last step", s.State()).
				WithDetail("state", s.State().String()).
				WithDetail("actualGroups", len(sel))
		}
	}

	env := s.env(s.flags)
	manifest := installer.MergeFiles(nil, s.withSources("required", s.cfg.RequiredFiles)...)
	manifest = installer.MergeFiles(manifest, s.files...)
	for i, cp := range s.cfg.ConditionalPatterns {
		if !cp.Condition.Evaluate(env) {
			continue
		}
		s.logger.Debug().
			Int("pattern", i).
			Int("files", len(cp.Files)).
			Msg("Conditional pattern matched")
		manifest = installer.MergeFiles(manifest, s.withSources("conditional", cp.Files)...)
	}
	installer.SortByPriority(manifest)

	s.files = manifest
	s.finalized = true

	s.logger.Info().
		Str("module", s.cfg.Name).
		Int("files", len(manifest)).
		Msg("Install manifest ready")
	return installer.Pairs(manifest), nil
}

// withSources drops entries whose source is missing from the module root.
// Without a module root every entry is kept.
func (s *Session) withSources(kind string, files []installer.FileEntry) []installer.FileEntry {
	if s.opts.ModRoot == "" {
		return files
	}
	kept := make([]installer.FileEntry, 0, len(files))
	for _, f := range files {
		if filesystem.Exists(s.opts.FS, filepath.Join(s.opts.ModRoot, filepath.FromSlash(f.Source))) {
			kept = append(kept, f)
			continue
		}
		s.logger.Warn().
			Str("kind", kind).
			Str("source", f.Source).
			Str("destination", f.Destination).
			Msg("Skipping file with missing source")
	}
	return kept
}

// Package paths provides centralized path handling for modwiz.
// It follows the XDG Base Directory specification for the config and
// state (log) locations and honours modwiz-specific environment overrides.
package paths

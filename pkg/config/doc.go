// Package config loads the modwiz application configuration.
//
// Values are layered, later layers winning: the embedded defaults, the
// user's config.toml (from the XDG config directory or an explicit path),
// MODWIZ_* environment variables, then overrides from command-line flags.
package config

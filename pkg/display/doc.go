// Package display renders modwiz output for the terminal and for pipes:
// install manifests (table, plain text, JSON or YAML), wizard steps with
// their plugins, module overviews as markdown, and coded errors.
//
// Every renderer takes a Mode. ModeTerminal adds colors, tables and
// rendered markdown; ModeText produces plain text that is stable enough to
// grep and diff.
package display

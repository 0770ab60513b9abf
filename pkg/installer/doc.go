// Package installer holds the data model of an installer config: install
// steps gated by visibility conditions, groups of selectable plugins,
// the files each plugin contributes, and the selection matrices a UI
// hands back. It also provides the file list operations (dedup by slot,
// stable priority sort) and the pure selection checks the UI runs before
// passing a selection to the wizard.
package installer

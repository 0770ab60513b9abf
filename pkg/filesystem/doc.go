// Package filesystem provides the read-only filesystem view modwiz needs.
//
// The engine only ever asks whether paths exist and reads the module's
// XML files, so the FS interface is limited to those operations. An OS
// implementation backs the CLI and an afero implementation backs tests.
package filesystem

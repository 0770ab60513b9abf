// Package condition implements the boolean dependency expressions used by
// installer configs: step visibility, plugin type patterns, module
// prerequisites and conditional file installs.
//
// A condition is an immutable tree of *Node values. Interior nodes combine
// children with AND or OR; leaves test whether a file exists under the
// target root, whether a flag set by an earlier selection has a value, or
// whether the game or installer version satisfies a requirement. Version
// checks are delegated to a VersionChecker supplied by the caller.
//
// Evaluation happens against an Env, which carries the flags, the
// filesystem and a per-pass existence cache so that trees referencing the
// same file many times stat it once.
package condition

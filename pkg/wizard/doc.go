// Package wizard drives an installer config step by step.
//
// A Session owns a private copy of the config's steps plus the runtime
// state built by the user's selections: the flags set so far, the files
// accumulated so far and the history of selections made on each visited
// step. Advance applies a selection and moves to the next visible step,
// CanAdvance answers the same question without changing anything, and
// Retreat goes back one step by resetting the runtime state and replaying
// the recorded history from the start. Finalize applies the last selection
// and returns the ordered install manifest.
//
// A Session is not safe for concurrent use; it is meant to be driven from
// a single UI loop.
package wizard

// Package composer arranges a set of images and stitches them into one.
//
// A Composer holds one Editor per source image and a display order over
// them. Edits are addressed by display index; an invalid index is reported
// as a false return, never as an error. Compose reads the current version of
// every image in order, scales them to the smallest height, borders them and
// concatenates them left to right. Save writes the composition, every edited
// image and a manifest listing them.
//
// # Error Handling
//
// The failure kinds a caller needs to tell apart are:
//   - *imaging.LoadError from PrepareAll, one per unreadable file
//   - false from index-based operations (invalid index, nothing to undo,
//     no fit found)
//   - ErrEmptyWorkingSet from Compose
//   - *PartialSaveError from Save, listing every failed step
//
// # Concurrency
//
// A Composer is not safe for concurrent use. The surrounding shell runs one
// command at a time.
package composer

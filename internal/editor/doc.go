// Package editor keeps the edit history of a single image.
//
// Every edit (fit or rotate) pushes a new version and clears the redo stack,
// giving standard linear undo/redo. The originally loaded image is always the
// bottom of the history and cannot be undone away.
//
// Operations that cannot apply (nothing to undo, no fit found, editor not
// prepared) return false instead of an error; only loading and saving touch
// the filesystem and report errors.
package editor

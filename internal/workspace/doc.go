// Package workspace maps a photo directory onto the files the composer reads
// and writes: which images to load, where edited copies and the composed
// image go, and the manifest tying them together.
package workspace

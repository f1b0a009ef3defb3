// Package imaging provides the pixel-buffer primitives used by the composer.
//
// This package implements loading and saving, aspect-preserving resizes,
// rotation about the centre, bordering, horizontal composition, cropping and
// Canny edge detection. All functions treat their inputs as read-only and
// return freshly allocated images, so a buffer kept in an edit history can
// never be changed by a later transform.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive and Max is exclusive (image.Rectangle)
//
// # Resampling
//
// Resizes use area averaging (imaging.Box) when shrinking and linear
// interpolation when enlarging. Composition only ever shrinks, because the
// target height is the minimum height of the set.
//
// # Error Handling
//
// Load failures are returned as *LoadError so callers can separate an
// unreadable input from other failures. Other functions return errors for:
//   - Crop regions that do not intersect the image
//   - Empty image sets or non-positive target heights in Compose
//   - Unknown output extensions and encoding errors in Save
package imaging

// Package detection finds the region of a photograph worth keeping.
//
// The fit detector turns an image into a set of edge contours: it converts
// to grayscale, blurs, runs Canny edge detection and groups the edge pixels
// into 8-connected components. The result is sorted by area so the first
// contour is the dominant shape.
//
// # Strength
//
// Strength is a positive integer chosen by the operator. It controls two
// things at once:
//   - Blur kernel size: 1 + 2*strength taps, so larger strengths smooth more
//   - Upper edge threshold: edgeConstant / sqrt(strength), so larger
//     strengths admit fainter edges
//
// Reading strength as "aggressiveness of the crop suggestion" matches both
// effects.
//
// # Results
//
// An empty result is not an error. Flat or low-contrast images routinely
// produce no contours, and callers report that as "no fit found".
//
// # Coordinate System
//
// Contour points and bounds are in the coordinates of the input image,
// with Max exclusive as in image.Rectangle.
package detection

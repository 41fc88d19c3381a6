// Package render lays out beacon's query line, result rows and
// description pane into pixel coordinates and paints them through the
// draw abstraction. It owns the scroll window state and the lock that
// serializes access to the shared drawing surface.
package render

import "math"

// Fit scales a natural (w, h) down to fit inside (maxW, maxH) while
// preserving the aspect ratio. Content that already fits is returned
// unchanged; images are never upscaled. Callers must pass a positive
// bounding box.
func Fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return int(math.Round(scale * float64(w))), int(math.Round(scale * float64(h)))
}

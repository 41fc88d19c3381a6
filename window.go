package main

import "github.com/charmbracelet/log"

// windowController receives the geometry the composer computes. The
// devdraw protocol has no resize or move call, so requests are logged
// and the window keeps the size it was created with; the composer
// still lays content out against the requested geometry.
type windowController struct {
	log *log.Logger
}

func (w *windowController) Resize(width, height int) {
	w.log.Debug("window resize request", "width", width, "height", height)
}

func (w *windowController) Reposition(x, y int) {
	w.log.Debug("window move request", "x", x, "y", y)
}

//go:build !duitdraw
// +build !duitdraw

package draw

import (
	draw "9fans.net/go/draw"
)

const (
	Refnone = draw.Refnone

	KeyDown     = draw.KeyDown
	KeyEnd      = draw.KeyEnd
	KeyHome     = draw.KeyHome
	KeyLeft     = draw.KeyLeft
	KeyPageDown = draw.KeyPageDown
	KeyPageUp   = draw.KeyPageUp
	KeyRight    = draw.KeyRight
	KeyUp       = draw.KeyUp

	Black     = draw.Black
	Notacolor = draw.Notacolor
	White     = draw.White
)

// Pix constants for pixel formats. RGBA32 is what decoded images are
// loaded as before painting.
var (
	RGBA32 = draw.RGBA32
	XRGB32 = draw.XRGB32
)

type (
	Color       = draw.Color
	Keyboardctl = draw.Keyboardctl
	Mouse       = draw.Mouse
	Mousectl    = draw.Mousectl
	Pix         = draw.Pix
	drawDisplay = draw.Display
	drawFont    = draw.Font
	drawImage   = draw.Image
)

// Init connects to the drawing device and returns the Display wrapper.
func Init(errch chan<- error, fontname, label, winsize string) (Display, error) {
	d, err := draw.Init(errch, fontname, label, winsize)
	if err != nil {
		return nil, err
	}
	return &displayImpl{d}, nil
}

package render

import (
	"github.com/charmbracelet/log"

	"github.com/beaconmenu/beacon/draw"
)

// Option configures a Composer at construction time.
type Option func(*Composer)

// WithDisplay sets the display the composer paints through. Required.
func WithDisplay(d draw.Display) Option {
	return func(c *Composer) { c.display = d }
}

// WithWindowControl sets the collaborator that applies window geometry
// requests. Without one, geometry changes are computed and dropped.
func WithWindowControl(w WindowControl) Option {
	return func(c *Composer) { c.win = w }
}

// WithGeometry sets the window layout parameters. Required.
func WithGeometry(g Geometry) Option {
	return func(c *Composer) { c.geo = g }
}

// WithPalette sets the configured colors.
func WithPalette(p Palette) Option {
	return func(c *Composer) { c.palette = p }
}

// WithFont sets the font for the query line and result rows. Required.
func WithFont(f draw.Font) Option {
	return func(c *Composer) { c.font = f }
}

// WithBoldFont sets the font substituted for bold runs in rows.
func WithBoldFont(f draw.Font) Option {
	return func(c *Composer) { c.boldFont = f }
}

// WithDescFont sets the description pane font. Defaults to the row
// font.
func WithDescFont(f draw.Font) Option {
	return func(c *Composer) { c.descFont = f }
}

// WithDescBoldFont sets the font substituted for bold runs in the
// description pane.
func WithDescBoldFont(f draw.Font) Option {
	return func(c *Composer) { c.descBold = f }
}

// WithImageCache shares a decode cache across composers.
func WithImageCache(cache *ImageCache) Option {
	return func(c *Composer) { c.images = cache }
}

// WithLogger sets the composer's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Composer) { c.log = l }
}

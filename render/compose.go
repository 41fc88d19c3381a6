package render

import (
	"errors"
	"image"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/beaconmenu/beacon/draw"
	"github.com/beaconmenu/beacon/markup"
)

// WindowControl receives the window geometry this package computes.
// Requests are fire-and-forget; the composer never waits for the host
// window system to apply them.
type WindowControl interface {
	Resize(width, height int)
	Reposition(x, y int)
}

// Geometry is the fixed layout configuration of the window, validated
// before the composer sees it.
type Geometry struct {
	Width       int // result column width in pixels
	LineHeight  int
	DescWidth   int // extra width when the description pane is open
	MaxHeight   int
	Pad         int // left padding inside a row
	LineGap     int // inset of rule endpoints inside the pane
	AutoCenter  bool
	CursorBar   bool
	Pos         image.Point // window position without the pane
	PosWithDesc image.Point // window position with the pane open
}

// Palette carries the configured colors. The composer allocates one
// replicated device image per color at startup.
type Palette struct {
	QueryFg, QueryBg         draw.Color
	ResultFg, ResultBg       draw.Color
	HighlightFg, HighlightBg draw.Color
	TitleFg, TitleBg         draw.Color
	Rule                     draw.Color
}

// Composer owns the drawing surface and the lock serializing the two
// paths that touch it: keystrokes repainting the query line and
// handler output repainting the result list. Sub-renderers only ever
// see the surface through a Composer method holding the lock.
type Composer struct {
	mu      sync.Mutex
	display draw.Display
	screen  draw.Image
	win     WindowControl
	geo     Geometry
	palette Palette
	images  *ImageCache
	scroll  Window
	line    LineRenderer
	pane    Pane
	log     *log.Logger

	font     draw.Font
	boldFont draw.Font
	descFont draw.Font
	descBold draw.Font

	queryFg, queryBg         draw.Image
	resultFg, resultBg       draw.Image
	highlightFg, highlightBg draw.Image
	titleFg, titleBg         draw.Image
	rule                     draw.Image
}

// New builds a Composer from functional options. A display, a font and
// a geometry are required.
func New(opts ...Option) (*Composer, error) {
	c := &Composer{
		images: NewImageCache(),
		log:    log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.display == nil {
		return nil, errors.New("render: no display")
	}
	if c.font == nil {
		return nil, errors.New("render: no font")
	}
	if c.geo.LineHeight <= 0 || c.geo.Width <= 0 || c.geo.MaxHeight < 2*c.geo.LineHeight {
		return nil, errors.New("render: bad geometry")
	}
	if c.descFont == nil {
		c.descFont = c.font
	}

	c.screen = c.display.ScreenImage()
	if err := c.allocColors(); err != nil {
		return nil, err
	}

	c.line = LineRenderer{
		Display:    c.display,
		Font:       c.font,
		BoldFont:   c.boldFont,
		Images:     c.images,
		Width:      c.geo.Width,
		LineHeight: c.geo.LineHeight,
		Pad:        c.geo.Pad,
		CursorBar:  c.geo.CursorBar,
		Log:        c.log,
	}
	c.pane = Pane{
		Display:    c.display,
		Font:       c.descFont,
		BoldFont:   c.descBold,
		Images:     c.images,
		LineHeight: c.descFont.Height(),
		LineGap:    c.geo.LineGap,
		RuleColor:  c.rule,
		Log:        c.log,
	}
	return c, nil
}

func (c *Composer) allocColors() error {
	alloc := func(col draw.Color, dst *draw.Image) error {
		img, err := c.display.AllocImage(image.Rect(0, 0, 1, 1), c.screen.Pix(), true, col)
		if err != nil {
			return err
		}
		*dst = img
		return nil
	}
	p := c.palette
	for _, pair := range []struct {
		col draw.Color
		dst *draw.Image
	}{
		{p.QueryFg, &c.queryFg}, {p.QueryBg, &c.queryBg},
		{p.ResultFg, &c.resultFg}, {p.ResultBg, &c.resultBg},
		{p.HighlightFg, &c.highlightFg}, {p.HighlightBg, &c.highlightBg},
		{p.TitleFg, &c.titleFg}, {p.TitleBg, &c.titleBg},
		{p.Rule, &c.rule},
	} {
		if err := alloc(pair.col, pair.dst); err != nil {
			return err
		}
	}
	return nil
}

// capacity is how many result rows fit under the query line.
func (c *Composer) capacity() int {
	return c.geo.MaxHeight/c.geo.LineHeight - 1
}

// Redraw paints a full frame: the query line, the window geometry, the
// description pane when the highlighted entry has one, and the visible
// result rows.
func (c *Composer) Redraw(query string, cursor int, entries []markup.Entry, highlight int) {
	c.warm(entries, highlight)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line.DrawQuery(c.screen, query, cursor, c.queryFg, c.queryBg)
	c.drawResults(entries, highlight)
	c.display.Flush()
}

// RedrawQuery repaints only the query line after a keystroke.
func (c *Composer) RedrawQuery(query string, cursor int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line.DrawQuery(c.screen, query, cursor, c.queryFg, c.queryBg)
	c.display.Flush()
}

// RedrawResults repaints the result list after handler output arrives.
// The query line is untouched; it is only repainted by the input path.
func (c *Composer) RedrawResults(entries []markup.Entry, highlight int) {
	c.warm(entries, highlight)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drawResults(entries, highlight)
	c.display.Flush()
}

// Resized re-attaches the screen image after the host window changed
// size under us.
func (c *Composer) Resized() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.display.Attach(draw.Refnone); err != nil {
		return err
	}
	c.screen = c.display.ScreenImage()
	return nil
}

// Offset reports the index of the first visible result row.
func (c *Composer) Offset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scroll.Offset()
}

// warm decodes every image the next frame could need before the
// surface lock is taken, so a slow decode never stalls the other
// redraw path.
func (c *Composer) warm(entries []markup.Entry, highlight int) {
	lx := markup.NewLexer(c.font)
	warmText := func(text string) {
		lx.Reset()
		for text != "" {
			tok, rest := lx.Next(text, 1<<30)
			if rest == text {
				break
			}
			text = rest
			if tok.Kind == markup.Image {
				c.images.Get(tok.Text)
			}
		}
	}
	for _, e := range entries {
		warmText(e.Text)
	}
	if highlight >= len(entries) {
		highlight = len(entries) - 1
	}
	if highlight >= 0 && highlight < len(entries) {
		warmText(entries[highlight].Desc)
	}
}

func (c *Composer) drawResults(entries []markup.Entry, highlight int) {
	count := len(entries)
	offset, displayCount, highlight := c.scroll.Reconcile(count, highlight, c.capacity())

	height := c.geo.LineHeight * (count + 1)
	if height > c.geo.MaxHeight {
		height = c.geo.MaxHeight
	}

	hasDesc := count > 0 && entries[highlight].Desc != ""
	if c.win != nil {
		if c.geo.AutoCenter {
			pos := c.geo.Pos
			if hasDesc {
				pos = c.geo.PosWithDesc
			}
			c.win.Reposition(pos.X, pos.Y)
		}
		width := c.geo.Width
		if hasDesc {
			width += c.geo.DescWidth
		}
		c.win.Resize(width, height)
	}

	if hasDesc {
		// The pane box grows with the full result count even when the
		// window is clamped shorter; overflow paints below the
		// visible area.
		c.pane.Rect = image.Rect(c.geo.Width+2, 0,
			c.geo.Width+c.geo.DescWidth, c.geo.LineHeight*(count+1))
		c.pane.Draw(c.screen, entries[highlight].Desc, c.highlightFg, c.highlightBg)
	}

	for i, row := offset, 1; i < offset+displayCount; i, row = i+1, row+1 {
		e := entries[i]
		switch {
		case !e.IsSelectable():
			c.line.DrawRow(c.screen, row, e.Text, c.titleFg, c.titleBg)
		case i == highlight:
			c.line.DrawRow(c.screen, row, e.Text, c.highlightFg, c.highlightBg)
		default:
			c.line.DrawRow(c.screen, row, e.Text, c.resultFg, c.resultBg)
		}
	}
}

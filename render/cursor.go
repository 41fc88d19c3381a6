package render

// Cursor tracks the pen position during layout. X is the horizontal
// position shared by text and images. Y anchors text runs while ImageY
// anchors image tops; the two verticals advance in lock-step on line
// breaks but diverge when an image stacks content below itself.
type Cursor struct {
	X      int
	Y      int
	ImageY int
}

// Advance moves the pen right after placing a token.
func (c *Cursor) Advance(dx int) {
	c.X += dx
}

// NewLine resets the pen to the left margin and moves both verticals
// down one line.
func (c *Cursor) NewLine(left, lineHeight int) {
	c.X = left
	c.Y += lineHeight
	c.ImageY += lineHeight
}

// CenterOffset returns the extra left offset that centers content of
// contentWidth within availWidth. The offset is relative to the current
// pen position, so availWidth is the remaining width, not the full line.
// Content wider than the available space stays at the pen position.
func CenterOffset(contentWidth, availWidth int) int {
	if contentWidth >= availWidth {
		return 0
	}
	return (availWidth - contentWidth) / 2
}

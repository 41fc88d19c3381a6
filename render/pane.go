package render

import (
	"image"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/beaconmenu/beacon/draw"
	"github.com/beaconmenu/beacon/markup"
)

// Pane lays a markup stream into the description box anchored to the
// right of the result rows. Unlike a row, a pane wraps: explicit break
// tokens and horizontal overflow both start a new line. Content past
// the bottom of the box is painted below the visible surface rather
// than clipped; the box height is the caller's problem.
type Pane struct {
	Display    draw.Display
	Font       draw.Font
	BoldFont   draw.Font
	Images     *ImageCache
	Rect       image.Rectangle
	LineHeight int
	LineGap    int // inset of rule endpoints from the pane edges
	RuleColor  draw.Image
	Log        *log.Logger
}

func (p *Pane) logger() *log.Logger {
	if p.Log != nil {
		return p.Log
	}
	return log.Default()
}

// Draw paints the whole pane: background first, then the token stream.
func (p *Pane) Draw(dst draw.Image, text string, fg, bg draw.Image) {
	dst.Draw(p.Rect, bg, nil, image.ZP)

	left := p.Rect.Min.X
	cur := Cursor{X: left, Y: p.Rect.Min.Y, ImageY: p.Rect.Min.Y}
	lx := markup.NewLexer(p.Font)

	for text != "" {
		tok, rest := lx.Next(text, p.Rect.Max.X-cur.X)
		if rest == text {
			// Nothing fit. Wrap if we are mid-line, otherwise the
			// pane is narrower than one glyph and we drop a rune to
			// guarantee progress.
			if cur.X > left {
				cur.NewLine(left, p.LineHeight)
				continue
			}
			_, size := utf8.DecodeRuneInString(text)
			text = text[size:]
			continue
		}
		text = rest

		switch tok.Kind {
		case markup.Text:
			font := p.Font
			if tok.Mods.Bolded() && p.BoldFont != nil {
				font = p.BoldFont
			}
			w := font.StringWidth(tok.Text)
			if tok.Mods.Centered() {
				cur.X += CenterOffset(w, p.Rect.Max.X-cur.X)
			}
			dst.Bytes(image.Pt(cur.X, cur.Y), fg, image.ZP, font, []byte(tok.Text))
			cur.Advance(w)

		case markup.Image:
			p.drawImage(dst, tok, &cur)

		case markup.Break:
			cur.NewLine(left, p.LineHeight)

		case markup.Rule:
			// A rule sits half a line below the current text and
			// reserves double vertical space to separate sections.
			cur.X = left
			cur.Y += p.LineHeight / 2
			rule := image.Rect(left+p.LineGap, cur.Y, p.Rect.Max.X-p.LineGap, cur.Y+1)
			dst.Draw(rule, p.RuleColor, nil, image.ZP)
			cur.Y += p.LineHeight
			cur.ImageY += 2 * p.LineHeight
		}

		// Wrap before the pen gets within one line height of the
		// right edge, so the next token has room to start.
		if cur.X+p.LineHeight > p.Rect.Max.X {
			cur.NewLine(left, p.LineHeight)
		}
	}
}

// drawImage fits an image into the remaining pane box, paints it at
// the image cursor, and stacks following content below it. Text after
// an image continues beside it only until the next wrap.
func (p *Pane) drawImage(dst draw.Image, tok markup.Token, cur *Cursor) {
	if p.Display == nil || p.Images == nil {
		return
	}
	cached := p.Images.Get(tok.Text)
	if cached.Err != nil {
		p.logger().Warn("skipping pane image", "path", tok.Text, "err", cached.Err)
		return
	}

	maxW := p.Rect.Max.X - cur.X
	maxH := p.Rect.Max.Y - cur.ImageY
	if maxW <= 0 || maxH <= 0 {
		return
	}
	w, h := Fit(cached.Width, cached.Height, maxW, maxH)
	if tok.Mods.Centered() {
		// Images center against the full pane width, not the
		// remaining width text centering uses.
		cur.X += CenterOffset(w, p.Rect.Dx())
	}

	img, err := allocDrawImage(p.Display, cached.Img, w, h)
	if err != nil {
		p.logger().Warn("allocating pane image", "path", tok.Text, "err", err)
		return
	}
	defer img.Free()
	dst.Draw(image.Rect(cur.X, cur.ImageY, cur.X+w, cur.ImageY+h), img, nil, image.ZP)

	cur.ImageY += h
	cur.Y = cur.ImageY
	cur.Advance(w)
}

package render

import (
	"image"

	"github.com/charmbracelet/log"

	"github.com/beaconmenu/beacon/draw"
	"github.com/beaconmenu/beacon/markup"
)

// Pixel gap kept between the cursor and the left edge when a long
// query scrolls the text under it.
const cursorMargin = 3

// Vertical bleed of the bar cursor above and below the glyph box.
const cursorPad = 2

// LineRenderer paints one horizontal row of the window: the query line
// at the top or one result row below it. Rows are fixed-height slots;
// content that does not fit is truncated, never wrapped.
type LineRenderer struct {
	Display    draw.Display
	Font       draw.Font
	BoldFont   draw.Font
	Images     *ImageCache
	Width      int
	LineHeight int
	Pad        int // left padding before the first glyph
	CursorBar  bool
	Log        *log.Logger
}

func (lr *LineRenderer) logger() *log.Logger {
	if lr.Log != nil {
		return lr.Log
	}
	return log.Default()
}

// rowRect is the full-width slot for row (row 0 is the query line).
func (lr *LineRenderer) rowRect(row int) image.Rectangle {
	return image.Rect(0, row*lr.LineHeight, lr.Width, (row+1)*lr.LineHeight)
}

// textTop is the y position that vertically centers a glyph run of the
// given font inside a row slot.
func (lr *LineRenderer) textTop(row int, font draw.Font) int {
	pad := (lr.LineHeight - font.Height()) / 2
	if pad < 0 {
		pad = 0
	}
	return row*lr.LineHeight + pad
}

// DrawQuery paints the editable query line into row 0 of dst. The
// cursor is a byte index into text. Long queries right-align so the
// tail stays visible while typing; if that would push the cursor off
// the left edge, the line shifts right instead so the cursor wins.
func (lr *LineRenderer) DrawQuery(dst draw.Image, text string, cursor int, fg, bg draw.Image) {
	dst.Draw(lr.rowRect(0), bg, nil, image.ZP)

	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}

	x := lr.Pad
	cursorX := lr.Font.StringWidth(text[:cursor])
	if full := lr.Font.StringWidth(text); full > lr.Width {
		x = lr.Width - full
	}
	cursorX += x
	if cursorX < 0 {
		x -= cursorX - cursorMargin
		cursorX = 0
	}

	textY := lr.textTop(0, lr.Font)
	dst.Bytes(image.Pt(x, textY), fg, image.ZP, lr.Font, []byte(text))

	if lr.CursorBar {
		bar := image.Rect(cursorX+2, textY-cursorPad, cursorX+3, textY+lr.Font.Height()+cursorPad)
		dst.Draw(bar, fg, nil, image.ZP)
	} else {
		dst.Bytes(image.Pt(cursorX, textY), fg, image.ZP, lr.Font, []byte("_"))
	}
}

// DrawRow paints one result row. Row text is markup: bold and center
// modifiers apply, inline images are fitted to the row height, and
// break or rule tokens are ignored because a row has no vertical room.
func (lr *LineRenderer) DrawRow(dst draw.Image, row int, text string, fg, bg draw.Image) {
	dst.Draw(lr.rowRect(row), bg, nil, image.ZP)

	cur := Cursor{X: lr.Pad, Y: lr.textTop(row, lr.Font), ImageY: row * lr.LineHeight}
	lx := markup.NewLexer(lr.Font)
	for text != "" {
		tok, rest := lx.Next(text, lr.Width-cur.X)
		if rest == text {
			// Out of horizontal room; the row truncates here.
			break
		}
		text = rest

		switch tok.Kind {
		case markup.Break, markup.Rule:
			// No vertical room inside a row.
		case markup.Image:
			cur.Advance(lr.drawInlineImage(dst, tok, cur))
		case markup.Text:
			cur.Advance(lr.drawStyledText(dst, tok, &cur, fg))
		}
	}
}

func (lr *LineRenderer) drawStyledText(dst draw.Image, tok markup.Token, cur *Cursor, fg draw.Image) int {
	font := lr.Font
	if tok.Mods.Bolded() && lr.BoldFont != nil {
		font = lr.BoldFont
	}
	w := font.StringWidth(tok.Text)
	if tok.Mods.Centered() {
		cur.X += CenterOffset(w, lr.Width-cur.X)
	}
	dst.Bytes(image.Pt(cur.X, cur.Y), fg, image.ZP, font, []byte(tok.Text))
	return w
}

// drawInlineImage fits an image into the remaining row space and
// paints it at the row top. Returns the horizontal advance.
func (lr *LineRenderer) drawInlineImage(dst draw.Image, tok markup.Token, cur Cursor) int {
	if lr.Display == nil || lr.Images == nil {
		return 0
	}
	cached := lr.Images.Get(tok.Text)
	if cached.Err != nil {
		lr.logger().Warn("skipping row image", "path", tok.Text, "err", cached.Err)
		return 0
	}

	avail := lr.Width - cur.X
	if avail <= 0 {
		return 0
	}
	w, h := Fit(cached.Width, cached.Height, avail, lr.LineHeight)
	if tok.Mods.Centered() {
		cur.X += CenterOffset(w, avail)
	}

	img, err := allocDrawImage(lr.Display, cached.Img, w, h)
	if err != nil {
		lr.logger().Warn("allocating row image", "path", tok.Text, "err", err)
		return 0
	}
	defer img.Free()
	dst.Draw(image.Rect(cur.X, cur.ImageY, cur.X+w, cur.ImageY+h), img, nil, image.ZP)
	return w
}

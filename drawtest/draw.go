// Package drawtest provides mock draw.Display implementations that record
// their paint operations so rendering tests can assert on them.
package drawtest

import (
	"fmt"
	"image"
	"unicode/utf8"

	"github.com/beaconmenu/beacon/draw"
)

var _ = draw.Display((*mockDisplay)(nil))

// GettableDrawOps display implementations can provide a list of the
// executed draw ops.
type GettableDrawOps interface {
	DrawOps() []string
	Clear()
}

// mockDisplay implements draw.Display.
type mockDisplay struct {
	drawops     []string
	screenimage draw.Image
}

// NewDisplay returns a mock draw.Display whose screen image has the
// given rectangle.
func NewDisplay(r image.Rectangle) draw.Display {
	md := &mockDisplay{}
	md.screenimage = newimageimpl(md, fmt.Sprintf("screen-%dx%d", r.Dx(), r.Dy()), draw.Notacolor, r)
	return md
}

func (d *mockDisplay) ScreenImage() draw.Image {
	return d.screenimage
}

func (d *mockDisplay) White() draw.Image {
	return newimageimpl(d, "white", draw.White, image.Rectangle{})
}

func (d *mockDisplay) Black() draw.Image {
	return newimageimpl(d, "black", draw.Black, image.Rectangle{})
}

func (d *mockDisplay) InitKeyboard() *draw.Keyboardctl { return &draw.Keyboardctl{} }
func (d *mockDisplay) InitMouse() *draw.Mousectl       { return &draw.Mousectl{} }

func (d *mockDisplay) Font() draw.Font {
	return NewFont(13, 10)
}

func (d *mockDisplay) OpenFont(name string) (draw.Font, error) {
	return NewFont(13, 10), nil
}

func (d *mockDisplay) AllocImage(r image.Rectangle, pix draw.Pix, repl bool, val draw.Color) (draw.Image, error) {
	return &mockImage{
		d:    d,
		r:    r,
		c:    val,
		repl: repl,
	}, nil
}

func (d *mockDisplay) Attach(ref int) error { return nil }
func (d *mockDisplay) Flush() error         { return nil }
func (d *mockDisplay) ScaleSize(n int) int  { return n }

func (d *mockDisplay) DrawOps() []string { return d.drawops }
func (d *mockDisplay) Clear()            { d.drawops = nil }

var _ = draw.Image((*mockImage)(nil))

// mockImage implements draw.Image.
type mockImage struct {
	r    image.Rectangle
	d    *mockDisplay
	n    string
	c    draw.Color
	repl bool
}

// newimageimpl creates a new mockImage. Use Notacolor for the situation
// where the name of the image takes precedence.
func newimageimpl(d *mockDisplay, name string, c draw.Color, r image.Rectangle) draw.Image {
	return &mockImage{
		r: r,
		d: d,
		c: c,
		n: name,
	}
}

// NewImage returns a mock draw.Image with the given bounds.
func NewImage(display draw.Display, name string, r image.Rectangle) draw.Image {
	d := display.(*mockDisplay)
	return newimageimpl(d, name, draw.Notacolor, r)
}

func (i *mockImage) Display() draw.Display { return i.d }
func (i *mockImage) Pix() draw.Pix         { return 0 }
func (i *mockImage) R() image.Rectangle    { return i.r }

func (i *mockImage) Draw(r image.Rectangle, src, mask draw.Image, p1 image.Point) {
	srcname := "nil"
	if msrc, ok := src.(*mockImage); ok {
		srcname = msrc.N()
	}

	var op string
	if msrc, ok := src.(*mockImage); ok && msrc.repl {
		// A tiled colour source fills the rectangle.
		op = fmt.Sprintf("fill %v %s", r, srcname)
	} else {
		op = fmt.Sprintf("blit %v src: %s sp: %v", r, srcname, p1)
	}
	i.d.drawops = append(i.d.drawops, op)
}

func (i *mockImage) Bytes(pt image.Point, src draw.Image, sp image.Point, f draw.Font, b []byte) image.Point {
	srcname := "nil"
	if msrc, ok := src.(*mockImage); ok {
		srcname = msrc.N()
	}

	op := fmt.Sprintf("string %q atpoint: %v fill: %s", string(b), pt, srcname)
	i.d.drawops = append(i.d.drawops, op)

	return pt.Add(image.Pt(f.BytesWidth(b), 0))
}

func (i *mockImage) Free() error { return nil }

func (i *mockImage) Load(r image.Rectangle, data []byte) (int, error) {
	i.d.drawops = append(i.d.drawops, fmt.Sprintf("load %v bytes: %d", r, len(data)))
	return len(data), nil
}

// N returns a nice name for the image colour.
func (i *mockImage) N() string {
	name := i.n
	if i.c != draw.Notacolor {
		name = NiceColourName(i.c)
	}
	if i.repl {
		name += ",tiled"
	}
	return name
}

// NiceColourName maps the handful of colours used in tests to readable names.
func NiceColourName(c draw.Color) string {
	switch c {
	case draw.White:
		return "White"
	case draw.Black:
		return "Black"
	}
	return fmt.Sprintf("color(%x)", uint32(c))
}

var _ = draw.Font((*mockFont)(nil))

// mockFont implements draw.Font and mocks as a fixed width font.
type mockFont struct {
	width, height int
}

// NewFont returns a draw.Font that mocks a fixed-width font.
func NewFont(width, height int) draw.Font {
	return &mockFont{
		width:  width,
		height: height,
	}
}

func (f *mockFont) Name() string             { return "mock-fixed" }
func (f *mockFont) Height() int              { return f.height }
func (f *mockFont) BytesWidth(b []byte) int  { return f.width * utf8.RuneCount(b) }
func (f *mockFont) RunesWidth(r []rune) int  { return f.width * len(r) }
func (f *mockFont) StringWidth(s string) int { return f.width * utf8.RuneCountInString(s) }

package draw

import "testing"

// The display's default font is the one resolved by Init from the
// $font environment or the font passed on the command line; the
// wrapper must hand back that font, not open a new one.
func TestDisplayFontWrapsDefaultFont(t *testing.T) {
	inner := &drawFont{Height: 13}
	d := &displayImpl{&drawDisplay{DefaultFont: inner}}

	f, ok := d.Font().(*fontImpl)
	if !ok {
		t.Fatalf("Font() = %T, want *fontImpl", d.Font())
	}
	if f.drawFont != inner {
		t.Error("Font() does not wrap the display's default font")
	}
	if got := f.Height(); got != 13 {
		t.Errorf("Height() = %d, want 13", got)
	}
}

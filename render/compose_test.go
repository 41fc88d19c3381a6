package render

import (
	"fmt"
	"image"
	"testing"

	"github.com/beaconmenu/beacon/draw"
	"github.com/beaconmenu/beacon/drawtest"
	"github.com/beaconmenu/beacon/markup"
)

type fakeWindow struct {
	calls []string
}

func (w *fakeWindow) Resize(width, height int) {
	w.calls = append(w.calls, fmt.Sprintf("resize %dx%d", width, height))
}

func (w *fakeWindow) Reposition(x, y int) {
	w.calls = append(w.calls, fmt.Sprintf("move (%d,%d)", x, y))
}

func testComposer(t *testing.T) (*Composer, *fakeWindow, drawtest.GettableDrawOps) {
	t.Helper()
	display := drawtest.NewDisplay(image.Rect(0, 0, 500, 220))
	win := &fakeWindow{}
	c, err := New(
		WithDisplay(display),
		WithWindowControl(win),
		WithFont(drawtest.NewFont(10, 14)),
		WithGeometry(Geometry{
			Width:       200,
			LineHeight:  20,
			DescWidth:   300,
			MaxHeight:   120, // five result rows under the query line
			Pad:         4,
			LineGap:     5,
			Pos:         image.Pt(50, 50),
			PosWithDesc: image.Pt(20, 50),
		}),
		WithPalette(Palette{
			QueryFg: draw.Black, QueryBg: draw.White,
			ResultFg: draw.Black, ResultBg: draw.White,
			HighlightFg: draw.White, HighlightBg: draw.Black,
			TitleFg: draw.Black, TitleBg: draw.White,
			Rule: draw.Black,
		}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, win, display.(drawtest.GettableDrawOps)
}

func selectable(n int) []markup.Entry {
	entries := make([]markup.Entry, n)
	for i := range entries {
		entries[i] = markup.Entry{Text: fmt.Sprintf("e%d", i), Action: fmt.Sprintf("run%d", i)}
	}
	return entries
}

func TestRedrawOrdering(t *testing.T) {
	c, _, rec := testComposer(t)
	c.Redraw("q", 1, selectable(10), 7)

	ops := rec.DrawOps()
	query := opIndex(t, ops, `string "q" atpoint:`)
	prev := query
	// Highlight at 7 scrolls the window to offset 3; rows paint in
	// ascending order after the query line.
	for i := 3; i <= 9; i++ {
		at := opIndex(t, ops, fmt.Sprintf(`string "e%d" atpoint:`, i))
		if at < prev {
			t.Errorf("row e%d painted out of order at op %d", i, at)
		}
		prev = at
	}
}

func TestRedrawRowPlacement(t *testing.T) {
	c, _, rec := testComposer(t)
	c.Redraw("q", 1, selectable(3), 0)

	ops := rec.DrawOps()
	// Offset 0: e0 in row 1, e2 in row 3, each 20px apart with the
	// text centered in its slot.
	opIndex(t, ops, `string "e0" atpoint: (4,23)`)
	opIndex(t, ops, `string "e1" atpoint: (4,43)`)
	opIndex(t, ops, `string "e2" atpoint: (4,63)`)
}

func TestRedrawColorSelection(t *testing.T) {
	c, _, rec := testComposer(t)
	entries := selectable(3)
	entries[1].Action = "" // section title
	c.Redraw("q", 0, entries, 2)

	ops := rec.DrawOps()
	opIndex(t, ops, `string "e0" atpoint: (4,23) fill: Black,tiled`)
	opIndex(t, ops, `string "e1" atpoint: (4,43) fill: Black,tiled`)
	opIndex(t, ops, `string "e2" atpoint: (4,63) fill: White,tiled`)
}

func TestRedrawGeometryWithoutDesc(t *testing.T) {
	c, win, _ := testComposer(t)
	c.Redraw("q", 0, selectable(2), 0)

	// Two entries need three lines; no pane, so the narrow width.
	want := "resize 200x60"
	if len(win.calls) != 1 || win.calls[0] != want {
		t.Errorf("window calls = %v, want [%s]", win.calls, want)
	}
}

func TestRedrawGeometryClampsHeight(t *testing.T) {
	c, win, _ := testComposer(t)
	c.Redraw("q", 0, selectable(50), 0)

	want := "resize 200x120"
	if len(win.calls) != 1 || win.calls[0] != want {
		t.Errorf("window calls = %v, want [%s]", win.calls, want)
	}
}

func TestRedrawOpensDescPane(t *testing.T) {
	c, win, rec := testComposer(t)
	entries := selectable(2)
	entries[1].Desc = "about e1"
	c.Redraw("q", 0, entries, 1)

	want := "resize 500x60"
	if len(win.calls) != 1 || win.calls[0] != want {
		t.Errorf("window calls = %v, want [%s]", win.calls, want)
	}
	ops := rec.DrawOps()
	// Pane background spans from the row column to the full width.
	opIndex(t, ops, "fill (202,0)-(500,60) Black,tiled")
	opIndex(t, ops, `string "about e1" atpoint: (202,0) fill: White,tiled`)
}

func TestRedrawAutoCenterRepositions(t *testing.T) {
	c, win, _ := testComposer(t)
	c.geo.AutoCenter = true

	entries := selectable(2)
	c.Redraw("q", 0, entries, 0)
	entries[0].Desc = "d"
	c.Redraw("q", 0, entries, 0)

	want := []string{"move (50,50)", "resize 200x60", "move (20,50)", "resize 500x60"}
	if len(win.calls) != len(want) {
		t.Fatalf("window calls = %v, want %v", win.calls, want)
	}
	for i := range want {
		if win.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, win.calls[i], want[i])
		}
	}
}

func TestRedrawQueryOnlyTouchesQueryLine(t *testing.T) {
	c, win, rec := testComposer(t)
	c.Redraw("q", 1, selectable(3), 0)
	rec.Clear()
	win.calls = nil

	c.RedrawQuery("qu", 2)
	ops := rec.DrawOps()
	if ops[0] != "fill (0,0)-(200,20) White,tiled" {
		t.Fatalf("first op %q, want query background fill", ops[0])
	}
	for _, op := range ops {
		if op == "fill (0,20)-(200,40) White,tiled" {
			t.Errorf("query redraw repainted a result row: %v", ops)
		}
	}
	if len(win.calls) != 0 {
		t.Errorf("query redraw requested geometry %v", win.calls)
	}
}

func TestNewRequiresDisplay(t *testing.T) {
	if _, err := New(WithFont(drawtest.NewFont(10, 14))); err == nil {
		t.Error("New without a display returned nil error")
	}
}

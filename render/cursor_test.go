package render

import "testing"

func TestCursorNewLine(t *testing.T) {
	c := Cursor{X: 120, Y: 40, ImageY: 20}
	c.NewLine(8, 20)
	if c.X != 8 || c.Y != 60 || c.ImageY != 40 {
		t.Errorf("after NewLine got %+v, want {X:8 Y:60 ImageY:40}", c)
	}
}

func TestCursorAdvance(t *testing.T) {
	c := Cursor{X: 10}
	c.Advance(35)
	if c.X != 45 || c.Y != 0 || c.ImageY != 0 {
		t.Errorf("after Advance got %+v, want only X moved to 45", c)
	}
}

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		name           string
		content, avail int
		want           int
	}{
		{name: "centers in remaining space", content: 40, avail: 100, want: 30},
		{name: "odd remainder rounds down", content: 41, avail: 100, want: 29},
		{name: "content fills space", content: 100, avail: 100, want: 0},
		{name: "content wider than space", content: 150, avail: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenterOffset(tt.content, tt.avail); got != tt.want {
				t.Errorf("CenterOffset(%d, %d) = %d, want %d", tt.content, tt.avail, got, tt.want)
			}
		})
	}
}

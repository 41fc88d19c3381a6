package main

import (
	"unicode"
	"unicode/utf8"

	"github.com/beaconmenu/beacon/draw"
	"github.com/beaconmenu/beacon/markup"
)

// key dispatches one keyboard rune. Returns true when the session is
// over.
func (a *app) key(r rune) bool {
	switch r {
	case 0x1b: // Esc
		return true
	case '\n', '\r':
		return a.enter()
	case draw.KeyUp:
		a.moveHighlight(-1)
	case draw.KeyDown:
		a.moveHighlight(1)
	case draw.KeyPageUp:
		a.moveHighlight(-a.pageSize())
	case draw.KeyPageDown:
		a.moveHighlight(a.pageSize())
	case draw.KeyLeft:
		a.moveCursor(-1)
	case draw.KeyRight:
		a.moveCursor(1)
	case draw.KeyHome:
		a.setCursor(0)
	case draw.KeyEnd:
		a.setCursor(-1)
	case '\b', 0x7f:
		a.editQuery(func(q string, cur int) (string, int) {
			return deleteRuneBefore(q, cur)
		})
	case 0x15: // ^U clears the query
		a.editQuery(func(string, int) (string, int) {
			return "", 0
		})
	default:
		if unicode.IsGraphic(r) {
			a.editQuery(func(q string, cur int) (string, int) {
				return insertRune(q, cur, r)
			})
		}
	}
	return false
}

func (a *app) pageSize() int {
	return a.cfg.Window.MaxHeight/a.cfg.Window.LineHeight - 1
}

// enter launches the highlighted action. Titles and empty result sets
// swallow the keypress.
func (a *app) enter() bool {
	a.mu.Lock()
	var action string
	if a.highlight >= 0 && a.highlight < len(a.entries) {
		action = a.entries[a.highlight].Action
	}
	a.mu.Unlock()

	if action == "" {
		return false
	}
	a.launch(action)
	return true
}

// editQuery applies an edit to the query, tells the handler, and
// repaints the query line.
func (a *app) editQuery(edit func(string, int) (string, int)) {
	a.mu.Lock()
	a.query, a.cursor = edit(a.query, a.cursor)
	query, cursor := a.query, a.cursor
	a.mu.Unlock()

	if err := a.proc.WriteQuery(query); err != nil {
		a.log.Error("sending query", "err", err)
	}
	a.composer.RedrawQuery(query, cursor)
}

// moveCursor shifts the cursor by delta runes without changing the
// query; only the query line repaints.
func (a *app) moveCursor(delta int) {
	a.mu.Lock()
	a.cursor = moveCursorRunes(a.query, a.cursor, delta)
	query, cursor := a.query, a.cursor
	a.mu.Unlock()

	a.composer.RedrawQuery(query, cursor)
}

// setCursor jumps to the start (0) or end (-1) of the query.
func (a *app) setCursor(pos int) {
	a.mu.Lock()
	if pos < 0 {
		a.cursor = len(a.query)
	} else {
		a.cursor = pos
	}
	query, cursor := a.query, a.cursor
	a.mu.Unlock()

	a.composer.RedrawQuery(query, cursor)
}

func (a *app) moveHighlight(delta int) {
	a.mu.Lock()
	a.highlight = stepSelectable(a.entries, a.highlight, delta)
	entries, highlight := a.entries, a.highlight
	a.mu.Unlock()

	a.composer.RedrawResults(entries, highlight)
}

// insertRune inserts r at the byte-index cursor and returns the new
// query and cursor.
func insertRune(q string, cursor int, r rune) (string, int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(q) {
		cursor = len(q)
	}
	s := string(r)
	return q[:cursor] + s + q[cursor:], cursor + len(s)
}

// deleteRuneBefore removes the rune ending at the cursor.
func deleteRuneBefore(q string, cursor int) (string, int) {
	if cursor <= 0 || cursor > len(q) {
		return q, cursor
	}
	_, size := utf8.DecodeLastRuneInString(q[:cursor])
	return q[:cursor-size] + q[cursor:], cursor - size
}

// moveCursorRunes shifts a byte-index cursor by delta runes, clamping
// at the query bounds.
func moveCursorRunes(q string, cursor, delta int) int {
	for delta > 0 && cursor < len(q) {
		_, size := utf8.DecodeRuneInString(q[cursor:])
		cursor += size
		delta--
	}
	for delta < 0 && cursor > 0 {
		_, size := utf8.DecodeLastRuneInString(q[:cursor])
		cursor -= size
		delta++
	}
	return cursor
}

// stepSelectable moves the highlight by delta rows, then keeps walking
// in the same direction past titles until it lands on a selectable
// entry. When none exists in that direction the highlight stays put.
func stepSelectable(entries []markup.Entry, cur, delta int) int {
	if len(entries) == 0 || delta == 0 {
		return cur
	}
	dir := 1
	if delta < 0 {
		dir = -1
	}
	i := cur + delta
	if i < 0 {
		i = 0
	}
	if i >= len(entries) {
		i = len(entries) - 1
	}
	for ; i >= 0 && i < len(entries); i += dir {
		if entries[i].IsSelectable() {
			return i
		}
	}
	return cur
}

// firstSelectable clamps want into the list and nudges it to the
// nearest selectable entry, preferring the one after it.
func firstSelectable(entries []markup.Entry, want int) int {
	if len(entries) == 0 {
		return 0
	}
	if want >= len(entries) {
		want = len(entries) - 1
	}
	if want < 0 {
		want = 0
	}
	if entries[want].IsSelectable() {
		return want
	}
	for d := 1; d < len(entries); d++ {
		if j := want + d; j < len(entries) && entries[j].IsSelectable() {
			return j
		}
		if j := want - d; j >= 0 && entries[j].IsSelectable() {
			return j
		}
	}
	return want
}

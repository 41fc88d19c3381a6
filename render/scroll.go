package render

// Window keeps the scroll offset of the result list across redraws.
// The offset is the only layout state that survives between frames;
// count and highlight are supplied fresh by the caller on every
// reconcile because the result list can change under it at any time.
type Window struct {
	offset int
}

// Offset returns the index of the first visible entry.
func (w *Window) Offset() int { return w.offset }

// Reconcile computes the new first-visible index so that the highlight
// stays inside the viewport with minimal movement. It returns the new
// offset, the number of rows to draw, and the highlight clamped into
// the list bounds. The rules, in order:
//
//  1. clamp a highlight pointing past a just-shrunk list
//  2. a list that fits entirely is always shown from the top, which
//     also recovers from a stale offset left by a longer list
//  3. clamp an offset that would expose past the end of the list
//  4. highlight moved below the window: it becomes the last visible row
//  5. highlight moved above the window: it becomes the first visible row
//
// The end-of-list clamp is applied before the direction rules so that a
// stale offset and an out-of-window highlight reconcile in one pass.
func (w *Window) Reconcile(count, highlight, capacity int) (offset, displayCount, clamped int) {
	if count <= 0 {
		w.offset = 0
		return 0, 0, 0
	}
	if capacity < 1 {
		capacity = 1
	}
	if highlight >= count {
		highlight = count - 1
	}
	if highlight < 0 {
		highlight = 0
	}

	displayCount = count
	if displayCount > capacity {
		displayCount = capacity
	}

	if count <= capacity {
		w.offset = 0
		return w.offset, displayCount, highlight
	}

	if count-capacity < w.offset {
		w.offset = count - capacity
	}
	if w.offset+displayCount < highlight+1 {
		w.offset = highlight - (displayCount - 1)
		displayCount = count - w.offset
	} else if w.offset > highlight {
		w.offset = highlight
	}
	return w.offset, displayCount, highlight
}

package markup

import (
	"fmt"
	"strings"
)

// Entry is one result record supplied by the handler script. Text and
// Desc hold markup; Action is the shell command run when the entry is
// chosen. An entry without an action is a section title: it is drawn in
// the title colors and is never highlighted.
type Entry struct {
	Text   string
	Action string
	Desc   string
}

// IsSelectable reports whether the entry can be highlighted and run.
func (e Entry) IsSelectable() bool { return e.Action != "" }

// record parser states
const (
	stClosed = iota // between records
	stText          // inside {, reading text
	stAction        // after first |, reading action
	stDesc          // after second |, reading description
)

// ParseEntries parses one line of handler output into entries. Records
// look like {text|action|description}; action and description are
// optional. Backslash escapes a literal {, |, } or backslash. Characters
// between records are ignored.
func ParseEntries(line string) ([]Entry, error) {
	var entries []Entry
	var cur Entry
	var b strings.Builder
	mode := stClosed

	flush := func() {
		switch mode {
		case stText:
			cur.Text = b.String()
		case stAction:
			cur.Action = b.String()
		case stDesc:
			cur.Desc = b.String()
		}
		b.Reset()
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			switch line[i+1] {
			case '{', '|', '}', '\\':
				if mode != stClosed {
					b.WriteByte(line[i+1])
				}
				i++
				continue
			}
		}
		switch c {
		case '{':
			if mode != stClosed {
				return nil, fmt.Errorf("markup: unexpected { at index %d", i)
			}
			cur = Entry{}
			mode = stText
		case '|':
			switch mode {
			case stClosed:
				return nil, fmt.Errorf("markup: unexpected | at index %d", i)
			case stText, stAction:
				flush()
				mode++
			default:
				// A third | is literal description text.
				b.WriteByte(c)
			}
		case '}':
			if mode == stClosed {
				return nil, fmt.Errorf("markup: unexpected } at index %d", i)
			}
			flush()
			mode = stClosed
			entries = append(entries, cur)
		default:
			if mode != stClosed {
				b.WriteByte(c)
			}
		}
	}
	return entries, nil
}

package markup

import (
	"strings"
	"unicode/utf8"
)

// Measurer reports the pixel width of a string. draw.Font satisfies it.
type Measurer interface {
	StringWidth(s string) int
}

// maxModDepth bounds the modifier nesting a line can open. Pushes past
// the limit are dropped, so runaway nesting keeps the deepest state.
const maxModDepth = 8

// Lexer scans one logical line of markup into Tokens. Text runs are cut
// so that their measured width stays within the available pixels passed
// to Next; the unconsumed remainder is returned for the caller to lex
// again once it has moved to a fresh line.
//
// The lexer carries the modifier state across tokens of the same line:
// %C and %B push onto a small stack, a bare % pops back to the previous
// state. Reset must be called between lines.
type Lexer struct {
	font  Measurer
	mods  [maxModDepth]ModSet
	depth int
}

// NewLexer returns a Lexer measuring text runs with font.
func NewLexer(font Measurer) *Lexer {
	return &Lexer{font: font}
}

// Reset clears the modifier stack for a new line.
func (l *Lexer) Reset() {
	l.depth = 0
}

// current is the modifier set in effect for the next token.
func (l *Lexer) current() ModSet {
	if l.depth == 0 {
		return 0
	}
	return l.mods[l.depth-1]
}

func (l *Lexer) push(m ModSet) {
	if l.depth < maxModDepth {
		l.mods[l.depth] = m
		l.depth++
	}
}

func (l *Lexer) pop() {
	if l.depth > 0 {
		l.depth--
	}
}

// Next scans the next token from text, keeping text runs within avail
// pixels. It returns the token and the unconsumed remainder. When the
// next run does not fit at all, Next returns an empty Text token and
// the input unchanged; callers detect the lack of progress and wrap or
// stop. An empty input yields an empty Text token and "".
func (l *Lexer) Next(text string, avail int) (Token, string) {
	if text == "" {
		return Token{Kind: Text, Mods: l.current()}, ""
	}

	if strings.HasPrefix(text, "%") && len(text) > 1 {
		switch text[1] {
		case 'I':
			// %Ipath% — the path is raw, never painted, so it is not
			// subject to the width budget.
			rest := text[2:]
			path := rest
			if i := strings.IndexByte(rest, '%'); i >= 0 {
				path = rest[:i]
				rest = rest[i+1:]
			} else {
				rest = ""
			}
			// The closing % belongs to the image directive; the
			// surrounding modifier state is untouched.
			return Token{Kind: Image, Text: path, Mods: l.current()}, rest
		case 'N':
			return Token{Kind: Break, Mods: l.current()}, text[2:]
		case 'L':
			return Token{Kind: Rule, Mods: l.current()}, text[2:]
		case 'C':
			l.push(l.current() | Center)
			run, rest := l.scanRun(text[2:], avail, "")
			return Token{Kind: Text, Text: run, Mods: l.current()}, rest
		case 'B':
			l.push(l.current() | Bold)
			run, rest := l.scanRun(text[2:], avail, "")
			return Token{Kind: Text, Text: run, Mods: l.current()}, rest
		case '\\':
			// %\ undoes an accidental directive character; the
			// backslash is skipped and the % pops as usual.
			l.pop()
			run, rest := l.scanRun(text[2:], avail, "")
			return Token{Kind: Text, Text: run, Mods: l.current()}, rest
		default:
			// Bare % returns to the previous modifier state.
			l.pop()
			run, rest := l.scanRun(text[1:], avail, "")
			return Token{Kind: Text, Text: run, Mods: l.current()}, rest
		}
	}

	// \% paints a literal percent; the run continues past it.
	if strings.HasPrefix(text, `\%`) {
		run, rest := l.scanRun(text[2:], avail, "%")
		if run == "%" && rest == text[2:] && avail < l.font.StringWidth("%") {
			// Not even the escaped percent fits.
			return Token{Kind: Text, Mods: l.current()}, text
		}
		return Token{Kind: Text, Text: run, Mods: l.current()}, rest
	}

	run, rest := l.scanRun(text, avail, "")
	if run == "" && rest == text {
		// Width-starved: signal no progress so the caller can wrap.
		return Token{Kind: Text, Mods: l.current()}, text
	}
	return Token{Kind: Text, Text: run, Mods: l.current()}, rest
}

// scanRun consumes runes from text until the end of input, a % directive,
// a \% escape, or the measured width of prefix+consumed would exceed
// avail. It returns the consumed run (including prefix) and the remainder.
func (l *Lexer) scanRun(text string, avail int, prefix string) (string, string) {
	var b strings.Builder
	b.WriteString(prefix)
	width := 0
	if prefix != "" {
		width = l.font.StringWidth(prefix)
	}

	i := 0
	for i < len(text) {
		if text[i] == '%' {
			break
		}
		if text[i] == '\\' && i+1 < len(text) && text[i+1] == '%' {
			break
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		w := l.font.StringWidth(string(r))
		if width+w > avail {
			break
		}
		width += w
		b.WriteRune(r)
		i += size
	}
	return b.String(), text[i:]
}

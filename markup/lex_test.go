package markup

import (
	"strings"
	"testing"

	"github.com/beaconmenu/beacon/drawtest"
)

// lexAll drains the lexer over text with a fixed width budget per call.
func lexAll(t *testing.T, text string, avail int) []Token {
	t.Helper()
	lx := NewLexer(drawtest.NewFont(10, 14))
	var toks []Token
	for text != "" {
		tok, rest := lx.Next(text, avail)
		if rest == text {
			t.Fatalf("lexer made no progress at %q", text)
		}
		toks = append(toks, tok)
		text = rest
	}
	return toks
}

func TestLexerPlainText(t *testing.T) {
	toks := lexAll(t, "hello world", 1000)
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	if toks[0].Kind != Text || toks[0].Text != "hello world" || toks[0].Mods != 0 {
		t.Errorf("got %+v, want plain text token", toks[0])
	}
}

func TestLexerModifiers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Token
	}{
		{
			name: "bold run then pop",
			in:   "%Bbold% normal",
			want: []Token{
				{Kind: Text, Text: "bold", Mods: Bold},
				{Kind: Text, Text: " normal", Mods: 0},
			},
		},
		{
			name: "nested center and bold",
			in:   "%Chi%Byo% z",
			want: []Token{
				{Kind: Text, Text: "hi", Mods: Center},
				{Kind: Text, Text: "yo", Mods: Center | Bold},
				{Kind: Text, Text: " z", Mods: Center},
			},
		},
		{
			name: "line break and rule",
			in:   "a%Nb%Lc",
			want: []Token{
				{Kind: Text, Text: "a"},
				{Kind: Break},
				{Kind: Text, Text: "b"},
				{Kind: Rule},
				{Kind: Text, Text: "c"},
			},
		},
		{
			name: "image keeps surrounding modifiers",
			in:   "%Cx %I/tmp/pic.png%y",
			want: []Token{
				{Kind: Text, Text: "x ", Mods: Center},
				{Kind: Image, Text: "/tmp/pic.png", Mods: Center},
				{Kind: Text, Text: "y", Mods: Center},
			},
		},
		{
			name: "escaped percent is literal",
			in:   `50\% off`,
			want: []Token{
				{Kind: Text, Text: "50"},
				{Kind: Text, Text: "% off"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexAll(t, tt.in, 1000)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexerWidthSplitsRun(t *testing.T) {
	// The mock font is 10px per rune, so 35px fits three runes.
	lx := NewLexer(drawtest.NewFont(10, 14))
	tok, rest := lx.Next("abcdef", 35)
	if tok.Text != "abc" {
		t.Errorf("got %q, want %q", tok.Text, "abc")
	}
	if rest != "def" {
		t.Errorf("rest = %q, want %q", rest, "def")
	}
}

func TestLexerWidthStarvedMakesNoProgress(t *testing.T) {
	lx := NewLexer(drawtest.NewFont(10, 14))
	tok, rest := lx.Next("abc", 5)
	if rest != "abc" {
		t.Errorf("rest = %q, want input unchanged", rest)
	}
	if tok.Text != "" {
		t.Errorf("token text = %q, want empty", tok.Text)
	}
}

func TestLexerUnterminatedImage(t *testing.T) {
	lx := NewLexer(drawtest.NewFont(10, 14))
	tok, rest := lx.Next("%I/tmp/pic.png", 1000)
	if tok.Kind != Image || tok.Text != "/tmp/pic.png" {
		t.Errorf("got %+v, want image token", tok)
	}
	if rest != "" {
		t.Errorf("rest = %q, want empty", rest)
	}
}

// Handler output is untrusted; nesting past the modifier stack depth
// must saturate, not crash.
func TestLexerDeepNestingSaturates(t *testing.T) {
	lx := NewLexer(drawtest.NewFont(10, 14))
	text := strings.Repeat("%C", 12) + "x"
	var last Token
	for text != "" {
		tok, rest := lx.Next(text, 1000)
		if rest == text {
			t.Fatalf("lexer made no progress at %q", text)
		}
		last = tok
		text = rest
	}
	if last.Text != "x" || !last.Mods.Centered() {
		t.Errorf("got %+v, want centered %q", last, "x")
	}
}

func TestLexerResetClearsModifiers(t *testing.T) {
	lx := NewLexer(drawtest.NewFont(10, 14))
	lx.Next("%Bx", 1000)
	lx.Reset()
	tok, _ := lx.Next("y", 1000)
	if tok.Mods != 0 {
		t.Errorf("after Reset got mods %v, want none", tok.Mods)
	}
}

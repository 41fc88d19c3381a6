package markup

import "testing"

func TestParseEntries(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Entry
	}{
		{
			name: "single full record",
			in:   "{Firefox|firefox|Web browser}",
			want: []Entry{{Text: "Firefox", Action: "firefox", Desc: "Web browser"}},
		},
		{
			name: "text only title",
			in:   "{Applications}",
			want: []Entry{{Text: "Applications"}},
		},
		{
			name: "action without description",
			in:   "{Terminal|xterm}",
			want: []Entry{{Text: "Terminal", Action: "xterm"}},
		},
		{
			name: "multiple records with junk between",
			in:   "{a|1}  ignored {b|2|two}",
			want: []Entry{
				{Text: "a", Action: "1"},
				{Text: "b", Action: "2", Desc: "two"},
			},
		},
		{
			name: "escaped delimiters",
			in:   `{a \{b\} \| c\\|run}`,
			want: []Entry{{Text: `a {b} | c\`, Action: "run"}},
		},
		{
			name: "pipe inside description is literal",
			in:   "{a|1|x|y}",
			want: []Entry{{Text: "a", Action: "1", Desc: "x|y"}},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntries(tt.in)
			if err != nil {
				t.Fatalf("ParseEntries(%q) error: %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseEntriesSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "nested open brace", in: "{a{b}"},
		{name: "stray pipe", in: "a|b"},
		{name: "stray close brace", in: "}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEntries(tt.in); err == nil {
				t.Errorf("ParseEntries(%q) = nil error, want syntax error", tt.in)
			}
		})
	}
}

func TestEntryIsSelectable(t *testing.T) {
	if (Entry{Text: "title"}).IsSelectable() {
		t.Error("entry without action reported selectable")
	}
	if !(Entry{Text: "x", Action: "run"}).IsSelectable() {
		t.Error("entry with action reported unselectable")
	}
}

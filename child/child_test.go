package child

import (
	"strings"
	"testing"

	"github.com/beaconmenu/beacon/markup"
)

func TestReadResults(t *testing.T) {
	input := "{Firefox|firefox|Web browser}{Terminal|xterm}\n" +
		"{Applications}{Editor|vi}\n"

	var sets [][]markup.Entry
	err := ReadResults(strings.NewReader(input), nil, func(entries []markup.Entry) {
		sets = append(sets, entries)
	})
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}

	if len(sets) != 2 {
		t.Fatalf("got %d result sets, want 2", len(sets))
	}
	if len(sets[0]) != 2 || sets[0][0].Text != "Firefox" || sets[0][1].Action != "xterm" {
		t.Errorf("first set = %+v", sets[0])
	}
	if len(sets[1]) != 2 || sets[1][0].IsSelectable() {
		t.Errorf("second set = %+v, want leading title entry", sets[1])
	}
}

func TestReadResultsDropsMalformedLines(t *testing.T) {
	input := "{ok|run}\n" +
		"stray } brace\n" +
		"{still ok|run2}\n"

	var sets [][]markup.Entry
	err := ReadResults(strings.NewReader(input), nil, func(entries []markup.Entry) {
		sets = append(sets, entries)
	})
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("got %d result sets, want malformed line dropped", len(sets))
	}
	if sets[1][0].Action != "run2" {
		t.Errorf("second set = %+v", sets[1])
	}
}

func TestCloseReapsHandlerOnEOF(t *testing.T) {
	p, err := Spawn("cat", nil, nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if err := p.WriteQuery("hello"); err != nil {
		t.Fatalf("WriteQuery: %v", err)
	}
	// cat exits as soon as Close drops its stdin.
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestReadResultsEmptyLineClearsResults(t *testing.T) {
	var sets [][]markup.Entry
	err := ReadResults(strings.NewReader("\n"), nil, func(entries []markup.Entry) {
		sets = append(sets, entries)
	})
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if len(sets) != 1 || len(sets[0]) != 0 {
		t.Errorf("got %v, want one empty result set", sets)
	}
}

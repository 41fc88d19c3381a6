package main

import (
	"os"
	"os/exec"
	"os/signal"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/beaconmenu/beacon/child"
	"github.com/beaconmenu/beacon/config"
	"github.com/beaconmenu/beacon/draw"
	"github.com/beaconmenu/beacon/history"
	"github.com/beaconmenu/beacon/markup"
	"github.com/beaconmenu/beacon/render"
)

// app ties the input loop, the handler process and the composer
// together. The mutex guards the query and result state shared between
// the keyboard path and the handler-output path; the drawing surface
// has its own lock inside the composer.
type app struct {
	cfg      *config.Config
	display  draw.Display
	composer *render.Composer
	proc     *child.Proc
	store    *history.Store
	log      *log.Logger

	mu        sync.Mutex
	query     string
	cursor    int // byte index into query
	entries   []markup.Entry
	highlight int
}

func (a *app) run(kbd *draw.Keyboardctl, mouse *draw.Mousectl, errch <-chan error) error {
	results := make(chan []markup.Entry)
	go func() {
		defer close(results)
		if err := a.proc.Results(func(entries []markup.Entry) {
			results <- entries
		}); err != nil {
			a.log.Error("reading handler output", "err", err)
		}
	}()

	// An empty query primes the handler for its initial result set.
	if err := a.proc.WriteQuery(""); err != nil {
		return err
	}
	a.composer.RedrawQuery("", 0)

	csignal := make(chan os.Signal, 1)
	signal.Notify(csignal, hangupSignals...)
	if len(ignoreSignals) > 0 {
		signal.Ignore(ignoreSignals...)
	}

	for {
		select {
		case r := <-kbd.C:
			if done := a.key(r); done {
				return nil
			}
		case <-mouse.C:
			// Mouse input is ignored but the channel must drain.
		case <-mouse.Resize:
			if err := a.composer.Resized(); err != nil {
				return err
			}
			a.redrawAll()
		case entries, ok := <-results:
			if !ok {
				a.log.Info("handler exited")
				return nil
			}
			a.setResults(entries)
		case err := <-errch:
			return err
		case sig := <-csignal:
			a.log.Info("shutting down", "signal", sig)
			return nil
		}
	}
}

// setResults swaps in a fresh result set from the handler and repaints
// the rows. The highlight carries over between sets, nudged onto a
// selectable entry when it lands on a title.
func (a *app) setResults(entries []markup.Entry) {
	a.mu.Lock()
	a.entries = entries
	a.highlight = firstSelectable(entries, a.highlight)
	highlight := a.highlight
	a.mu.Unlock()

	a.composer.RedrawResults(entries, highlight)
}

func (a *app) redrawAll() {
	a.mu.Lock()
	query, cursor := a.query, a.cursor
	entries, highlight := a.entries, a.highlight
	a.mu.Unlock()

	a.composer.Redraw(query, cursor, entries, highlight)
}

// launch runs the selected action through the shell, records it, and
// leaves the action as a detached child.
func (a *app) launch(action string) {
	if a.store != nil {
		if err := a.store.Record(action); err != nil {
			a.log.Warn("recording launch", "action", action, "err", err)
		}
	}

	cmd := exec.Command("/bin/sh", "-c", action)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		a.log.Error("launching action", "action", action, "err", err)
		return
	}
	cmd.Process.Release()
	a.log.Info("launched", "action", action)
}

// Package child runs the user's handler process and speaks its line
// protocol: each query is written to the handler's stdin followed by a
// newline, and each line the handler prints to stdout is one complete
// result set replacing the previous one.
package child

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"

	"github.com/beaconmenu/beacon/markup"
)

// Handler output lines can carry inline images and long descriptions;
// allow up to 1MB per line.
const maxLineBytes = 1 << 20

// Proc is a running handler process.
type Proc struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	log    *log.Logger
}

// Spawn starts the handler at path with the given extra arguments. The
// handler's stderr passes through to ours so script errors stay
// visible.
func Spawn(path string, args []string, logger *log.Logger) (*Proc, error) {
	if logger == nil {
		logger = log.Default()
	}
	cmd := exec.Command(path, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("handler stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("handler stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting handler %s: %w", path, err)
	}

	logger.Debug("spawned handler", "path", path, "pid", cmd.Process.Pid)
	return &Proc{cmd: cmd, stdin: stdin, stdout: stdout, log: logger}, nil
}

// WriteQuery sends the current query to the handler. Called on every
// keystroke; the handler answers with a fresh result line whenever it
// wants.
func (p *Proc) WriteQuery(query string) error {
	if _, err := fmt.Fprintf(p.stdin, "%s\n", query); err != nil {
		return fmt.Errorf("writing query: %w", err)
	}
	return nil
}

// Results reads handler output until EOF, invoking fn with each parsed
// result set. Malformed lines are logged and dropped; the handler keeps
// running. Meant to run on its own goroutine.
func (p *Proc) Results(fn func([]markup.Entry)) error {
	return ReadResults(p.stdout, p.log, fn)
}

// closeGrace bounds how long Close waits for the handler to exit on
// its own after stdin closes.
const closeGrace = 2 * time.Second

// Close shuts the handler down: closing stdin signals EOF, and a
// script that keeps running past the grace period is killed.
func (p *Proc) Close() error {
	p.stdin.Close()

	done := make(chan error, 1)
	go func() { done <- p.cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(closeGrace):
		p.log.Warn("handler ignored stdin close, killing", "pid", p.cmd.Process.Pid)
		p.cmd.Process.Kill()
		return <-done
	}
}

// ReadResults parses one result set per line from r and hands each to
// fn. Returns on EOF or read error.
func ReadResults(r io.Reader, logger *log.Logger, fn func([]markup.Entry)) error {
	if logger == nil {
		logger = log.Default()
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Text()
		entries, err := markup.ParseEntries(line)
		if err != nil {
			logger.Warn("dropping malformed result line", "err", err)
			continue
		}
		logger.Debug("received results", "count", len(entries))
		fn(entries)
	}
	return scanner.Err()
}

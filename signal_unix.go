//go:build unix

package main

import (
	"os"
	"syscall"
)

// The handler's pipe closing must surface as an EOF on the read loop,
// not kill the process.
var ignoreSignals = []os.Signal{
	syscall.SIGPIPE,
	syscall.SIGTTIN,
	syscall.SIGTTOU,
	syscall.SIGTSTP,
}

var hangupSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGHUP,
}

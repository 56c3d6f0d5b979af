// Package zlog provides the package-level structured logger every other
// package in this module logs through, mirroring gnark's own internal
// logger package: a single zerolog.Logger, silent by default so importing
// this module as a library never writes to stderr unless a caller opts in.
package zlog

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(io.Discard).With().Timestamp().Logger()
)

// Logger returns the current package-level logger. Safe for concurrent use.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &log
}

// SetOutput redirects the package-level logger to w, at level. cmd/
// binaries call this once at startup; library code never does.
func SetOutput(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// EnableConsole switches the logger to zerolog's human-readable console
// writer, colorized when stderr is a terminal, at level. This is what
// cmd/plonk-demo calls so its output reads as a timeline rather than JSON.
func EnableConsole(level zerolog.Level) {
	out := colorable.NewColorable(os.Stderr)
	isTerm := isatty.IsTerminal(os.Stderr.Fd())
	w := zerolog.ConsoleWriter{Out: out, NoColor: !isTerm}
	SetOutput(w, level)
}

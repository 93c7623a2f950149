package core

import (
	"io"
	"log"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NewLogger returns a Logger writing timestamped lines to w
func NewLogger(w io.Writer) Logger {
	return log.New(w, "", log.LstdFlags)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}

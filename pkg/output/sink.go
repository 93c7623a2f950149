package output

import (
	"fmt"
	"io"
	"os"
)

// Sink is the destination of the encoded image: a file, or standard output
type Sink struct {
	io.Writer
	closer io.Closer
	Name   string // File path, or "stdout"
}

// OpenSink creates (truncating) the file at path. An empty path or "-" selects stdout.
func OpenSink(path string) (*Sink, error) {
	if path == "" || path == "-" {
		return &Sink{Writer: os.Stdout, Name: "stdout"}, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open output %s: %w", path, err)
	}
	return &Sink{Writer: file, closer: file, Name: path}, nil
}

// Close closes the underlying file. Closing a stdout sink is a no-op.
func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("failed to close output %s: %w", s.Name, err)
	}
	return nil
}

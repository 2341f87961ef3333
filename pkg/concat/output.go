package concat

import (
	"bufio"
	"fmt"
	"os"
)

// Sink is the buffered destination for the rendered byte stream: either an
// output file or stdout. Exactly one writer feeds it per run.
type Sink struct {
	w    *bufio.Writer
	file *os.File
}

// NewSink creates the output file, or wraps stdout when path is empty.
// Failure to create the file is fatal for the run.
func NewSink(path string) (*Sink, error) {
	if path == "" {
		return &Sink{w: bufio.NewWriter(os.Stdout)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return &Sink{w: bufio.NewWriter(f), file: f}, nil
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Close flushes buffered output and closes the underlying file, if any.
// Stdout is flushed but left open.
func (s *Sink) Close() error {
	err := s.w.Flush()
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

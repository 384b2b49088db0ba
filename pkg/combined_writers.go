package pkg

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter copies every write to all of its writers, e.g. stdout and
// the rotating log file. A failing writer does not stop the others.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{writers: writers}
}

func (cw *CombinedWriter) Len() int {
	return len(cw.writers)
}

// Write reports len(p) only when every writer took the whole of p.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	for i, w := range cw.writers {
		written, werr := w.Write(p)
		switch {
		case werr != nil:
			err = multierr.Append(err, fmt.Errorf("writer %d: %w", i, werr))
		case written < len(p):
			err = multierr.Append(err, fmt.Errorf("writer %d: %w", i, io.ErrShortWrite))
		}
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// SSEWriter streams the per-iteration SSE history as "iteration,sse" rows.
// Every row is flushed as soon as it is observed. The first write error is
// kept and returned by Close; later rows are dropped.
type SSEWriter struct {
	w   *bufio.Writer
	c   io.Closer
	err error
}

func NewSSEWriter(w io.Writer) *SSEWriter {
	s := &SSEWriter{w: bufio.NewWriter(w)}
	s.write("iteration,sse\n")
	return s
}

// CreateSSEFile creates path and returns an SSEWriter that closes it.
func CreateSSEFile(path string) (*SSEWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := NewSSEWriter(f)
	s.c = f
	return s, nil
}

// Observe appends one row. Its signature matches kmeans1d.Observer.
func (s *SSEWriter) Observe(iteration int, sse float64) {
	s.write(fmt.Sprintf("%d,%.6f\n", iteration, sse))
}

func (s *SSEWriter) write(row string) {
	if s.err != nil {
		return
	}
	if _, err := s.w.WriteString(row); err != nil {
		s.err = err
		return
	}
	s.err = s.w.Flush()
}

// Err returns the first write error, if any.
func (s *SSEWriter) Err() error { return s.err }

func (s *SSEWriter) Close() error {
	err := s.err
	if err == nil {
		err = s.w.Flush()
	}
	if s.c != nil {
		if cerr := s.c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

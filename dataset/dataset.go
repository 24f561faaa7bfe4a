// Package dataset reads and writes the one-value-per-line text files used
// around a clustering run.
//
// Input files hold one number per line. Blank lines are ignored and when a
// line holds several fields separated by ',', ';', spaces or tabs only the
// first one is used. Output files hold one value per line without a header,
// except the SSE history which starts with "iteration,sse".
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	ErrEmpty     = errors.New("no values")
	ErrMalformed = errors.New("malformed value")
)

const maxLineSize = 1 << 20

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t'
}

// Read parses every non-blank line of r into a float64. NaN and infinite
// values are malformed.
func Read(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 8192), maxLineSize)

	var values []float64
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.FieldsFunc(text, isSeparator)
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: line %d has no value", ErrMalformed, line)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformed, line, fields[0])
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: line %d: %q is not finite", ErrMalformed, line, fields[0])
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	return values, nil
}

// ReadFile is Read on the file at path.
func ReadFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

// WriteAssignments writes one cluster index per line.
func WriteAssignments(w io.Writer, assign []int) error {
	bw := bufio.NewWriter(w)
	for _, a := range assign {
		if _, err := fmt.Fprintf(bw, "%d\n", a); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCentroids writes one centroid per line with six decimals.
func WriteCentroids(w io.Writer, centroids []float64) error {
	bw := bufio.NewWriter(w)
	for _, c := range centroids {
		if _, err := fmt.Fprintf(bw, "%.6f\n", c); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile creates path and fills it with write.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

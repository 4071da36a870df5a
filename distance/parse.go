// SPDX-License-Identifier: MIT

// Package distance: MDPLIB text format.
//
// Format:
//
//	n k
//	i j d
//	i j d
//	...
//
// Indices are 0-based; every unordered pair appears at most once in
// well-formed files. Lines with fewer than three fields are skipped, extra
// fields are ignored. Blank lines before the header are skipped.
package distance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// maxPrealloc caps the pair buffer reserved from an untrusted header.
const maxPrealloc = 1 << 20

// Parse reads an MDPLIB instance from r.
// Syntax errors wrap ErrParse and carry the 1-based line number; value errors
// wrap the matching sentinel (ErrIndexOutOfRange, ErrNegativeDistance, ...).
func Parse(r io.Reader, opts ...Option) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		line   int
		n, k   int
		header bool
		pairs  []Pair
		fields []string
		err    error
	)
	for sc.Scan() {
		line++
		fields = strings.Fields(sc.Text())
		if !header {
			if len(fields) == 0 {
				continue
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: header needs \"n k\": %w", line, ErrParse)
			}
			if n, err = strconv.Atoi(fields[0]); err != nil {
				return nil, fmt.Errorf("line %d: n: %v: %w", line, err, ErrParse)
			}
			if k, err = strconv.Atoi(fields[1]); err != nil {
				return nil, fmt.Errorf("line %d: k: %v: %w", line, err, ErrParse)
			}
			if err = checkN(n); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if k < 0 || k > n {
				return nil, fmt.Errorf("line %d: k=%d n=%d: %w", line, k, n, ErrInvalidK)
			}
			header = true
			pairs = make([]Pair, 0, min(n*(n-1)/2, maxPrealloc))
			continue
		}
		if len(fields) < 3 {
			continue
		}

		var p Pair
		if p.I, err = strconv.Atoi(fields[0]); err != nil {
			return nil, fmt.Errorf("line %d: i: %v: %w", line, err, ErrParse)
		}
		if p.J, err = strconv.Atoi(fields[1]); err != nil {
			return nil, fmt.Errorf("line %d: j: %v: %w", line, err, ErrParse)
		}
		if p.D, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return nil, fmt.Errorf("line %d: d: %v: %w", line, err, ErrParse)
		}
		if p.I < 0 || p.I >= n || p.J < 0 || p.J >= n {
			return nil, fmt.Errorf("line %d: pair (%d,%d): %w", line, p.I, p.J, ErrIndexOutOfRange)
		}
		if err = checkValue(p.D); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		pairs = append(pairs, p)
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %v: %w", line, err, ErrParse)
	}
	if !header {
		return nil, fmt.Errorf("missing \"n k\" header: %w", ErrParse)
	}

	return NewFromPairs(n, k, pairs, opts...)
}

// Load parses the instance stored at path. The model name defaults to the
// file's base name; a WithName option overrides it.
func Load(path string, opts ...Option) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithName(filepath.Base(path)))
	all = append(all, opts...)

	m, err := Parse(f, all...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Write emits m in MDPLIB format: the header followed by every pair i<j.
func Write(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", m.n, m.k); err != nil {
		return err
	}

	buf := make([]byte, 0, 64)
	for i := 0; i < m.n; i++ {
		row := m.Row(i)
		for j := i + 1; j < m.n; j++ {
			buf = buf[:0]
			buf = strconv.AppendInt(buf, int64(i), 10)
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(j), 10)
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, row[j], 'g', -1, 64)
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

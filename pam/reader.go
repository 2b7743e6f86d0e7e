// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pam

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Row is a row-wise cluster record: an entity key followed by the
// identifiers of its members.
type Row struct {
	Entity string
	IDs    []string
}

// Pair is a pairwise clustering record relating two identifiers.
type Pair struct {
	A, B string
}

// lineReader returns tab-separated lines of a headerless table.
type lineReader struct {
	r    *bufio.Reader
	line int
	err  error
}

func newLineReader(r io.Reader) lineReader {
	return lineReader{r: bufio.NewReader(r)}
}

// next returns the fields of the next non-blank line.
func (lr *lineReader) next() ([]string, error) {
	for lr.err == nil {
		var l string
		l, lr.err = lr.r.ReadString('\n')
		if lr.err != nil && lr.err != io.EOF {
			return nil, fmt.Errorf("pam: read line %d: %w", lr.line+1, lr.err)
		}
		if len(l) == 0 {
			continue
		}
		lr.line++
		l = strings.TrimRight(l, "\r\n")
		if strings.TrimSpace(l) == "" {
			continue
		}
		return strings.Split(l, "\t"), nil
	}
	return nil, io.EOF
}

// RowReader reads Row records from a tab-separated table with no header.
// The first column holds the entity key and the remaining columns hold
// zero or more identifiers. Rows may be ragged.
type RowReader struct {
	lineReader

	// Malformed counts lines skipped for lacking an entity key.
	Malformed int
}

// NewRowReader returns a RowReader reading from r.
func NewRowReader(r io.Reader) *RowReader {
	return &RowReader{lineReader: newLineReader(r)}
}

// Read returns the next Row. Empty identifier cells are dropped. At the
// end of the input Read returns io.EOF.
func (r *RowReader) Read() (Row, error) {
	for {
		f, err := r.next()
		if err != nil {
			return Row{}, err
		}
		if f[0] == "" {
			r.Malformed++
			continue
		}
		row := Row{Entity: f[0]}
		for _, id := range f[1:] {
			if id != "" {
				row.IDs = append(row.IDs, id)
			}
		}
		return row, nil
	}
}

// ReadAll returns all remaining rows.
func (r *RowReader) ReadAll() ([]Row, error) {
	var rows []Row
	for {
		row, err := r.Read()
		if err != nil {
			if err == io.EOF {
				return rows, nil
			}
			return rows, err
		}
		rows = append(rows, row)
	}
}

// PairReader reads Pair records from a two column tab-separated table
// with no header.
type PairReader struct {
	lineReader

	// Malformed counts lines that did not have exactly two
	// non-empty fields.
	Malformed int
}

// NewPairReader returns a PairReader reading from r.
func NewPairReader(r io.Reader) *PairReader {
	return &PairReader{lineReader: newLineReader(r)}
}

// Read returns the next Pair. Lines with a single field are returned
// with an empty B and fields beyond the second are ignored; these and
// pairs with an empty field are counted as malformed. At the end of the
// input Read returns io.EOF.
func (r *PairReader) Read() (Pair, error) {
	f, err := r.next()
	if err != nil {
		return Pair{}, err
	}
	if len(f) != 2 || f[0] == "" || f[1] == "" {
		r.Malformed++
	}
	p := Pair{A: f[0]}
	if len(f) > 1 {
		p.B = f[1]
	}
	return p, nil
}

// ReadAll returns all remaining pairs.
func (r *PairReader) ReadAll() ([]Pair, error) {
	var pairs []Pair
	for {
		p, err := r.Read()
		if err != nil {
			if err == io.EOF {
				return pairs, nil
			}
			return pairs, err
		}
		pairs = append(pairs, p)
	}
}

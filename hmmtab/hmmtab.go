// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hmmtab reads the per-sequence tabular output of HMMER3 search
// programs, as written by the --tblout option of hmmscan and hmmsearch.
package hmmtab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// minFields is the number of fixed columns preceding the description.
const minFields = 18

// Score holds an E-value, bit score and bias triple.
type Score struct {
	EValue float64
	Score  float64
	Bias   float64
}

// Hit is a single line of HMMER3 tabular output.
type Hit struct {
	TargetName      string
	TargetAccession string
	QueryName       string
	QueryAccession  string

	Full Score // Full sequence.
	Best Score // Best scoring single domain.

	// Exp is the expected number of domains.
	Exp float64

	// Domain number estimations.
	Reg, Clu, Ov, Env, Dom, Rep, Inc int

	Description string
}

// FormatError is returned when a line cannot be parsed as a hit.
type FormatError struct {
	Line  int
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("hmmtab: line %d: %s", e.Line, e.Field)
	}
	return fmt.Sprintf("hmmtab: line %d: bad %s: %v", e.Line, e.Field, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Reader reads hits from HMMER3 tabular output.
type Reader struct {
	r    *bufio.Reader
	line int
	err  error
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Read returns the next hit. Comment lines starting with '#' and blank
// lines are skipped. At the end of the input Read returns io.EOF.
func (r *Reader) Read() (*Hit, error) {
	for r.err == nil {
		var l string
		l, r.err = r.r.ReadString('\n')
		if r.err != nil && r.err != io.EOF {
			return nil, fmt.Errorf("hmmtab: read line %d: %w", r.line+1, r.err)
		}
		if len(l) == 0 {
			continue
		}
		r.line++
		l = strings.TrimSpace(l)
		if l == "" || l[0] == '#' {
			continue
		}
		return parse(l, r.line)
	}
	return nil, io.EOF
}

// ReadAll returns all remaining hits.
func (r *Reader) ReadAll() ([]*Hit, error) {
	var hits []*Hit
	for {
		h, err := r.Read()
		if err != nil {
			if err == io.EOF {
				return hits, nil
			}
			return hits, err
		}
		hits = append(hits, h)
	}
}

func parse(l string, line int) (*Hit, error) {
	f := strings.Fields(l)
	if len(f) < minFields {
		return nil, &FormatError{Line: line, Field: fmt.Sprintf("too few fields: %d < %d", len(f), minFields)}
	}

	h := &Hit{
		TargetName:      f[0],
		TargetAccession: f[1],
		QueryName:       f[2],
		QueryAccession:  f[3],
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"full sequence E-value", &h.Full.EValue},
		{"full sequence score", &h.Full.Score},
		{"full sequence bias", &h.Full.Bias},
		{"best domain E-value", &h.Best.EValue},
		{"best domain score", &h.Best.Score},
		{"best domain bias", &h.Best.Bias},
		{"exp", &h.Exp},
	}
	for i, v := range floats {
		x, err := strconv.ParseFloat(f[4+i], 64)
		if err != nil {
			return nil, &FormatError{Line: line, Field: v.name, Err: err}
		}
		*v.dst = x
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"reg", &h.Reg},
		{"clu", &h.Clu},
		{"ov", &h.Ov},
		{"env", &h.Env},
		{"dom", &h.Dom},
		{"rep", &h.Rep},
		{"inc", &h.Inc},
	}
	for i, v := range ints {
		x, err := strconv.Atoi(f[11+i])
		if err != nil {
			return nil, &FormatError{Line: line, Field: v.name, Err: err}
		}
		*v.dst = x
	}

	h.Description = rest(l, minFields)
	return h, nil
}

// rest returns l with its first n white space separated fields removed.
// The description column is free text and keeps its internal spacing.
func rest(l string, n int) string {
	for i := 0; i < n; i++ {
		l = strings.TrimLeft(l, " \t")
		j := strings.IndexAny(l, " \t")
		if j < 0 {
			return ""
		}
		l = l[j:]
	}
	return strings.TrimSpace(l)
}

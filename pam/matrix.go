// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pam

import (
	"bufio"
	"io"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a binary entity by species presence/absence matrix. Rows
// hold entities and columns hold species. Only present cells are stored.
//
// Matrix satisfies mat.Matrix with present cells valued 1 and absent
// cells valued 0.
type Matrix struct {
	genes   []string
	species []string

	// present holds the sorted column indices of
	// the species present in each row.
	present [][]int
}

var _ mat.Matrix = (*Matrix)(nil)

// Assemble returns the presence/absence matrix of the relation r. The
// cost is proportional to the number of memberships in r.
func Assemble(r *Relation) *Matrix {
	m := &Matrix{
		genes:   r.Entities(),
		species: r.Species(),
		present: make([][]int, len(r.entities)),
	}
	col := make(map[string]int, len(m.species))
	for j, s := range m.species {
		col[s] = j
	}
	for i := range m.genes {
		if len(r.members[i]) == 0 {
			continue
		}
		p := make([]int, 0, len(r.members[i]))
		for s := range r.members[i] {
			p = append(p, col[s])
		}
		sort.Ints(p)
		m.present[i] = p
	}
	return m
}

// RowWise returns the presence/absence matrix of the row-wise table read
// from r, along with the Relation it was assembled from.
func RowWise(r io.Reader, sep string) (*Matrix, *Relation, error) {
	rows, err := NewRowReader(r).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	rel := FromRows(rows, sep)
	return Assemble(rel), rel, nil
}

// Pairwise returns the presence/absence matrix of the pairwise table read
// from r, along with the Relation it was assembled from.
func Pairwise(r io.Reader, sep, infix string) (*Matrix, *Relation, error) {
	pairs, err := NewPairReader(r).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	rel := FromPairs(pairs, sep, infix)
	return Assemble(rel), rel, nil
}

// Dims returns the number of entities and species in the matrix.
func (m *Matrix) Dims() (r, c int) { return len(m.genes), len(m.species) }

// At returns 1 if the entity of row i is present in the species of
// column j and 0 otherwise. At panics if i or j is out of range.
func (m *Matrix) At(i, j int) float64 {
	if uint(i) >= uint(len(m.genes)) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(len(m.species)) {
		panic(mat.ErrColAccess)
	}
	if m.has(i, j) {
		return 1
	}
	return 0
}

// T returns the species by entity transpose of the matrix.
func (m *Matrix) T() mat.Matrix { return mat.Transpose{Matrix: m} }

func (m *Matrix) has(i, j int) bool {
	p := m.present[i]
	k := sort.SearchInts(p, j)
	return k < len(p) && p[k] == j
}

// Genes returns the row labels of the matrix.
func (m *Matrix) Genes() []string {
	g := make([]string, len(m.genes))
	copy(g, m.genes)
	return g
}

// Species returns the column labels of the matrix.
func (m *Matrix) Species() []string {
	s := make([]string, len(m.species))
	copy(s, m.species)
	return s
}

// Count returns the number of species the entity of row i is present in.
func (m *Matrix) Count(i int) int { return len(m.present[i]) }

// Dense returns a dense copy of the matrix. Dense returns nil for a
// matrix with no rows or no columns since mat.Dense cannot be empty.
func (m *Matrix) Dense() *mat.Dense {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil
	}
	d := mat.NewDense(r, c, nil)
	for i, p := range m.present {
		for _, j := range p {
			d.Set(i, j, 1)
		}
	}
	return d
}

// Core returns the entities present in every species.
func (m *Matrix) Core() []string {
	if len(m.species) == 0 {
		return nil
	}
	return m.selectRows(func(p []int) bool { return len(p) == len(m.species) })
}

// Unique returns the entities present in exactly one species.
func (m *Matrix) Unique() []string {
	return m.selectRows(func(p []int) bool { return len(p) == 1 })
}

// Absent returns the entities present in no species.
func (m *Matrix) Absent() []string {
	return m.selectRows(func(p []int) bool { return len(p) == 0 })
}

// Specific returns the entities present in species s and in no other
// species.
func (m *Matrix) Specific(s string) []string {
	j := sort.SearchStrings(m.species, s)
	if j == len(m.species) || m.species[j] != s {
		return nil
	}
	return m.selectRows(func(p []int) bool { return len(p) == 1 && p[0] == j })
}

func (m *Matrix) selectRows(fn func([]int) bool) []string {
	var g []string
	for i, p := range m.present {
		if fn(p) {
			g = append(g, m.genes[i])
		}
	}
	return g
}

// WriteTo writes the matrix to w as a tab-separated table with a header
// row of GeneHeader followed by the species labels. Each following row
// holds an entity key and a 0 or 1 for each species.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	write := func(s string) error {
		c, err := bw.WriteString(s)
		n += int64(c)
		return err
	}

	if err := write(GeneHeader); err != nil {
		return n, err
	}
	for _, s := range m.species {
		if err := write("\t" + s); err != nil {
			return n, err
		}
	}
	if err := write("\n"); err != nil {
		return n, err
	}

	cells := make([]byte, 2*len(m.species)+1)
	for i, g := range m.genes {
		for j := range m.species {
			cells[2*j] = '\t'
			cells[2*j+1] = '0'
		}
		for _, j := range m.present[i] {
			cells[2*j+1] = '1'
		}
		cells[len(cells)-1] = '\n'
		if err := write(g); err != nil {
			return n, err
		}
		if err := write(string(cells)); err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

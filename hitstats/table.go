// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hitstats summarises HMMER3 search hits by gene and species.
package hitstats

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/biogo/store/llrb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/biogo/pangenome/hmmtab"
	"github.com/biogo/pangenome/pam"
)

// Observation is a gene seen in a species.
type Observation struct {
	Gene, Species string
}

// Observations returns an observation for each hit. The gene is the hit
// target name and the species is the species token of the query name.
// Hits with an empty species token are dropped.
func Observations(hits []*hmmtab.Hit) []Observation {
	obs := make([]Observation, 0, len(hits))
	for _, h := range hits {
		s := pam.Species(h.QueryName, pam.SpeciesSep)
		if s == "" {
			continue
		}
		obs = append(obs, Observation{Gene: h.TargetName, Species: s})
	}
	return obs
}

// Count is a labelled count.
type Count struct {
	Label string
	N     int
}

// SortCounts sorts c by descending count and then by label.
func SortCounts(c []Count) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].N != c[j].N {
			return c[i].N > c[j].N
		}
		return c[i].Label < c[j].Label
	})
}

type name string

func (n name) Compare(b llrb.Comparable) int {
	switch m := b.(name); {
	case n < m:
		return -1
	case n > m:
		return 1
	}
	return 0
}

// labels returns the distinct strings of l in lexical order.
func labels(l []string) []string {
	var t llrb.Tree
	for _, s := range l {
		t.Insert(name(s))
	}
	s := make([]string, 0, t.Len())
	t.Do(func(c llrb.Comparable) (done bool) {
		s = append(s, string(c.(name)))
		return
	})
	return s
}

func index(l []string) map[string]int {
	m := make(map[string]int, len(l))
	for i, s := range l {
		m[s] = i
	}
	return m
}

// Table is a gene by species table of observation counts, a crosstab of
// observations with genes and species in lexical order.
type Table struct {
	Genes   []string
	Species []string

	// Counts holds the number of observations of each gene
	// in each species. It is nil for an empty table.
	Counts *mat.Dense
}

// NewTable returns the count table of obs.
func NewTable(obs []Observation) *Table {
	g := make([]string, len(obs))
	s := make([]string, len(obs))
	for i, o := range obs {
		g[i] = o.Gene
		s[i] = o.Species
	}
	t := &Table{Genes: labels(g), Species: labels(s)}
	if len(obs) == 0 {
		return t
	}
	t.Counts = mat.NewDense(len(t.Genes), len(t.Species), nil)
	gi, si := index(t.Genes), index(t.Species)
	for _, o := range obs {
		i, j := gi[o.Gene], si[o.Species]
		t.Counts.Set(i, j, t.Counts.At(i, j)+1)
	}
	return t
}

// At returns the number of observations of gene g in species s.
func (t *Table) At(g, s string) int {
	i := sort.SearchStrings(t.Genes, g)
	j := sort.SearchStrings(t.Species, s)
	if i == len(t.Genes) || t.Genes[i] != g || j == len(t.Species) || t.Species[j] != s {
		return 0
	}
	return int(t.Counts.At(i, j))
}

// GeneTotals returns the number of observations of each gene, in the
// order of t.Genes.
func (t *Table) GeneTotals() []Count {
	c := make([]Count, len(t.Genes))
	for i, g := range t.Genes {
		c[i] = Count{Label: g, N: int(floats.Sum(mat.Row(nil, i, t.Counts)))}
	}
	return c
}

// SpeciesTotals returns the number of observations in each species, in
// the order of t.Species.
func (t *Table) SpeciesTotals() []Count {
	c := make([]Count, len(t.Species))
	for j, s := range t.Species {
		c[j] = Count{Label: s, N: int(floats.Sum(mat.Col(nil, j, t.Counts)))}
	}
	return c
}

// Subset returns the table restricted to the given genes. Species with
// no observations of those genes are dropped. Genes not in t are ignored.
func (t *Table) Subset(genes []string) *Table {
	keep := make(map[string]bool, len(genes))
	for _, g := range genes {
		keep[g] = true
	}
	sub := &Table{Genes: []string{}, Species: []string{}}
	var rows, cols []int
	for i, g := range t.Genes {
		if keep[g] {
			rows = append(rows, i)
			sub.Genes = append(sub.Genes, g)
		}
	}
	for j, s := range t.Species {
		for _, i := range rows {
			if t.Counts.At(i, j) != 0 {
				cols = append(cols, j)
				sub.Species = append(sub.Species, s)
				break
			}
		}
	}
	if len(rows) == 0 {
		return sub
	}
	sub.Counts = mat.NewDense(len(rows), len(cols), nil)
	for si, i := range rows {
		for sj, j := range cols {
			sub.Counts.Set(si, sj, t.Counts.At(i, j))
		}
	}
	return sub
}

// WriteCSV writes t to w as comma-separated values with a header row of
// "Gene" followed by the species labels.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	rec := append([]string{pam.GeneHeader}, t.Species...)
	if err := cw.Write(rec); err != nil {
		return err
	}
	for i, g := range t.Genes {
		rec = rec[:0]
		rec = append(rec, g)
		for j := range t.Species {
			rec = append(rec, strconv.Itoa(int(t.Counts.At(i, j))))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

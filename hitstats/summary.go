// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hitstats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/biogo/pangenome/hmmtab"
	"github.com/biogo/pangenome/pam"
)

// Summary holds gene and species statistics for a set of hits.
type Summary struct {
	// Hits is the number of hits assigned to a species and
	// Unassigned is the number of hits whose query name held
	// no species token.
	Hits       int
	Unassigned int

	// Table holds the hit counts of each gene in each species.
	Table *Table

	// Presence is the gene by species presence/absence matrix.
	Presence *pam.Matrix

	// PerGene and PerSpecies hold hit counts in descending
	// order and in species order respectively.
	PerGene    []Count
	PerSpecies []Count

	// GenesPerSpecies holds the number of distinct genes
	// found in each species in descending order.
	GenesPerSpecies []Count

	// Core holds the genes found in every species and
	// Single holds the genes found in one species only.
	Core   []string
	Single []string
}

// Summarise returns the summary of hits.
func Summarise(hits []*hmmtab.Hit) *Summary {
	obs := Observations(hits)
	s := &Summary{
		Hits:       len(obs),
		Unassigned: len(hits) - len(obs),
		Table:      NewTable(obs),
	}

	rel := pam.NewRelation()
	for _, o := range obs {
		rel.Add(o.Gene, o.Species)
	}
	s.Presence = pam.Assemble(rel)
	s.Core = s.Presence.Core()
	s.Single = s.Presence.Unique()

	s.PerGene = s.Table.GeneTotals()
	SortCounts(s.PerGene)
	s.PerSpecies = s.Table.SpeciesTotals()

	sp := s.Presence.Species()
	s.GenesPerSpecies = make([]Count, len(sp))
	for j, species := range sp {
		s.GenesPerSpecies[j] = Count{Label: species, N: int(floats.Sum(mat.Col(nil, j, s.Presence)))}
	}
	SortCounts(s.GenesPerSpecies)

	return s
}

// Genes returns the number of distinct genes.
func (s *Summary) Genes() int { return len(s.Table.Genes) }

// Species returns the number of distinct species.
func (s *Summary) Species() int { return len(s.Table.Species) }

// Fprint writes a text report of the summary to w.
func (s *Summary) Fprint(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Total number Genes: %d gene\n", s.Hits)
	if err != nil {
		return err
	}
	if s.Unassigned != 0 {
		_, err = fmt.Fprintf(w, "Hits without a species excluded: %d\n", s.Unassigned)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "Total number of Unique Genes: %d gene\n", s.Genes())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Total number of Species: %d\n", s.Species())
	if err != nil {
		return err
	}
	if n := len(s.GenesPerSpecies); n != 0 {
		most, fewest := s.GenesPerSpecies[0], s.GenesPerSpecies[n-1]
		_, err = fmt.Fprintf(w, "'%s' is the Species with the most number of genes: %d gene\n", most.Label, most.N)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "'%s' is the Species with the lowest number of genes: %d gene\n", fewest.Label, fewest.N)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "Number of Unique Genes Common across all Species: %d gene\n", len(s.Core))
	return err
}

var hitHeader = []string{
	"Target_Name",
	"Target_Accession",
	"Query_Name",
	"Query_Accession",
	"Full_E-value",
	"Full_Score",
	"Full_Bias",
	"Best_E-value",
	"Best_Score",
	"Best_Bias",
	"Exp",
	"Description",
}

// WriteHitsCSV writes hits to w as comma-separated values, one row per hit.
func WriteHitsCSV(w io.Writer, hits []*hmmtab.Hit) error {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	cw := csv.NewWriter(w)
	if err := cw.Write(hitHeader); err != nil {
		return err
	}
	for _, h := range hits {
		err := cw.Write([]string{
			h.TargetName,
			h.TargetAccession,
			h.QueryName,
			h.QueryAccession,
			f(h.Full.EValue),
			f(h.Full.Score),
			f(h.Full.Bias),
			f(h.Best.EValue),
			f(h.Best.Score),
			f(h.Best.Bias),
			f(h.Exp),
			h.Description,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

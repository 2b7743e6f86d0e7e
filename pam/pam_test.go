// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pam

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestSpecies(c *check.C) {
	for i, t := range []struct {
		id, sep string
		want    string
	}{
		{id: "speciesA$x1", sep: SpeciesSep, want: "speciesA"},
		{id: "a$b$c", sep: SpeciesSep, want: "a"},
		{id: "noseparator", sep: SpeciesSep, want: "noseparator"},
		{id: "$x", sep: SpeciesSep, want: ""},
		{id: "speciesA_prot_g1", sep: PairSpeciesSep, want: "speciesA"},
		{id: "GCA_000001.1_prot_g1", sep: PairSpeciesSep, want: "GCA"},
		{id: "abc", sep: "", want: "abc"},
		{id: "", sep: SpeciesSep, want: ""},
	} {
		c.Check(Species(t.id, t.sep), check.Equals, t.want, check.Commentf("Test %d", i))
	}
}

func (s *S) TestGene(c *check.C) {
	for i, t := range []struct {
		id, infix string
		want      string
	}{
		{id: "speciesA_prot_g1", infix: GeneInfix, want: "g1"},
		{id: "a_prot_b_prot_c", infix: GeneInfix, want: "c"},
		{id: "plain", infix: GeneInfix, want: "plain"},
		{id: "sp_prot_", infix: GeneInfix, want: ""},
		{id: "plain", infix: "", want: "plain"},
	} {
		c.Check(Gene(t.id, t.infix), check.Equals, t.want, check.Commentf("Test %d", i))
	}
}

func (s *S) TestRowReader(c *check.C) {
	r := NewRowReader(strings.NewReader("g1\ta$1\t\tb$2\r\n\n\t x$1\ng2\r\ng3\t\t\n"))
	rows, err := r.ReadAll()
	c.Assert(err, check.Equals, nil)
	c.Check(rows, check.DeepEquals, []Row{
		{Entity: "g1", IDs: []string{"a$1", "b$2"}},
		{Entity: "g2"},
		{Entity: "g3"},
	})
	c.Check(r.Malformed, check.Equals, 1)
}

func (s *S) TestPairReader(c *check.C) {
	r := NewPairReader(strings.NewReader("a_prot_1\tb_prot_2\nc_prot_3\n\nd_prot_4\te_prot_5\tf_prot_6\n"))
	pairs, err := r.ReadAll()
	c.Assert(err, check.Equals, nil)
	c.Check(pairs, check.DeepEquals, []Pair{
		{A: "a_prot_1", B: "b_prot_2"},
		{A: "c_prot_3"},
		{A: "d_prot_4", B: "e_prot_5"},
	})
	c.Check(r.Malformed, check.Equals, 2)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("broken") }

func (s *S) TestReadError(c *check.C) {
	_, _, err := RowWise(io.MultiReader(strings.NewReader("g1\ta$1\n"), errReader{}), SpeciesSep)
	c.Check(err, check.ErrorMatches, "pam: read line 2: broken")
	_, _, err = Pairwise(errReader{}, PairSpeciesSep, GeneInfix)
	c.Check(err, check.ErrorMatches, "pam: read line 1: broken")
}

func (s *S) TestRowWise(c *check.C) {
	for i, t := range []struct {
		in      string
		genes   []string
		species []string
		out     string
		dups    []string
	}{
		{
			in:      "g1\tspeciesA$x1\tspeciesB$y2\ng2\tspeciesA$x3\n",
			genes:   []string{"g1", "g2"},
			species: []string{"speciesA", "speciesB"},
			out:     "Gene\tspeciesA\tspeciesB\ng1\t1\t1\ng2\t1\t0\n",
		},
		{
			in:      "",
			genes:   []string{},
			species: []string{},
			out:     "Gene\n",
		},
		{
			in:      "g1\ng2\tsp$x\n",
			genes:   []string{"g1", "g2"},
			species: []string{"sp"},
			out:     "Gene\tsp\ng1\t0\ng2\t1\n",
		},
		{
			in:      "g1\t$x\t\n",
			genes:   []string{"g1"},
			species: []string{},
			out:     "Gene\ng1\n",
		},
		{
			in:      "c2\tzeta$1\talpha$2\talpha$3\r\nc1\tmu$9\n",
			genes:   []string{"c2", "c1"},
			species: []string{"alpha", "mu", "zeta"},
			out:     "Gene\talpha\tmu\tzeta\nc2\t1\t0\t1\nc1\t0\t1\t0\n",
		},
		{
			in:      "g1\ta$1\ng2\tb$1\ng1\tc$2\n",
			genes:   []string{"g1", "g2"},
			species: []string{"a", "b", "c"},
			out:     "Gene\ta\tb\tc\ng1\t1\t0\t1\ng2\t0\t1\t0\n",
			dups:    []string{"g1"},
		},
	} {
		m, rel, err := RowWise(strings.NewReader(t.in), SpeciesSep)
		c.Assert(err, check.Equals, nil, check.Commentf("Test %d", i))
		c.Check(m.Genes(), check.DeepEquals, t.genes, check.Commentf("Test %d", i))
		c.Check(m.Species(), check.DeepEquals, t.species, check.Commentf("Test %d", i))
		c.Check(rel.Duplicates, check.DeepEquals, t.dups, check.Commentf("Test %d", i))
		var buf bytes.Buffer
		n, err := m.WriteTo(&buf)
		c.Check(err, check.Equals, nil)
		c.Check(n, check.Equals, int64(buf.Len()))
		c.Check(buf.String(), check.Equals, t.out, check.Commentf("Test %d", i))
	}
}

func (s *S) TestPairwise(c *check.C) {
	const in = "speciesA_prot_g1\tspeciesB_prot_g2\n" +
		"speciesA_prot_g1\tspeciesB_prot_g2\n"
	m, rel, err := Pairwise(strings.NewReader(in), PairSpeciesSep, GeneInfix)
	c.Assert(err, check.Equals, nil)
	c.Check(rel.Len(), check.Equals, 2)
	c.Check(rel.Pairs(), check.DeepEquals, []Membership{
		{Entity: "g1", Species: "speciesA"},
		{Entity: "g2", Species: "speciesB"},
	})
	c.Check(rel.Has("g1", "speciesA"), check.Equals, true)
	c.Check(rel.Has("g1", "speciesB"), check.Equals, false)
	c.Check(rel.Has("g3", "speciesA"), check.Equals, false)
	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	c.Check(err, check.Equals, nil)
	c.Check(buf.String(), check.Equals, "Gene\tspeciesA\tspeciesB\ng1\t1\t0\ng2\t0\t1\n")
}

// cells returns the present cells of m keyed by entity.
func cells(m *Matrix) map[string][]string {
	got := make(map[string][]string)
	r, cols := m.Dims()
	for i := 0; i < r; i++ {
		g := m.Genes()[i]
		got[g] = []string{}
		for j := 0; j < cols; j++ {
			switch v := m.At(i, j); v {
			case 1:
				got[g] = append(got[g], m.Species()[j])
			case 0:
			default:
				panic("non-binary cell")
			}
		}
	}
	return got
}

func (s *S) TestPairwisePermutation(c *check.C) {
	lines := []string{
		"spA_prot_g1\tspB_prot_g1",
		"spC_prot_g2\tspA_prot_g3",
		"spB_prot_g2\tspB_prot_g2",
		"spA_prot_g1\tspC_prot_g4",
	}
	m1, rel1, err := Pairwise(strings.NewReader(strings.Join(lines, "\n")), PairSpeciesSep, GeneInfix)
	c.Assert(err, check.Equals, nil)
	rev := make([]string, len(lines))
	for i, l := range lines {
		rev[len(lines)-1-i] = l
	}
	m2, rel2, err := Pairwise(strings.NewReader(strings.Join(rev, "\n")), PairSpeciesSep, GeneInfix)
	c.Assert(err, check.Equals, nil)

	c.Check(m1.Species(), check.DeepEquals, []string{"spA", "spB", "spC"})
	c.Check(m2.Species(), check.DeepEquals, m1.Species())
	c.Check(rel1.Len(), check.Equals, rel2.Len())
	c.Check(cells(m1), check.DeepEquals, cells(m2))
	c.Check(cells(m1), check.DeepEquals, map[string][]string{
		"g1": {"spA", "spB"},
		"g2": {"spB", "spC"},
		"g3": {"spA"},
		"g4": {"spC"},
	})
}

func (s *S) TestPairwiseMalformed(c *check.C) {
	m, _, err := Pairwise(strings.NewReader("spA_prot_x\n\tspB_prot_y\nspC_prot_\tspB_prot_y\n"), PairSpeciesSep, GeneInfix)
	c.Assert(err, check.Equals, nil)
	c.Check(cells(m), check.DeepEquals, map[string][]string{
		"x": {"spA"},
		"y": {"spB"},
	})
	c.Check(m.Genes(), check.DeepEquals, []string{"x", "y"})
	c.Check(m.Species(), check.DeepEquals, []string{"spA", "spB"})
}

func (s *S) TestMatrixInterface(c *check.C) {
	m, rel, err := RowWise(strings.NewReader("g1\ta$1\tb$1\ng2\tb$2\ng3\n"), SpeciesSep)
	c.Assert(err, check.Equals, nil)
	r, cols := m.Dims()
	c.Check(r, check.Equals, 3)
	c.Check(cols, check.Equals, 2)
	c.Check(mat.Sum(m), check.Equals, float64(rel.Len()))
	c.Check(mat.Equal(m, mat.NewDense(3, 2, []float64{
		1, 1,
		0, 1,
		0, 0,
	})), check.Equals, true)
	c.Check(mat.Equal(m.Dense(), m), check.Equals, true)
	tr, tc := m.T().Dims()
	c.Check(tr, check.Equals, 2)
	c.Check(tc, check.Equals, 3)
	c.Check(m.T().At(1, 1), check.Equals, 1.0)
	c.Check(m.Count(0), check.Equals, 2)
	c.Check(func() { m.At(3, 0) }, check.PanicMatches, mat.ErrRowAccess.Error())
	c.Check(func() { m.At(0, 2) }, check.PanicMatches, mat.ErrColAccess.Error())

	empty := Assemble(NewRelation())
	c.Check(empty.Dense(), check.IsNil)
}

func (s *S) TestSetQueries(c *check.C) {
	const in = "core\ta$1\tb$1\tc$1\n" +
		"onlyA\ta$2\n" +
		"onlyC\tc$3\tc$4\n" +
		"pair\ta$5\tb$6\n" +
		"none\n"
	m, _, err := RowWise(strings.NewReader(in), SpeciesSep)
	c.Assert(err, check.Equals, nil)
	c.Check(m.Core(), check.DeepEquals, []string{"core"})
	c.Check(m.Unique(), check.DeepEquals, []string{"onlyA", "onlyC"})
	c.Check(m.Specific("c"), check.DeepEquals, []string{"onlyC"})
	c.Check(m.Specific("b"), check.IsNil)
	c.Check(m.Specific("missing"), check.IsNil)
	c.Check(m.Absent(), check.DeepEquals, []string{"none"})

	c.Check(Assemble(NewRelation()).Core(), check.IsNil)
}

func (s *S) TestOutputPath(c *check.C) {
	for i, t := range []struct {
		in, want string
	}{
		{in: "linclust_80c_80i_cluster.tsv", want: "linclust_80c_80i_presence_absence_matrix.tsv"},
		{in: filepath.Join("data", "run", "res_cluster.tsv"), want: filepath.Join("data", "run", "res_presence_absence_matrix.tsv")},
		{in: filepath.Join("data", "clusters.tsv"), want: filepath.Join("data", DefaultOutput)},
		{in: "_cluster.tsv", want: DefaultOutput},
		{in: "table.txt", want: DefaultOutput},
	} {
		c.Check(OutputPath(t.in), check.Equals, t.want, check.Commentf("Test %d", i))
	}
}

// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hitstats

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart dimensions.
const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
	barWidth    = 10
)

// BarChart renders counts as a bar chart and saves it to path. The image
// format is chosen by the path extension.
func BarChart(path, title, xLabel, yLabel string, counts []Count) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	if len(counts) != 0 {
		v := make(plotter.Values, len(counts))
		names := make([]string, len(counts))
		for i, c := range counts {
			v[i] = float64(c.N)
			names[i] = c.Label
		}
		bars, err := plotter.NewBarChart(v, vg.Points(barWidth))
		if err != nil {
			return fmt.Errorf("hitstats: %s: %w", title, err)
		}
		p.Add(bars)
		p.NominalX(names...)
	}

	return p.Save(chartWidth, chartHeight, path)
}

// Figure file names written by Charts.
const (
	TopGenesChart   = "Top_50_genes_count.png"
	SpeciesChart    = "Genes_count_by_species.png"
	TopSpeciesChart = "Top_10_Species_Genes_Count.png"
)

const (
	topGenes   = 50
	topSpecies = 10
)

// Charts writes the gene and species count charts of s into dir and
// returns the paths written.
func (s *Summary) Charts(dir string) ([]string, error) {
	top := make([]Count, len(s.PerSpecies))
	copy(top, s.PerSpecies)
	SortCounts(top)

	charts := []struct {
		file, title, x, y string
		counts            []Count
	}{
		{TopGenesChart, "Top 50 Genes Count", "Genes", "Genes Count", head(s.PerGene, topGenes)},
		{SpeciesChart, "Genes Count by Species", "Species", "Number of Genes", s.PerSpecies},
		{TopSpeciesChart, "Top 10 Species Genes Count", "", "Number of Genes", head(top, topSpecies)},
	}
	var paths []string
	for _, c := range charts {
		path := filepath.Join(dir, c.file)
		if err := BarChart(path, c.title, c.x, c.y, c.counts); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func head(c []Count, n int) []Count {
	if len(c) < n {
		return c
	}
	return c[:n]
}

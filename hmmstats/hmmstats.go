// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hmmstats summarises HMMER3 tabular output by gene and species.
//
// Gene names are taken from the hit target names and species from the
// "<species>$<rest>" query names. Written to the output directory are the
// parsed hit table, bar charts of hit counts by gene and by species, and
// count tables of the genes found in all species and in one species only.
// A text summary is printed to stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/biogo/pangenome/hitstats"
	"github.com/biogo/pangenome/hmmtab"
)

// Output file names.
const (
	hitTable    = "Parsed_hmmscan_tbl.csv"
	coreTable   = "Table_Genes_Count_Found_In_All_Species.csv"
	singleTable = "Table_Genes_Count_Found_In_One_Species_Only.csv"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command with the given arguments, printing the text
// summary to stdout and usage, progress and errors to stderr, and
// returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		inName  = fs.String("input", "", "Path to the input HMMER tabular file (required).")
		outDir  = fs.String("output", "", "Directory to save the output files (required).")
		noPlots = fs.Bool("noplots", false, "Do not render the bar charts.")
		help    = fs.Bool("help", false, "help prints this message.")
	)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *help {
		fs.Usage()
		return 0
	}
	if *inName == "" || *outDir == "" || fs.NArg() != 0 {
		fs.Usage()
		return 2
	}
	logger := log.New(stderr, "", log.LstdFlags)

	f, err := os.Open(*inName)
	if err != nil {
		logger.Printf("failed to open %q: %v", *inName, err)
		return 1
	}
	hits, err := hmmtab.NewReader(f).ReadAll()
	f.Close()
	if err != nil {
		logger.Printf("failed during read of %q: %v", *inName, err)
		return 1
	}
	fmt.Fprintf(stderr, "Read %d hits from %q.\n", len(hits), *inName)

	err = os.MkdirAll(*outDir, 0o755)
	if err != nil {
		logger.Printf("failed to create output directory: %v", err)
		return 1
	}

	err = create(filepath.Join(*outDir, hitTable), func(w io.Writer) error {
		return hitstats.WriteHitsCSV(w, hits)
	})
	if err != nil {
		logger.Print(err)
		return 1
	}

	sum := hitstats.Summarise(hits)
	if !*noPlots {
		paths, err := sum.Charts(*outDir)
		for _, p := range paths {
			fmt.Fprintf(stderr, "Figure saved: %q\n", p)
		}
		if err != nil {
			logger.Printf("failed to render chart: %v", err)
			return 1
		}
	}

	err = sum.Fprint(stdout)
	if err != nil {
		logger.Printf("failed to print summary: %v", err)
		return 1
	}

	for _, t := range []struct {
		name, desc string
		genes      []string
	}{
		{name: coreTable, desc: "Genes Found Across All Species", genes: sum.Core},
		{name: singleTable, desc: "Genes Found In One Species Only", genes: sum.Single},
	} {
		fmt.Fprintf(stderr, "... Saving csv Table %s\n", t.desc)
		sub := sum.Table.Subset(t.genes)
		err = create(filepath.Join(*outDir, t.name), sub.WriteCSV)
		if err != nil {
			logger.Print(err)
			return 1
		}
	}
	return 0
}

// create creates the named file and fills it using fn.
func create(name string, fn func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %q: %v", name, err)
	}
	err = fn(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to write %q: %v", name, err)
	}
	return f.Close()
}

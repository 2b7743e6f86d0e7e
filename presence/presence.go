// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// presence builds a species presence/absence matrix from a cluster table.
//
// The input is a tab-separated table with no header. Each row holds a
// cluster key followed by the members of the cluster, named
// "<species>$<rest>". The matrix is written beside the input, replacing
// a "_cluster.tsv" suffix with "_presence_absence_matrix.tsv", or to
// species_presence_absence_matrix.tsv when the input has another name.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/biogo/pangenome/pam"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: %s <input_file_path>\n", fs.Name())
	fs.PrintDefaults()
}

// run executes the command with the given arguments, writing usage,
// progress and errors to stderr, and returns the exit status.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs) }
	help := fs.Bool("help", false, "help prints this message.")
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
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	inName := fs.Arg(0)
	logger := log.New(stderr, "", log.LstdFlags)

	fmt.Fprintf(stderr, "Processing file: %s\n", inName)
	in, err := os.Open(inName)
	if err != nil {
		logger.Printf("failed to open %q: %v", inName, err)
		return 1
	}
	m, rel, err := pam.RowWise(in, pam.SpeciesSep)
	in.Close()
	if err != nil {
		logger.Printf("failed during read of %q: %v", inName, err)
		return 1
	}
	for _, e := range rel.Duplicates {
		logger.Printf("warning: cluster %q appears on more than one row: memberships merged", e)
	}

	outName := pam.OutputPath(inName)
	if err := write(outName, inName, m); err != nil {
		logger.Print(err)
		return 1
	}
	fmt.Fprintf(stderr, "Presence-absence matrix saved to %s\n", outName)
	return 0
}

// write writes m to the file outName, refusing to overwrite inName.
func write(outName, inName string, m *pam.Matrix) error {
	if filepath.Clean(outName) == filepath.Clean(inName) {
		return fmt.Errorf("output %q would overwrite input", outName)
	}
	out, err := os.Create(outName)
	if err != nil {
		return fmt.Errorf("failed to create %q: %v", outName, err)
	}
	_, err = m.WriteTo(out)
	if err != nil {
		out.Close()
		return fmt.Errorf("failed to write matrix to %q: %v", outName, err)
	}
	return out.Close()
}

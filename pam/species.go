// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pam builds binary gene by species presence/absence matrices
// from cluster tables and pairwise clustering output.
package pam

import "strings"

// Identifier conventions used by the upstream annotation pipeline.
const (
	// SpeciesSep separates the species token from the remainder of
	// a row-wise cluster member or an HMMER query name.
	SpeciesSep = "$"

	// PairSpeciesSep separates the species token in MMseqs2 pairwise
	// cluster identifiers.
	PairSpeciesSep = "_"

	// GeneInfix precedes the gene token in MMseqs2 pairwise cluster
	// identifiers.
	GeneInfix = "_prot_"
)

// GeneHeader is the label of the first column of a written matrix.
const GeneHeader = "Gene"

// Species returns the species token of id, the text preceding the first
// occurrence of sep. If sep does not occur in id, id is returned.
func Species(id, sep string) string {
	if sep == "" {
		return id
	}
	if i := strings.Index(id, sep); i >= 0 {
		return id[:i]
	}
	return id
}

// Gene returns the gene token of id, the text following the last
// occurrence of infix. If infix does not occur in id, id is returned.
func Gene(id, infix string) string {
	if infix == "" {
		return id
	}
	if i := strings.LastIndex(id, infix); i >= 0 {
		return id[i+len(infix):]
	}
	return id
}

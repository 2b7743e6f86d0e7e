// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pam

import (
	"path/filepath"
	"strings"
)

const (
	clusterSuffix = "_cluster.tsv"
	matrixSuffix  = "_presence_absence_matrix.tsv"

	// DefaultOutput is the name of the matrix file written beside
	// inputs that do not carry the cluster table suffix.
	DefaultOutput = "species_presence_absence_matrix.tsv"
)

// OutputPath returns the path a matrix built from the table at in is
// written to. A "<name>_cluster.tsv" input gives
// "<name>_presence_absence_matrix.tsv" in the same directory; any other
// input gives DefaultOutput in the same directory.
func OutputPath(in string) string {
	dir, base := filepath.Split(in)
	if strings.HasSuffix(base, clusterSuffix) && len(base) > len(clusterSuffix) {
		return filepath.Join(dir, strings.TrimSuffix(base, clusterSuffix)+matrixSuffix)
	}
	return filepath.Join(dir, DefaultOutput)
}

// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pam

import (
	"sort"

	"github.com/biogo/store/llrb"
)

// Membership is an association of an entity with a species.
type Membership struct {
	Entity, Species string
}

// label is a string with lexical ordering for use in an llrb.Tree.
type label string

func (l label) Compare(b llrb.Comparable) int {
	switch m := b.(label); {
	case l < m:
		return -1
	case l > m:
		return 1
	}
	return 0
}

// Relation is a set of entity/species memberships. Entities are kept in
// the order they are first seen and species in lexical order.
type Relation struct {
	entities []string
	index    map[string]int
	members  []map[string]struct{}
	species  llrb.Tree
	n        int

	// Duplicates holds entity keys that were registered more than once
	// by FromRows, in the order the repeats were seen.
	Duplicates []string
}

// NewRelation returns an empty Relation.
func NewRelation() *Relation {
	return &Relation{index: make(map[string]int)}
}

// AddEntity registers entity e, reporting whether it was not already
// present. An entity with no memberships forms an all-zero matrix row.
func (r *Relation) AddEntity(e string) bool {
	if _, ok := r.index[e]; ok {
		return false
	}
	r.index[e] = len(r.entities)
	r.entities = append(r.entities, e)
	r.members = append(r.members, make(map[string]struct{}))
	return true
}

// Add records the membership of entity e in species s. Repeated
// memberships are ignored. An empty species token contributes nothing
// beyond registering e.
func (r *Relation) Add(e, s string) {
	r.AddEntity(e)
	if s == "" {
		return
	}
	m := r.members[r.index[e]]
	if _, ok := m[s]; ok {
		return
	}
	m[s] = struct{}{}
	r.n++
	r.species.Insert(label(s))
}

// Has returns whether the membership of e in s is recorded.
func (r *Relation) Has(e, s string) bool {
	i, ok := r.index[e]
	if !ok {
		return false
	}
	_, ok = r.members[i][s]
	return ok
}

// Len returns the number of distinct memberships.
func (r *Relation) Len() int { return r.n }

// Entities returns the entity keys in first-seen order.
func (r *Relation) Entities() []string {
	e := make([]string, len(r.entities))
	copy(e, r.entities)
	return e
}

// Species returns the distinct species tokens in lexical order.
func (r *Relation) Species() []string {
	s := make([]string, 0, r.species.Len())
	r.species.Do(func(c llrb.Comparable) (done bool) {
		s = append(s, string(c.(label)))
		return
	})
	return s
}

// Pairs returns the memberships ordered by entity, first-seen, and then
// by species.
func (r *Relation) Pairs() []Membership {
	p := make([]Membership, 0, r.n)
	for i, e := range r.entities {
		sp := make([]string, 0, len(r.members[i]))
		for s := range r.members[i] {
			sp = append(sp, s)
		}
		sort.Strings(sp)
		for _, s := range sp {
			p = append(p, Membership{Entity: e, Species: s})
		}
	}
	return p
}

// FromRows returns the Relation described by row-wise records, taking the
// species token of each identifier using sep. Rows sharing an entity key
// are merged and the repeated keys are listed in the Duplicates field.
func FromRows(rows []Row, sep string) *Relation {
	r := NewRelation()
	for _, row := range rows {
		if !r.AddEntity(row.Entity) {
			r.Duplicates = append(r.Duplicates, row.Entity)
		}
		for _, id := range row.IDs {
			r.Add(row.Entity, Species(id, sep))
		}
	}
	return r
}

// FromPairs returns the Relation described by pairwise records. Each
// identifier of a pair independently contributes the membership of its
// gene token, found using infix, in its species token, found using sep.
// Identifiers with an empty gene token, including empty identifiers, are
// ignored.
func FromPairs(pairs []Pair, sep, infix string) *Relation {
	r := NewRelation()
	for _, p := range pairs {
		for _, id := range [...]string{p.A, p.B} {
			g := Gene(id, infix)
			if g == "" {
				continue
			}
			r.Add(g, Species(id, sep))
		}
	}
	return r
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/stokes/fld"
)

// SolutionVector holds the current values of one field's unknowns keyed
// through its equation numbering; e.g. the initial guess going into the
// solver and the solution coming out of it.
type SolutionVector struct {
	Fld *fld.Field // field
	Eqn *EqNumber  // numbering
	V   []float64  // [Ny] values
}

// NewSolutionVector creates a new solution vector and loads the current
// field values onto it as the best first guess
func NewSolutionVector(f *fld.Field, eqn *EqNumber) (o *SolutionVector) {
	o = &SolutionVector{Fld: f, Eqn: eqn, V: make([]float64, eqn.Ny)}
	o.LoadFromField()
	return
}

// LoadFromField copies the field values into V
func (o *SolutionVector) LoadFromField() {
	for ix, I := range o.Eqn.Eq {
		if I >= 0 {
			o.V[I] = o.Fld.Vals[ix]
		}
	}
}

// SaveToField writes the solution back into the field, reinserting
// constrained dofs with their prescribed values
func (o *SolutionVector) SaveToField() {
	for ix, I := range o.Eqn.Eq {
		switch {
		case o.Eqn.Fixed[ix]:
			o.Fld.Vals[ix] = o.Eqn.Vals[ix]
		case I >= 0:
			o.Fld.Vals[ix] = o.V[I]
		}
	}
}

// AssembledVector is a dense per-unknown right-hand-side container,
// zero-initialised then accumulated by one or more assembly terms
type AssembledVector struct {
	Eqn *EqNumber // numbering
	V   []float64 // [Ny] values
}

// NewAssembledVector creates a new zeroed assembled vector
func NewAssembledVector(eqn *EqNumber) *AssembledVector {
	return &AssembledVector{Eqn: eqn, V: make([]float64, eqn.Ny)}
}

// Zero fills the vector with zeros
func (o *AssembledVector) Zero() {
	la.VecFill(o.V, 0)
}

// Add accumulates value v into the entry of dof d @ node n. Constrained
// rows are skipped: their equations are replaced by the constraint.
func (o *AssembledVector) Add(n, d int, v float64) {
	ix := n*o.Eqn.Fld.Ndof + d
	if o.Eqn.Fixed[ix] {
		return
	}
	o.V[o.Eqn.Eq[ix]] += v
}

// SetFixed overwrites kept constrained entries with their prescribed
// values; the matching identity rows are placed by AssembledMatrix.PutFixed
func (o *AssembledVector) SetFixed() {
	for ix, I := range o.Eqn.Eq {
		if o.Eqn.Fixed[ix] && I >= 0 {
			o.V[I] = o.Eqn.Vals[ix]
		}
	}
}

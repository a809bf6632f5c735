// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"github.com/cpmech/gosl/la"
)

// AssembledMatrix is a sparse matrix over two equation numberings
// (row-field and column-field) built from element-level contributions.
// Columns belonging to constrained dofs are eliminated into the companion
// right-hand-side vector Rhs; rows belonging to constrained dofs are
// eliminated into the transpose companion RhsT (indexed by the column
// numbering), which is how the gradient matrix feeds the continuity
// right-hand side when velocity dofs are prescribed.
type AssembledMatrix struct {
	Row  *EqNumber        // row numbering
	Col  *EqNumber        // column numbering
	T    la.Triplet       // sparse (row,col,value) storage
	Rhs  *AssembledVector // receives -k*val for constrained columns (may be nil)
	RhsT *AssembledVector // receives -k*val for constrained rows (may be nil)
	Diag []float64        // [Row.Ny] accumulated diagonal (square matrices only)
}

// NewAssembledMatrix creates a new assembled matrix with capacity for nnz
// non-zero entries. For square matrices (row == col numbering) the diagonal
// is tracked during assembly so it can serve as a lumped preconditioner.
func NewAssembledMatrix(row, col *EqNumber, nnz int, rhs, rhsT *AssembledVector) (o *AssembledMatrix) {
	o = &AssembledMatrix{Row: row, Col: col, Rhs: rhs, RhsT: rhsT}
	o.T.Init(row.Ny, col.Ny, nnz)
	if row == col {
		o.Diag = make([]float64, row.Ny)
	}
	return
}

// Start resets the triplet and the tracked diagonal prior to assembly.
// The companion vectors are shared with vector assembly terms and are
// zeroed by the owner of the whole system instead.
func (o *AssembledMatrix) Start() {
	o.T.Start()
	if o.Diag != nil {
		la.VecFill(o.Diag, 0)
	}
}

// Add scatter-adds one local contribution v at (row-node rn, row-dof rd)
// x (col-node cn, col-dof cd), applying the standard elimination of
// essential boundary conditions
func (o *AssembledMatrix) Add(rn, rd, cn, cd int, v float64) {
	rix := rn*o.Row.Fld.Ndof + rd
	cix := cn*o.Col.Fld.Ndof + cd
	rfix := o.Row.Fixed[rix]
	cfix := o.Col.Fixed[cix]
	switch {
	case rfix && cfix:
		return
	case rfix:
		if o.RhsT != nil {
			o.RhsT.V[o.Col.Eq[cix]] -= v * o.Row.Vals[rix]
		}
		return
	case cfix:
		if o.Rhs != nil {
			o.Rhs.V[o.Row.Eq[rix]] -= v * o.Col.Vals[cix]
		}
		return
	}
	I, J := o.Row.Eq[rix], o.Col.Eq[cix]
	o.T.Put(I, J, v)
	if o.Diag != nil && I == J {
		o.Diag[I] += v
	}
}

// PutFixed places unit diagonal entries for constrained dofs kept in the
// system (removeBCs=false); together with AssembledVector.SetFixed this
// turns their equations into "value = prescribed"
func (o *AssembledMatrix) PutFixed() {
	if o.Row != o.Col {
		return
	}
	for ix, I := range o.Row.Eq {
		if o.Row.Fixed[ix] && I >= 0 {
			o.T.Put(I, I, 1)
			if o.Diag != nil {
				o.Diag[I] += 1
			}
		}
	}
}

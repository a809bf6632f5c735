// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/stokes/fld"
)

// EqNumber maps each (node,dof) pair of one field to a global unknown
// index. Dirichlet-constrained dofs either receive no index (removeBCs)
// or are kept but flagged fixed so the solver places an identity row.
// Global indices are assigned in ascending (node,dof) order, hence the
// matrix layout is deterministic.
type EqNumber struct {
	Fld       *fld.Field // field being numbered
	RemoveBCs bool       // constrained dofs are excluded from the system
	Eq        []int      // [nnodes*ndof] global equation number or -1 (excluded)
	Fixed     []bool     // [nnodes*ndof] dof carries a Dirichlet constraint
	Vals      []float64  // [nnodes*ndof] prescribed values (where Fixed)
	Ny        int        // number of equations
}

// NewEqNumber builds the numbering of one field, applying the Dirichlet
// conditions found in conds that target this field. Prescribed values are
// written into the field (spec'd values win over current field values).
// Returns an error if one dof is constrained by two conditions.
func NewEqNumber(f *fld.Field, conds []Condition, removeBCs bool) (o *EqNumber, err error) {

	// allocate
	o = new(EqNumber)
	o.Fld = f
	o.RemoveBCs = removeBCs
	n := f.Nnodes() * f.Ndof
	o.Eq = make([]int, n)
	o.Fixed = make([]bool, n)
	o.Vals = make([]float64, n)

	// mark constrained dofs
	owner := make([]int, n) // index of condition owning each constraint
	for ic, cond := range conds {
		dc, ok := cond.(*Dirichlet)
		if !ok || dc.Fld != f {
			continue
		}
		for d, set := range dc.Sets {
			if d >= f.Ndof {
				return nil, chk.Err("Dirichlet condition constrains dof %d but field has %d dofs per node", d, f.Ndof)
			}
			for k, node := range set {
				ix := node*f.Ndof + d
				if o.Fixed[ix] && owner[ix] != ic {
					return nil, chk.Err("dof %d of node %d is constrained by two Dirichlet conditions", d, node)
				}
				o.Fixed[ix] = true
				owner[ix] = ic
				if dc.Vals != nil {
					f.Set(node, d, dc.Vals[d][k])
				}
				o.Vals[ix] = f.Get(node, d)
			}
		}
	}

	// assign equation numbers
	var eq int
	for ix := 0; ix < n; ix++ {
		if o.Fixed[ix] && removeBCs {
			o.Eq[ix] = -1
			continue
		}
		o.Eq[ix] = eq
		eq++
	}
	o.Ny = eq
	return
}

// At returns the global equation number of dof d @ node n (or -1)
func (o *EqNumber) At(n, d int) int {
	return o.Eq[n*o.Fld.Ndof+d]
}

// IsFixed tells whether dof d @ node n carries a Dirichlet constraint
func (o *EqNumber) IsFixed(n, d int) bool {
	return o.Fixed[n*o.Fld.Ndof+d]
}

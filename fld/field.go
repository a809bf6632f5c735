// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fld implements field containers: dense per-(node,dof) value
// arrays attached to a mesh. Velocity fields live at mesh vertices; the
// piecewise-constant (DQ0) pressure field lives at cell centres.
package fld

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/stokes/msh"
)

// Loc defines where field nodes live
type Loc int

const (
	AtVerts Loc = iota // one node per mesh vertex
	AtCells            // one node per cell (centre); e.g. DQ0 pressure
)

// Field holds nodal values of one variable; e.g. velocity or pressure.
// The dof count is fixed at creation. Values are mutated in place by the
// solver: the final solution is written back here.
type Field struct {
	Msh  *msh.Mesh // mesh
	Loc  Loc       // node location
	Ndof int       // number of dofs per node
	Vals []float64 // [nnodes*ndof] values
}

// NewField creates a new zero-initialised field
func NewField(m *msh.Mesh, loc Loc, ndof int) (o *Field) {
	o = &Field{Msh: m, Loc: loc, Ndof: ndof}
	o.Vals = make([]float64, o.Nnodes()*ndof)
	return
}

// Nnodes returns the number of nodes of this field
func (o *Field) Nnodes() int {
	if o.Loc == AtCells {
		return len(o.Msh.Cells)
	}
	return len(o.Msh.Verts)
}

// NodeCoords returns the real coordinates of node n
func (o *Field) NodeCoords(n int) []float64 {
	if o.Loc == AtCells {
		return o.Msh.CellCentre(n)
	}
	return o.Msh.Verts[n].C
}

// Get returns the value of dof d @ node n
func (o *Field) Get(n, d int) float64 {
	return o.Vals[n*o.Ndof+d]
}

// Set sets the value of dof d @ node n
func (o *Field) Set(n, d int, v float64) {
	o.Vals[n*o.Ndof+d] = v
}

// Fill sets all values to v
func (o *Field) Fill(v float64) {
	if v == 0 {
		la.VecFill(o.Vals, 0)
		return
	}
	for i := range o.Vals {
		o.Vals[i] = v
	}
}

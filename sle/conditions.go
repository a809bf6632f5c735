// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sle implements the system-of-linear-equations layer: equation
// numbering, solution/force vectors, sparse matrix assembly from
// element-level contributions, integration swarms and boundary conditions.
package sle

import (
	"github.com/cpmech/stokes/fld"
	"github.com/cpmech/stokes/fn"
	"github.com/cpmech/stokes/msh"
)

// Condition is a boundary condition imposed on one field
type Condition interface {
	Field() *fld.Field
}

// Dirichlet fixes field values at given nodes, per dof.
//  Sets[d] lists the constrained node ids of dof d (may be nil).
//  Vals[d] optionally lists prescribed values parallel to Sets[d]; when
//  Vals is nil the values currently stored in the field are prescribed,
//  and they are written back into the field before assembly otherwise.
type Dirichlet struct {
	Fld  *fld.Field  // constrained field
	Sets [][]int     // [ndof][...] constrained node ids
	Vals [][]float64 // optional prescribed values
}

// NewDirichlet creates a new Dirichlet condition fixing the current field
// values at the given node sets
func NewDirichlet(f *fld.Field, sets [][]int) *Dirichlet {
	return &Dirichlet{Fld: f, Sets: sets}
}

// Field returns the constrained field
func (o *Dirichlet) Field() *fld.Field { return o.Fld }

// Neumann prescribes a traction/flux integrated over boundary faces.
// Flux must return one component per space dimension of the field's mesh.
type Neumann struct {
	Fld   *fld.Field // loaded field
	Faces []msh.Face // boundary faces
	Flux  fn.Func    // prescribed traction
}

// NewNeumann creates a new Neumann condition
func NewNeumann(f *fld.Field, faces []msh.Face, flux fn.Func) *Neumann {
	return &Neumann{Fld: f, Faces: faces, Flux: flux}
}

// Field returns the loaded field
func (o *Neumann) Field() *fld.Field { return o.Fld }

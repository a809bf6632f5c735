// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fn

import (
	"github.com/cpmech/stokes/fld"
)

// FieldSample evaluates a Field at the node nearest to the requested
// position. It allows nodal data (e.g. a previously computed viscosity or
// stress history field) to act as a coefficient function. The nearest-node
// search is a linear scan; intended for input sampling, not hot loops over
// fine meshes.
type FieldSample struct {
	Fld *fld.Field
}

// Size returns the number of components
func (o *FieldSample) Size() int { return o.Fld.Ndof }

// Eval computes the value @ x
func (o *FieldSample) Eval(res, x []float64) {
	best, dmin := 0, -1.0
	for n := 0; n < o.Fld.Nnodes(); n++ {
		c := o.Fld.NodeCoords(n)
		var d float64
		for i := 0; i < len(x); i++ {
			d += (x[i] - c[i]) * (x[i] - c[i])
		}
		if dmin < 0 || d < dmin {
			best, dmin = n, d
		}
	}
	for j := 0; j < o.Fld.Ndof; j++ {
		res[j] = o.Fld.Get(best, j)
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// dq0 is the discontinuous piecewise-constant shape used for the pressure
// space of the Q1/DQ0 mixed pair: one vertex per cell (the cell centre) and
// unit shape value everywhere inside the cell. Geometry (Jacobian, real
// coordinates) always comes from the host cell's qua4 shape.

func init() {
	register(&Shape{
		Type:   "dq0",
		Func:   dq0Func,
		Gndim:  0,
		Nverts: 1,
	})
}

// dq0Func computes shape functions of dq0
func dq0Func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int) {
	S[0] = 1.0
	if derivs {
		dSdR[0][0] = 0.0
	}
}

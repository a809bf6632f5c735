// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical benchmark set-ups
package ana

import (
	"math"

	fun "github.com/cpmech/gosl/fun/dbf"

	"github.com/cpmech/stokes/fn"
)

// SolCx implements the classical variable-viscosity Stokes benchmark on
// the unit square: a sinusoidal vertical body force drives flow across a
// sharp viscosity jump at x = xc
//
//      y ^
//        |----------------
//        |       :       |
//        |  etaA :  etaB |
//        |       :       |
//        |       :       |
//        ----------------- ---> x
//               xc
type SolCx struct {

	// input
	etaA float64 // viscosity left of the jump
	etaB float64 // viscosity right of the jump
	xc   float64 // position of the viscosity jump
	nz   float64 // horizontal wavenumber of the forcing
}

// Init initialises this structure
func (o *SolCx) Init(prms fun.Params) {

	// default values
	o.etaA = 1.0
	o.etaB = 1e6
	o.xc = 0.5
	o.nz = 1.0

	// parameters
	for _, p := range prms {
		switch p.N {
		case "etaA":
			o.etaA = p.V
		case "etaB":
			o.etaB = p.V
		case "xc":
			o.xc = p.V
		case "nz":
			o.nz = p.V
		}
	}
}

// Viscosity returns the step-function viscosity
func (o *SolCx) Viscosity() fn.Func {
	return &fn.Scalar{F: func(x []float64) float64 {
		if x[0] < o.xc {
			return o.etaA
		}
		return o.etaB
	}}
}

// BodyForce returns the sinusoidal driving force (0, -cos(nz*pi*x)*sin(pi*y))
func (o *SolCx) BodyForce() fn.Func {
	return &fn.Vector{N: 2, F: func(res, x []float64) {
		res[0] = 0
		res[1] = -math.Cos(o.nz*math.Pi*x[0]) * math.Sin(math.Pi*x[1])
	}}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gosl/chk"

// Ipoint holds integration point data: natural coordinates and weight
//  ip = [r, s, t, w]
type Ipoint []float64

// constants for Gauss-Legendre coordinates
const (
	gp2 = 0.5773502691896257 // 1/sqrt(3)
	gp3 = 0.7745966692414834 // sqrt(3/5)
	gw3 = 0.5555555555555556 // 5/9
	gw0 = 0.8888888888888888 // 8/9
)

// ipsQua4 are the 2x2 Gauss points of qua4 cells
var ipsQua4 = []Ipoint{
	{-gp2, -gp2, 0, 1},
	{+gp2, -gp2, 0, 1},
	{-gp2, +gp2, 0, 1},
	{+gp2, +gp2, 0, 1},
}

// ipsLin2 are the 2 Gauss points of lin2 faces
var ipsLin2 = []Ipoint{
	{-gp2, 0, 0, 1},
	{+gp2, 0, 0, 1},
}

// ipsLin3 are the 3 Gauss points used on faces when a higher-order surface
// rule is requested; e.g. to resolve stress boundary condition fluctuations
var ipsLin3 = []Ipoint{
	{-gp3, 0, 0, gw3},
	{0, 0, 0, gw0},
	{+gp3, 0, 0, gw3},
}

// IpsGauss returns the fixed Gauss rule of a cell geometry
func IpsGauss(geoType string) []Ipoint {
	switch geoType {
	case "qua4":
		return ipsQua4
	case "lin2":
		return ipsLin2
	}
	chk.Panic("cannot find Gauss integration points for geometry type %q", geoType)
	return nil
}

// IpsFaceGauss returns the Gauss rule of a face with npts points
func IpsFaceGauss(npts int) []Ipoint {
	switch npts {
	case 2:
		return ipsLin2
	case 3:
		return ipsLin3
	}
	chk.Panic("face integration rule with %d points is not available", npts)
	return nil
}

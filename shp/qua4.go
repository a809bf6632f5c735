// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// shape functions of qua4 and its lin2 faces
//
//    3-----------2
//    |     2     |
//    |           |     s
//    | 3       1 |     |
//    |           |     +--r
//    |     0     |
//    0-----------1

func init() {
	register(&Shape{
		Type:       "qua4",
		Func:       qua4Func,
		FaceFunc:   lin2Func,
		FaceType:   "lin2",
		Gndim:      2,
		Nverts:     4,
		FaceNverts: 2,
		FaceLocalVerts: [][]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
		},
		NatCoords: [][]float64{
			{-1, 1, 1, -1},
			{-1, -1, 1, 1},
		},
	})
}

// qua4Func computes shape functions and derivatives of qua4
func qua4Func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int) {
	s, t := r[0], r[1]
	S[0] = (1.0 - s) * (1.0 - t) / 4.0
	S[1] = (1.0 + s) * (1.0 - t) / 4.0
	S[2] = (1.0 + s) * (1.0 + t) / 4.0
	S[3] = (1.0 - s) * (1.0 + t) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0] = -(1.0 - t) / 4.0
	dSdR[0][1] = -(1.0 - s) / 4.0
	dSdR[1][0] = +(1.0 - t) / 4.0
	dSdR[1][1] = -(1.0 + s) / 4.0
	dSdR[2][0] = +(1.0 + t) / 4.0
	dSdR[2][1] = +(1.0 + s) / 4.0
	dSdR[3][0] = -(1.0 + t) / 4.0
	dSdR[3][1] = +(1.0 - s) / 4.0
}

// lin2Func computes shape functions and derivatives of lin2
func lin2Func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int) {
	s := r[0]
	S[0] = (1.0 - s) / 2.0
	S[1] = (1.0 + s) / 2.0
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = +0.5
}

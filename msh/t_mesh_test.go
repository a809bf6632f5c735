// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_mesh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh01. 2x2 grid on the unit square")

	m := NewGrid2d(2, 2, 0, 1, 0, 1)
	chk.IntAssert(len(m.Verts), 9)
	chk.IntAssert(len(m.Cells), 4)

	// vertex layout is row-major from the bottom-left corner
	chk.Vector(tst, "vert 0", 1e-17, m.Verts[0].C, []float64{0, 0})
	chk.Vector(tst, "vert 4", 1e-17, m.Verts[4].C, []float64{0.5, 0.5})
	chk.Vector(tst, "vert 8", 1e-17, m.Verts[8].C, []float64{1, 1})

	// counterclockwise qua4 connectivity
	chk.Ints(tst, "cell 0", m.Cells[0].Verts, []int{0, 1, 4, 3})
	chk.Ints(tst, "cell 3", m.Cells[3].Verts, []int{4, 5, 8, 7})

	// boundary vertex sets
	chk.Ints(tst, "MinI", m.VertSets["MinI"], []int{0, 3, 6})
	chk.Ints(tst, "MaxI", m.VertSets["MaxI"], []int{2, 5, 8})
	chk.Ints(tst, "MinJ", m.VertSets["MinJ"], []int{0, 1, 2})
	chk.Ints(tst, "MaxJ", m.VertSets["MaxJ"], []int{6, 7, 8})

	// unions keep each vertex once
	left_right := m.VertSet("MinI", "MaxI")
	chk.Ints(tst, "MinI+MaxI", left_right, []int{0, 3, 6, 2, 5, 8})
	walls := m.VertSet("MinJ", "MinJ")
	chk.Ints(tst, "MinJ+MinJ", walls, []int{0, 1, 2})
}

func Test_mesh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh02. faces, centres and coordinates")

	m := NewGrid2d(3, 2, 0, 3, 0, 2)

	// face sets walk along each wall
	chk.IntAssert(len(m.FaceSets["MinJ"]), 3)
	chk.IntAssert(len(m.FaceSets["MaxI"]), 2)
	for _, f := range m.FaceSets["MaxI"] {
		chk.IntAssert(f.Idx, 1)
	}
	for _, f := range m.FaceSets["MinI"] {
		chk.IntAssert(f.Idx, 3)
	}
	faces := m.FaceSet("MinJ", "MaxJ")
	chk.IntAssert(len(faces), 6)

	// centres
	chk.Vector(tst, "centre 0", 1e-17, m.CellCentre(0), []float64{0.5, 0.5})
	chk.Vector(tst, "centre 5", 1e-17, m.CellCentre(5), []float64{2.5, 1.5})

	// coordinates matrix
	x := [][]float64{make([]float64, 4), make([]float64, 4)}
	m.ExtractCoords(x, 0)
	chk.Vector(tst, "x row", 1e-17, x[0], []float64{0, 1, 1, 0})
	chk.Vector(tst, "y row", 1e-17, x[1], []float64{0, 0, 1, 1})
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/stokes/fld"
	"github.com/cpmech/stokes/fn"
	"github.com/cpmech/stokes/msh"
)

// testSystem builds the numbering and vectors of a plain unconstrained
// velocity/pressure pair over a 2x2 unit-square grid
func testSystem(tst *testing.T) (m *msh.Mesh, ueq, peq *EqNumber, f, h *AssembledVector) {
	m = msh.NewGrid2d(2, 2, 0, 1, 0, 1)
	u := fld.NewField(m, fld.AtVerts, 2)
	p := fld.NewField(m, fld.AtCells, 1)
	var err error
	ueq, err = NewEqNumber(u, nil, true)
	if err != nil {
		tst.Fatalf("NewEqNumber(u) failed: %v\n", err)
	}
	peq, err = NewEqNumber(p, nil, true)
	if err != nil {
		tst.Fatalf("NewEqNumber(p) failed: %v\n", err)
	}
	f = NewAssembledVector(ueq)
	h = NewAssembledVector(peq)
	return
}

func Test_assemble01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble01. viscous stiffness: symmetry and rigid motions")

	m, ueq, _, f, _ := testSystem(tst)
	kmat := NewAssembledMatrix(ueq, ueq, 1000, f, nil)
	term := NewConstitutiveMatTerm(NewGaussSwarm(m), kmat, &fn.Cte{C: 2}, nil, nil)

	kmat.Start()
	if err := term.Integrate(); err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
		return
	}
	kk := kmat.T.ToMatrix(nil).ToDense()
	nu := ueq.Ny

	// symmetry
	for i := 0; i < nu; i++ {
		for j := i + 1; j < nu; j++ {
			chk.Scalar(tst, io.Sf("K[%d][%d]", i, j), 1e-13, kk[i][j], kk[j][i])
		}
	}

	// rigid translations produce no viscous force
	for d := 0; d < 2; d++ {
		trans := make([]float64, nu)
		for n := 0; n < len(m.Verts); n++ {
			trans[ueq.At(n, d)] = 1
		}
		for i := 0; i < nu; i++ {
			var sum float64
			for j := 0; j < nu; j++ {
				sum += kk[i][j] * trans[j]
			}
			chk.Scalar(tst, io.Sf("K*trans%d row %d", d, i), 1e-13, sum, 0)
		}
	}

	// tracked diagonal matches the matrix diagonal
	for i := 0; i < nu; i++ {
		chk.Scalar(tst, io.Sf("diag %d", i), 1e-13, kmat.Diag[i], kk[i][i])
	}
}

func Test_assemble02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble02. gradient coupling: divergence of known fields")

	m, ueq, peq, f, h := testSystem(tst)
	gmat := NewAssembledMatrix(ueq, peq, 100, f, h)
	term := NewGradStiffMatTerm(NewGaussSwarm(m), gmat)

	gmat.Start()
	if err := term.Integrate(); err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
		return
	}
	gg := gmat.T.ToMatrix(nil).ToDense()

	// column sums vanish per direction: constant test functions see no
	// pressure gradient
	for n := 0; n < peq.Ny; n++ {
		for d := 0; d < 2; d++ {
			var sum float64
			for vn := 0; vn < len(m.Verts); vn++ {
				sum += gg[ueq.At(vn, d)][n]
			}
			chk.Scalar(tst, io.Sf("col %d dir %d", n, d), 1e-14, sum, 0)
		}
	}

	// Gt u for u = (x, 0) integrates -div(u) per cell: -area
	u := make([]float64, ueq.Ny)
	for vn, vert := range m.Verts {
		u[ueq.At(vn, 0)] = vert.C[0]
	}
	for n := 0; n < peq.Ny; n++ {
		var div float64
		for i := 0; i < ueq.Ny; i++ {
			div += gg[i][n] * u[i]
		}
		chk.Scalar(tst, io.Sf("Gt u cell %d", n), 1e-14, div, -0.25)
	}
}

func Test_assemble03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble03. pressure-space matrices")

	m, _, peq, _, h := testSystem(tst)

	// preconditioner: cell volume over viscosity
	pc := NewAssembledMatrix(peq, peq, 10, nil, nil)
	pterm := NewPreconditionerMatTerm(NewGaussSwarm(m), pc, &fn.Cte{C: 2})
	pc.Start()
	if err := pterm.Integrate(); err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
		return
	}
	for n := 0; n < peq.Ny; n++ {
		chk.Scalar(tst, io.Sf("pc diag %d", n), 1e-14, pc.Diag[n], 0.125)
	}

	// compressibility: cell volume times the coefficient
	mm := NewAssembledMatrix(peq, peq, 10, h, nil)
	mterm := NewCompressibilityMatTerm(NewGaussSwarm(m), mm, &fn.Cte{C: 0.5})
	mm.Start()
	if err := mterm.Integrate(); err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
		return
	}
	for n := 0; n < peq.Ny; n++ {
		chk.Scalar(tst, io.Sf("m diag %d", n), 1e-14, mm.Diag[n], 0.125)
	}
}

func Test_assemble04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble04. force vectors: volume, source, surface")

	m, ueq, peq, f, h := testSystem(tst)

	// body force (0,-1) integrates to total weight -1
	bterm := NewVecAssemblyTerm(NewGaussSwarm(m), f, &fn.Vec{V: []float64{0, -1}})
	if err := bterm.Integrate(); err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
		return
	}
	var fx, fy float64
	for n := 0; n < len(m.Verts); n++ {
		fx += f.V[ueq.At(n, 0)]
		fy += f.V[ueq.At(n, 1)]
	}
	chk.Scalar(tst, "total fx", 1e-14, fx, 0)
	chk.Scalar(tst, "total fy", 1e-14, fy, -1)

	// continuity source: cell volume times the source
	sterm := NewVecAssemblyTerm(NewGaussSwarm(m), h, &fn.Cte{C: 3})
	if err := sterm.Integrate(); err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
		return
	}
	for n := 0; n < peq.Ny; n++ {
		chk.Scalar(tst, io.Sf("h %d", n), 1e-14, h.V[n], 0.75)
	}

	// constant traction on the right wall integrates to its length
	f.Zero()
	nbc := NewNeumann(ueq.Fld, m.FaceSet("MaxI"), &fn.Vec{V: []float64{2, 0}})
	fterm := NewSurfaceFluxTerm(f, nbc, 3)
	if err := fterm.Integrate(); err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
		return
	}
	fx, fy = 0, 0
	for n := 0; n < len(m.Verts); n++ {
		fx += f.V[ueq.At(n, 0)]
		fy += f.V[ueq.At(n, 1)]
	}
	chk.Scalar(tst, "traction fx", 1e-14, fx, 2)
	chk.Scalar(tst, "traction fy", 1e-14, fy, 0)

	// only wall vertices are loaded
	for _, n := range m.VertSet("MinI") {
		chk.Scalar(tst, io.Sf("left wall %d", n), 1e-17, f.V[ueq.At(n, 0)], 0)
	}

	// constant stress history is self-equilibrated in the interior
	f.Zero()
	vterm := NewVepTerm(NewGaussSwarm(m), f, &fn.Vec{V: []float64{1, -2, 0.5}})
	if err := vterm.Integrate(); err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
		return
	}
	fx, fy = 0, 0
	for n := 0; n < len(m.Verts); n++ {
		fx += f.V[ueq.At(n, 0)]
		fy += f.V[ueq.At(n, 1)]
	}
	chk.Scalar(tst, "vep fx", 1e-14, fx, 0)
	chk.Scalar(tst, "vep fy", 1e-14, fy, 0)
	if math.Abs(f.V[ueq.At(4, 0)]) > 1e-14 {
		tst.Errorf("interior node must be in equilibrium under constant stress\n")
	}
}

func Test_assemble05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble05. elimination of constrained columns")

	// full system
	m, ueq, _, f, _ := testSystem(tst)
	kfull := NewAssembledMatrix(ueq, ueq, 1000, f, nil)
	term := NewConstitutiveMatTerm(NewGaussSwarm(m), kfull, &fn.Cte{C: 1}, nil, nil)
	kfull.Start()
	if err := term.Integrate(); err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
		return
	}
	kk := kfull.T.ToMatrix(nil).ToDense()

	// reduced system with a prescribed wall velocity
	u := fld.NewField(m, fld.AtVerts, 2)
	val := 0.75
	dc := NewDirichlet(u, [][]int{m.VertSets["MinI"], nil})
	dc.Vals = [][]float64{{val, val, val}, nil}
	red, err := NewEqNumber(u, []Condition{dc}, true)
	if err != nil {
		tst.Errorf("NewEqNumber failed: %v\n", err)
		return
	}
	chk.IntAssert(red.Ny, ueq.Ny-3)
	fr := NewAssembledVector(red)
	kred := NewAssembledMatrix(red, red, 1000, fr, nil)
	rterm := NewConstitutiveMatTerm(NewGaussSwarm(m), kred, &fn.Cte{C: 1}, nil, nil)
	kred.Start()
	if err := rterm.Integrate(); err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
		return
	}

	// the companion right-hand side carries -K[free,fixed]*val
	for n := 0; n < len(m.Verts); n++ {
		for d := 0; d < 2; d++ {
			if red.IsFixed(n, d) {
				continue
			}
			var expected float64
			for _, fixed := range m.VertSets["MinI"] {
				expected -= kk[ueq.At(n, d)][ueq.At(fixed, 0)] * val
			}
			chk.Scalar(tst, io.Sf("fr (%d,%d)", n, d), 1e-13, fr.V[red.At(n, d)], expected)
		}
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/stokes/fld"
	"github.com/cpmech/stokes/msh"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_eqnum01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eqnum01. numbering without constraints")

	m := msh.NewGrid2d(1, 1, 0, 1, 0, 1)
	u := fld.NewField(m, fld.AtVerts, 2)

	eqn, err := NewEqNumber(u, nil, true)
	if err != nil {
		tst.Errorf("NewEqNumber failed: %v\n", err)
		return
	}
	chk.IntAssert(eqn.Ny, 8)
	chk.Ints(tst, "eq", eqn.Eq, []int{0, 1, 2, 3, 4, 5, 6, 7})
	chk.IntAssert(eqn.At(2, 1), 5)
	if eqn.IsFixed(2, 1) {
		tst.Errorf("dof (2,1) must not be fixed\n")
	}
}

func Test_eqnum02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eqnum02. removed vs kept constrained dofs")

	m := msh.NewGrid2d(1, 1, 0, 1, 0, 1)
	u := fld.NewField(m, fld.AtVerts, 2)
	u.Set(0, 0, 0.5) // the prescribed value comes from the field

	conds := []Condition{
		NewDirichlet(u, [][]int{{0}, {3}}),
	}

	// removed: the constrained dofs leave the system
	eqn, err := NewEqNumber(u, conds, true)
	if err != nil {
		tst.Errorf("NewEqNumber failed: %v\n", err)
		return
	}
	chk.IntAssert(eqn.Ny, 6)
	chk.Ints(tst, "eq (removed)", eqn.Eq, []int{-1, 0, 1, 2, 3, 4, 5, -1})
	if !eqn.IsFixed(0, 0) || !eqn.IsFixed(3, 1) {
		tst.Errorf("constrained dofs must be flagged fixed\n")
		return
	}
	chk.Scalar(tst, "prescribed", 1e-17, eqn.Vals[0], 0.5)

	// kept: all dofs receive equation numbers, flags are preserved
	eqn, err = NewEqNumber(u, conds, false)
	if err != nil {
		tst.Errorf("NewEqNumber failed: %v\n", err)
		return
	}
	chk.IntAssert(eqn.Ny, 8)
	chk.Ints(tst, "eq (kept)", eqn.Eq, []int{0, 1, 2, 3, 4, 5, 6, 7})
	if !eqn.IsFixed(0, 0) {
		tst.Errorf("constrained dof must stay flagged when kept\n")
	}
}

func Test_eqnum03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eqnum03. explicit values and conflicts")

	m := msh.NewGrid2d(1, 1, 0, 1, 0, 1)
	u := fld.NewField(m, fld.AtVerts, 2)

	// explicit prescribed values are written into the field
	dc := NewDirichlet(u, [][]int{{0, 1}, nil})
	dc.Vals = [][]float64{{2.5, -1}, nil}
	eqn, err := NewEqNumber(u, []Condition{dc}, true)
	if err != nil {
		tst.Errorf("NewEqNumber failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "field value", 1e-17, u.Get(0, 0), 2.5)
	chk.Scalar(tst, "eqn value", 1e-17, eqn.Vals[2], -1)

	// one dof owned by two conditions is an error
	conds := []Condition{
		NewDirichlet(u, [][]int{{0}, nil}),
		NewDirichlet(u, [][]int{{0, 2}, nil}),
	}
	_, err = NewEqNumber(u, conds, true)
	if err == nil {
		tst.Errorf("conflicting conditions must fail\n")
		return
	}
	io.Pforan("expected error: %v\n", err)

	// the same condition listed twice for different dofs is fine
	conds = []Condition{
		NewDirichlet(u, [][]int{{0}, {0}}),
	}
	_, err = NewEqNumber(u, conds, true)
	if err != nil {
		tst.Errorf("distinct dofs of one node must not conflict: %v\n", err)
	}
}

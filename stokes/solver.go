// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stokes

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/vladimir-ch/iterative"

	"github.com/cpmech/stokes/sle"
)

// Stats reports the work performed by one Solve call
type Stats struct {
	PressureIts          int // outer (Schur complement) iterations
	VelocityBacksolveIts int // inner iterations of the final velocity solve
}

// Solver runs the nested Schur-complement iteration on an assembled
// System: an outer preconditioned conjugate-gradient loop on the pressure
// with an inner Krylov solve of the (possibly penalty-augmented) viscous
// block for every outer step. The preconditioner is the lumped diagonal
// of the inverse-viscosity-scaled pressure matrix, which is exact for the
// cell-constant pressure space.
type Solver struct {
	Sys        *System // the system
	Tol        float64 // outer relative residual tolerance
	MaxIt      int     // outer iteration limit
	InnerTol   float64 // inner Krylov tolerance
	InnerMaxIt int     // inner iteration limit; zero means ten times the velocity unknowns
}

// NewSolver creates a solver with default tolerances
func NewSolver(sys *System) *Solver {
	return &Solver{Sys: sys, Tol: 1e-5, MaxIt: 100, InnerTol: 1e-8}
}

// Solve reassembles the system and iterates to convergence, writing the
// solution back into the velocity and pressure fields. On ErrMaxIterations
// the best solution found is still written back; on DivergenceError the
// fields keep their previous values and serve as the next initial guess.
func (o *Solver) Solve() (stats Stats, err error) {

	// assemble; mutated coefficients take effect here
	sys := o.Sys
	if err = sys.Assemble(); err != nil {
		return
	}
	kk := sys.K.T.ToMatrix(nil)
	gg := sys.G.T.ToMatrix(nil)
	mm := sys.M.T.ToMatrix(nil)
	nu, np := sys.UEq.Ny, sys.PEq.Ny

	// lumped preconditioner
	dinv := make([]float64, np)
	for i, d := range sys.Pc.Diag {
		if d == 0 {
			err = cfgerr("pressure preconditioner has a zero diagonal entry (equation %d)", i)
			return
		}
		dinv[i] = 1.0 / d
	}

	// fixed pressure dofs kept in the system stay at their prescribed
	// values: the outer loop never updates masked entries
	var pfix []int
	if !sys.PEq.RemoveBCs {
		for ix, I := range sys.PEq.Eq {
			if sys.PEq.Fixed[ix] {
				pfix = append(pfix, I)
			}
		}
	}
	mask := func(v []float64) {
		for _, I := range pfix {
			v[I] = 0
		}
	}

	// viscous block operator, penalty-augmented when requested:
	// Khat = K + pen*G*inv(D)*Gt
	pen := sys.Penalty
	tp := make([]float64, np)
	kmul := func(dst, x []float64) {
		la.SpMatVecMul(dst, 1, kk, x)
		if pen > 0 {
			la.SpMatTrVecMul(tp, 1, gg, x)
			for i := range tp {
				tp[i] *= dinv[i]
			}
			la.SpMatVecMulAdd(dst, pen, gg, tp)
		}
	}
	ops := iterative.MatrixOps{MatVec: kmul}

	// inner solve of Khat*x = rhs starting from the current x: iterate on
	// the shifted system Khat*dx = rhs - Khat*x so the initial guess is
	// honoured with a zero-start Krylov backend. The augmented operator
	// can need several multiples of nu iterations.
	imax := o.InnerMaxIt
	if imax == 0 {
		imax = 10 * nu
	}
	kx := make([]float64, nu)
	vsolve := func(x, rhs []float64, it int) (its int, err error) {
		kmul(kx, x)
		for i := range kx {
			kx[i] = rhs[i] - kx[i]
		}
		if la.VecNorm(kx) == 0 {
			return 0, nil
		}
		res, serr := iterative.LinearSolve(ops, kx, &iterative.CG{}, iterative.Settings{
			Tolerance:     o.InnerTol,
			MaxIterations: imax,
		})
		if serr != nil {
			return 0, &DivergenceError{Iteration: it, Inner: serr}
		}
		la.VecAdd(x, 1, res.X)
		return res.Stats.Iterations, nil
	}

	// initial guesses come from the current field values
	uvec := sle.NewSolutionVector(sys.U, sys.UEq)
	pvec := sle.NewSolutionVector(sys.P, sys.PEq)
	u, p := uvec.V, pvec.V

	// penalty-consistent momentum right-hand side:
	// fhat = f + pen*G*inv(D)*h
	fhat := make([]float64, nu)
	la.VecCopy(fhat, 1, sys.F.V)
	if pen > 0 {
		for i := range tp {
			tp[i] = dinv[i] * sys.H.V[i]
		}
		la.SpMatVecMulAdd(fhat, pen, gg, tp)
	}

	// initial velocity: Khat*u = fhat - G*p
	rhsu := make([]float64, nu)
	la.VecCopy(rhsu, 1, fhat)
	la.SpMatVecMulAdd(rhsu, -1, gg, p)
	if _, err = vsolve(u, rhsu, 0); err != nil {
		return
	}

	// outer residual r = Gt*u - M*p - h
	r := make([]float64, np)
	la.SpMatTrVecMul(r, 1, gg, u)
	la.SpMatVecMulAdd(r, -1, mm, p)
	la.VecAdd(r, -1, sys.H.V)
	mask(r)
	res0 := la.VecNorm(r)

	// preconditioned conjugate gradients on the Schur complement
	// S = Gt*inv(Khat)*G + M
	z := make([]float64, np)
	s := make([]float64, np)
	q := make([]float64, np)
	du := make([]float64, nu)
	var rhoOld float64
	converged := res0 == 0
	for it := 0; it < o.MaxIt && !converged; it++ {

		// z = inv(D)*r
		for i := range z {
			z[i] = dinv[i] * r[i]
		}
		rho := la.VecDot(r, z)
		if !isFinite(rho) {
			err = &DivergenceError{Iteration: it, Norm: rho}
			return
		}
		if it == 0 {
			la.VecCopy(s, 1, z)
		} else {
			beta := rho / rhoOld
			for i := range s {
				s[i] = z[i] + beta*s[i]
			}
		}
		rhoOld = rho

		// q = S*s via one inner velocity solve
		la.SpMatVecMul(rhsu, 1, gg, s)
		la.VecFill(du, 0)
		if _, err = vsolve(du, rhsu, it); err != nil {
			return
		}
		la.SpMatTrVecMul(q, 1, gg, du)
		la.SpMatVecMulAdd(q, 1, mm, s)
		mask(q)

		// update p, u and the residual
		alpha := rho / la.VecDot(s, q)
		if !isFinite(alpha) {
			err = &DivergenceError{Iteration: it, Norm: alpha}
			return
		}
		la.VecAdd(p, alpha, s)
		la.VecAdd(u, -alpha, du)
		la.VecAdd(r, -alpha, q)
		stats.PressureIts = it + 1
		converged = la.VecNorm(r) <= o.Tol*res0
	}

	// final velocity solve makes u consistent with the converged p and
	// supplies the backsolve count
	la.VecCopy(rhsu, 1, fhat)
	la.SpMatVecMulAdd(rhsu, -1, gg, p)
	if stats.VelocityBacksolveIts, err = vsolve(u, rhsu, stats.PressureIts); err != nil {
		return
	}

	// non-finite solutions are never written back
	if !allFinite(u) || !allFinite(p) {
		err = &DivergenceError{Iteration: stats.PressureIts, Norm: math.Inf(1)}
		return
	}
	uvec.SaveToField()
	pvec.SaveToField()
	if !converged {
		err = ErrMaxIterations
	}
	return
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if !isFinite(x) {
			return false
		}
	}
	return true
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package stokes implements the incompressible/weakly-compressible Stokes
// system on a mixed bilinear-velocity / cell-constant-pressure pair:
// assembly of the block matrices, boundary condition handling and the
// nested Schur-complement solver.
package stokes

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/stokes/fld"
	"github.com/cpmech/stokes/fn"
	"github.com/cpmech/stokes/msh"
	"github.com/cpmech/stokes/sle"
)

// Options configures a System. Viscosity is the only required entry; the
// coefficient entries accept anything fn.Convert accepts.
type Options struct {
	Viscosity     interface{}     // viscosity (required)
	Viscosity2    interface{}     // second viscosity for transverse isotropy (needs Director)
	Director      interface{}     // preferred direction for transverse isotropy
	BodyForce     interface{}     // body force per unit volume
	Lambda        interface{}     // compressibility; nil means strictly incompressible
	Source        interface{}     // continuity source term
	StressHistory interface{}     // visco-elastic stress history in Voigt order
	Conditions    []sle.Condition // Dirichlet and Neumann conditions
	Swarm         sle.IntSwarm    // integration swarm; nil selects the Gauss rule
	KeepBCs       bool            // keep constrained dofs in the system (identity rows)
	Penalty       float64         // augmented-Lagrangian penalty; zero disables
}

// System holds the assembled block matrices and force vectors of one
// Stokes problem
//
//   | K  G  | | u |   | f |
//   |       | |   | = |   |
//   | Gt -M | | p |   | h |
//
// together with the pressure-space preconditioner used by the solver.
// Assemble may be called repeatedly; coefficient functions swapped in
// through the setters take effect on the next assembly.
type System struct {

	// mesh and fields
	Msh *msh.Mesh  // the mesh
	U   *fld.Field // velocity @ vertices
	P   *fld.Field // pressure @ cell centres

	// numbering
	UEq *sle.EqNumber // velocity numbering
	PEq *sle.EqNumber // pressure numbering

	// assembled system
	F  *sle.AssembledVector // momentum right-hand side
	H  *sle.AssembledVector // continuity right-hand side
	K  *sle.AssembledMatrix // viscous stiffness
	G  *sle.AssembledMatrix // gradient coupling
	M  *sle.AssembledMatrix // compressibility
	Pc *sle.AssembledMatrix // Schur preconditioner

	// options
	Swarm   sle.IntSwarm // integration swarm
	Penalty float64      // augmented-Lagrangian penalty

	// terms
	cterm *sle.ConstitutiveMatTerm
	gterm *sle.GradStiffMatTerm
	pterm *sle.PreconditionerMatTerm
	mterm *sle.CompressibilityMatTerm
	bterm *sle.VecAssemblyTerm
	sterm *sle.VecAssemblyTerm
	vterm *sle.VepTerm
	fterm *sle.SurfaceFluxTerm
	lam   fn.Func
}

// NewSystem validates the configuration and builds the equation
// numberings, matrices and assembly terms of one Stokes problem. The
// swarm is repopulated here so particle weights are live before the
// first assembly.
func NewSystem(m *msh.Mesh, u, p *fld.Field, opts Options) (o *System, err error) {

	// validate fields
	if m == nil || u == nil || p == nil {
		return nil, cfgerr("mesh, velocity and pressure fields must all be given")
	}
	if u.Msh != m || p.Msh != m {
		return nil, cfgerr("velocity and pressure fields must live on the given mesh")
	}
	if u.Loc != fld.AtVerts || u.Ndof != m.Ndim {
		return nil, cfgerr("velocity must be a vertex field with %d dofs per node", m.Ndim)
	}
	if p.Loc != fld.AtCells || p.Ndof != 1 {
		return nil, cfgerr("pressure must be a cell field with 1 dof per node")
	}

	// validate options
	if opts.Viscosity == nil {
		return nil, cfgerr("viscosity must be given")
	}
	if (opts.Viscosity2 == nil) != (opts.Director == nil) {
		return nil, cfgerr("second viscosity and director must be given together")
	}
	if opts.Lambda != nil && opts.Penalty > 0 {
		return nil, cfgerr("compressibility (lambda) and penalty cannot be combined")
	}
	if opts.Penalty < 0 {
		return nil, cfgerr("penalty must be non-negative")
	}

	// convert coefficients
	visc, err := fn.Convert(opts.Viscosity)
	if err != nil {
		return nil, cfgerr("viscosity: %v", err)
	}
	var visc2, director, bforce, lam, src, sig fn.Func
	if opts.Viscosity2 != nil {
		if visc2, err = fn.Convert(opts.Viscosity2); err != nil {
			return nil, cfgerr("second viscosity: %v", err)
		}
		if director, err = fn.Convert(opts.Director); err != nil {
			return nil, cfgerr("director: %v", err)
		}
		if director.Size() != m.Ndim {
			return nil, cfgerr("director must have %d components", m.Ndim)
		}
	}
	if opts.BodyForce != nil {
		if bforce, err = fn.Convert(opts.BodyForce); err != nil {
			return nil, cfgerr("body force: %v", err)
		}
		if bforce.Size() != m.Ndim {
			return nil, cfgerr("body force must have %d components", m.Ndim)
		}
	}
	if opts.Lambda != nil {
		if lam, err = fn.Convert(opts.Lambda); err != nil {
			return nil, cfgerr("lambda: %v", err)
		}
	}
	if opts.Source != nil {
		if src, err = fn.Convert(opts.Source); err != nil {
			return nil, cfgerr("source: %v", err)
		}
	}
	if opts.StressHistory != nil {
		if sig, err = fn.Convert(opts.StressHistory); err != nil {
			return nil, cfgerr("stress history: %v", err)
		}
		nsig := m.Ndim * (m.Ndim + 1) / 2
		if sig.Size() != nsig {
			return nil, cfgerr("stress history must have %d (Voigt) components", nsig)
		}
	}

	// conditions: Neumann targets the velocity field only. The traction
	// slot holds one condition; later conditions replace earlier ones.
	var nbc *sle.Neumann
	for _, cond := range opts.Conditions {
		switch nc := cond.(type) {
		case *sle.Dirichlet:
			// handled by the equation numbering below
		case *sle.Neumann:
			if nc.Fld != u {
				return nil, cfgerr("Neumann conditions can only load the velocity field")
			}
			if nc.Flux.Size() != m.Ndim {
				return nil, cfgerr("Neumann traction must have %d components", m.Ndim)
			}
			nbc = nc
		default:
			return nil, cfgerr("unknown condition variant %T", cond)
		}
	}

	// numbering
	o = &System{Msh: m, U: u, P: p, Penalty: opts.Penalty}
	o.UEq, err = sle.NewEqNumber(u, opts.Conditions, !opts.KeepBCs)
	if err != nil {
		return nil, cfgerr("velocity numbering: %v", err)
	}
	o.PEq, err = sle.NewEqNumber(p, opts.Conditions, !opts.KeepBCs)
	if err != nil {
		return nil, cfgerr("pressure numbering: %v", err)
	}
	if o.UEq.Ny == 0 || o.PEq.Ny == 0 {
		return nil, cfgerr("system has no unknowns (nu=%d, np=%d)", o.UEq.Ny, o.PEq.Ny)
	}

	// swarm
	o.Swarm = opts.Swarm
	if o.Swarm == nil {
		o.Swarm = sle.NewGaussSwarm(m)
	}
	if err = o.Swarm.Repopulate(); err != nil {
		return nil, err
	}

	// vectors and matrices
	ncells := len(m.Cells)
	nue := u.Ndof * 4 // qua4
	o.F = sle.NewAssembledVector(o.UEq)
	o.H = sle.NewAssembledVector(o.PEq)
	o.K = sle.NewAssembledMatrix(o.UEq, o.UEq, ncells*nue*nue+o.UEq.Ny, o.F, nil)
	o.G = sle.NewAssembledMatrix(o.UEq, o.PEq, ncells*nue, o.F, o.H)
	o.M = sle.NewAssembledMatrix(o.PEq, o.PEq, ncells+o.PEq.Ny, o.H, nil)
	o.Pc = sle.NewAssembledMatrix(o.PEq, o.PEq, ncells+o.PEq.Ny, nil, nil)

	// terms
	o.cterm = sle.NewConstitutiveMatTerm(o.Swarm, o.K, visc, visc2, director)
	o.gterm = sle.NewGradStiffMatTerm(o.Swarm, o.G)
	o.pterm = sle.NewPreconditionerMatTerm(sle.NewGaussSwarm(m), o.Pc, visc)
	if lam != nil {
		o.lam = lam
		o.mterm = sle.NewCompressibilityMatTerm(o.Swarm, o.M, compressFn(lam))
	}
	if bforce != nil {
		o.bterm = sle.NewVecAssemblyTerm(o.Swarm, o.F, bforce)
	}
	if src != nil {
		o.sterm = sle.NewVecAssemblyTerm(o.Swarm, o.H, src)
	}
	if sig != nil {
		o.vterm = sle.NewVepTerm(o.Swarm, o.F, sig)
	}
	if nbc != nil {
		o.fterm = sle.NewSurfaceFluxTerm(o.F, nbc, 3)
	}
	return
}

// compressFn builds the compressibility coefficient from lambda: 1/lambda
// where lambda exceeds the incompressibility threshold and zero otherwise
func compressFn(lam fn.Func) fn.Func {
	return &fn.Conditional{
		Cond:  lam,
		Above: 1e-8,
		Pos:   &fn.Recip{A: lam},
		Neg:   &fn.Cte{C: 0},
	}
}

// Assemble clears and rebuilds all matrices and vectors from the current
// coefficient functions and swarm weights
func (o *System) Assemble() (err error) {

	// clear; matrix terms fold eliminated contributions into F and H, so
	// the vectors go first
	o.F.Zero()
	o.H.Zero()
	o.K.Start()
	o.G.Start()
	o.M.Start()
	o.Pc.Start()

	// matrix terms
	if err = o.cterm.Integrate(); err != nil {
		return
	}
	if err = o.gterm.Integrate(); err != nil {
		return
	}
	if err = o.pterm.Integrate(); err != nil {
		return
	}
	if o.mterm != nil {
		if err = o.mterm.Integrate(); err != nil {
			return
		}
	}

	// vector terms
	if o.bterm != nil {
		if err = o.bterm.Integrate(); err != nil {
			return
		}
	}
	if o.sterm != nil {
		if err = o.sterm.Integrate(); err != nil {
			return
		}
	}
	if o.vterm != nil {
		if err = o.vterm.Integrate(); err != nil {
			return
		}
	}
	if o.fterm != nil {
		if err = o.fterm.Integrate(); err != nil {
			return
		}
	}

	// constrained dofs kept in the system get identity equations
	o.K.PutFixed()
	o.M.PutFixed()
	o.Pc.PutFixed()
	o.F.SetFixed()
	o.H.SetFixed()
	return
}

// Viscosity returns the current viscosity function
func (o *System) Viscosity() fn.Func { return o.cterm.Visc }

// SetViscosity swaps the viscosity; the change takes effect on the next
// assembly (Solve always reassembles)
func (o *System) SetViscosity(value interface{}) error {
	f, err := fn.Convert(value)
	if err != nil {
		return cfgerr("viscosity: %v", err)
	}
	o.cterm.Visc = f
	o.pterm.Visc = f
	return nil
}

// BodyForce returns the current body force function (nil when unset)
func (o *System) BodyForce() fn.Func {
	if o.bterm == nil {
		return nil
	}
	return o.bterm.Fn
}

// SetBodyForce swaps the body force; the change takes effect on the next
// assembly
func (o *System) SetBodyForce(value interface{}) error {
	f, err := fn.Convert(value)
	if err != nil {
		return cfgerr("body force: %v", err)
	}
	if f.Size() != o.Msh.Ndim {
		return cfgerr("body force must have %d components", o.Msh.Ndim)
	}
	if o.bterm == nil {
		o.bterm = sle.NewVecAssemblyTerm(o.Swarm, o.F, f)
		return nil
	}
	o.bterm.Fn = f
	return nil
}

// Lambda returns the current compressibility function (nil when strictly
// incompressible)
func (o *System) Lambda() fn.Func { return o.lam }

// SetLambda swaps the compressibility; the change takes effect on the
// next assembly
func (o *System) SetLambda(value interface{}) error {
	if o.Penalty > 0 {
		return cfgerr("compressibility (lambda) and penalty cannot be combined")
	}
	f, err := fn.Convert(value)
	if err != nil {
		return cfgerr("lambda: %v", err)
	}
	o.lam = f
	if o.mterm == nil {
		o.mterm = sle.NewCompressibilityMatTerm(o.Swarm, o.M, compressFn(f))
		return nil
	}
	o.mterm.Fn = compressFn(f)
	return nil
}

// Repopulate refreshes the swarm weights; the next assembly integrates
// with the new weights
func (o *System) Repopulate() error {
	if err := o.Swarm.Repopulate(); err != nil {
		return chk.Err("swarm repopulation failed: %v", err)
	}
	return nil
}

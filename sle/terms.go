// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/stokes/fld"
	"github.com/cpmech/stokes/fn"
	"github.com/cpmech/stokes/msh"
	"github.com/cpmech/stokes/shp"
)

// Term is an element-level assembly kernel accumulating per-quadrature
// -point contributions into its target matrix or vector
type Term interface {
	Integrate() error
}

// ConstitutiveMatTerm assembles the viscous stiffness matrix K from a
// viscosity function; with a second viscosity and a director it adds the
// transverse-isotropic correction for anisotropic stress
type ConstitutiveMatTerm struct {

	// input
	Swarm    IntSwarm         // integration swarm
	Mat      *AssembledMatrix // target: K (velocity x velocity)
	Visc     fn.Func          // viscosity; may be swapped between assemblies
	Visc2    fn.Func          // second viscosity for anisotropy (optional)
	Director fn.Func          // director for anisotropy (optional)

	// scratchpad
	m  *msh.Mesh
	sh *shp.Shape
	x  [][]float64
	k  [][]float64
	nv []float64
}

// NewConstitutiveMatTerm creates a new viscous stiffness term
func NewConstitutiveMatTerm(swarm IntSwarm, mat *AssembledMatrix, visc, visc2, director fn.Func) (o *ConstitutiveMatTerm) {
	o = &ConstitutiveMatTerm{Swarm: swarm, Mat: mat, Visc: visc, Visc2: visc2, Director: director}
	o.m = mat.Row.Fld.Msh
	o.sh = shp.Get("qua4")
	ndim := o.m.Ndim
	nu := o.sh.Nverts * ndim
	o.x = la.MatAlloc(ndim, o.sh.Nverts)
	o.k = la.MatAlloc(nu, nu)
	o.nv = make([]float64, ndim)
	return
}

// Integrate accumulates the viscous stiffness contributions into K
func (o *ConstitutiveMatTerm) Integrate() (err error) {
	ndim := o.m.Ndim
	nverts := o.sh.Nverts
	for _, cell := range o.m.Cells {

		// local stiffness
		o.m.ExtractCoords(o.x, cell.Id)
		la.MatFill(o.k, 0)
		for _, ip := range o.Swarm.CellIps(cell.Id) {

			// interpolation gradients @ ip
			err = o.sh.CalcAtIp(o.x, ip, true)
			if err != nil {
				return
			}
			if o.sh.J < 0 {
				return chk.Err("cell %d: Jacobian is negative = %g", cell.Id, o.sh.J)
			}
			coef := o.sh.J * ip[3]
			G := o.sh.G
			xip := o.sh.IpRealCoords(o.x, ip)

			// isotropic part: 2*eta*strainrate(w):strainrate(u)
			eta := fn.EvalScalar(o.Visc, xip)
			for m := 0; m < nverts; m++ {
				for i := 0; i < ndim; i++ {
					r := i + m*ndim
					for n := 0; n < nverts; n++ {
						for j := 0; j < ndim; j++ {
							c := j + n*ndim
							v := G[m][j] * G[n][i]
							if i == j {
								for l := 0; l < ndim; l++ {
									v += G[m][l] * G[n][l]
								}
							}
							o.k[r][c] += coef * eta * v
						}
					}
				}
			}

			// transverse-isotropic correction along the director
			if o.Visc2 != nil {
				eta2 := fn.EvalScalar(o.Visc2, xip)
				o.Director.Eval(o.nv, xip)
				nrm := la.VecNorm(o.nv)
				if nrm < 1e-12 {
					continue // no preferred direction here
				}
				for i := 0; i < ndim; i++ {
					o.nv[i] /= nrm
				}
				deta := 2.0 * (eta - eta2)
				for m := 0; m < nverts; m++ {
					for i := 0; i < ndim; i++ {
						r := i + m*ndim
						for n := 0; n < nverts; n++ {
							for kk := 0; kk < ndim; kk++ {
								c := kk + n*ndim
								var v float64
								for j := 0; j < ndim; j++ {
									for l := 0; l < ndim; l++ {
										v += G[m][j] * lambdaTensor(o.nv, i, j, kk, l) * G[n][l]
									}
								}
								o.k[r][c] -= coef * deta * v
							}
						}
					}
				}
			}
		}

		// scatter-add to global matrix
		for m := 0; m < nverts; m++ {
			for i := 0; i < ndim; i++ {
				for n := 0; n < nverts; n++ {
					for j := 0; j < ndim; j++ {
						o.Mat.Add(cell.Verts[m], i, cell.Verts[n], j, o.k[i+m*ndim][j+n*ndim])
					}
				}
			}
		}
	}
	return
}

// lambdaTensor computes the transverse-isotropy projection tensor of a
// unit director nv
func lambdaTensor(nv []float64, i, j, k, l int) float64 {
	return (nv[i]*nv[k]*delta(j, l)+nv[j]*nv[k]*delta(i, l)+
		nv[i]*nv[l]*delta(j, k)+nv[j]*nv[l]*delta(i, k))/2.0 -
		2.0*nv[i]*nv[j]*nv[k]*nv[l]
}

func delta(a, b int) float64 {
	if a == b {
		return 1
	}
	return 0
}

// GradStiffMatTerm assembles the gradient matrix G coupling velocity and
// pressure shape functions. Constrained velocity rows are folded into the
// continuity right-hand side through the matrix's transpose companion.
type GradStiffMatTerm struct {

	// input
	Swarm IntSwarm         // integration swarm
	Mat   *AssembledMatrix // target: G (velocity x pressure)

	// scratchpad
	m  *msh.Mesh
	sh *shp.Shape
	ps *shp.Shape
	x  [][]float64
	g  [][]float64
}

// NewGradStiffMatTerm creates a new gradient/divergence coupling term
func NewGradStiffMatTerm(swarm IntSwarm, mat *AssembledMatrix) (o *GradStiffMatTerm) {
	o = &GradStiffMatTerm{Swarm: swarm, Mat: mat}
	o.m = mat.Row.Fld.Msh
	o.sh = shp.Get("qua4")
	o.ps = shp.Get("dq0")
	ndim := o.m.Ndim
	o.x = la.MatAlloc(ndim, o.sh.Nverts)
	o.g = la.MatAlloc(o.sh.Nverts*ndim, o.ps.Nverts)
	return
}

// Integrate accumulates the gradient coupling contributions into G
func (o *GradStiffMatTerm) Integrate() (err error) {
	ndim := o.m.Ndim
	nverts := o.sh.Nverts
	for _, cell := range o.m.Cells {
		o.m.ExtractCoords(o.x, cell.Id)
		la.MatFill(o.g, 0)
		for _, ip := range o.Swarm.CellIps(cell.Id) {
			err = o.sh.CalcAtIp(o.x, ip, true)
			if err != nil {
				return
			}
			coef := o.sh.J * ip[3]
			o.ps.Func(o.ps.S, o.ps.DSdR, ip, false, -1)
			for m := 0; m < nverts; m++ {
				for i := 0; i < ndim; i++ {
					for n := 0; n < o.ps.Nverts; n++ {
						// -div(w)*p coupling
						o.g[i+m*ndim][n] -= coef * o.sh.G[m][i] * o.ps.S[n]
					}
				}
			}
		}
		for m := 0; m < nverts; m++ {
			for i := 0; i < ndim; i++ {
				for n := 0; n < o.ps.Nverts; n++ {
					o.Mat.Add(cell.Verts[m], i, cell.Id, n, o.g[i+m*ndim][n])
				}
			}
		}
	}
	return
}

// PreconditionerMatTerm assembles the pressure-space matrix used to
// precondition the Schur complement: a pressure mass matrix scaled by the
// inverse viscosity. It always integrates with the fixed Gauss rule so
// the outer solve behaves consistently regardless of the swarm chosen for
// the other terms.
type PreconditionerMatTerm struct {

	// input
	Swarm IntSwarm         // Gauss swarm
	Mat   *AssembledMatrix // target: preconditioner (pressure x pressure)
	Visc  fn.Func          // viscosity

	// scratchpad
	m  *msh.Mesh
	sh *shp.Shape
	x  [][]float64
}

// NewPreconditionerMatTerm creates a new Schur preconditioner term
func NewPreconditionerMatTerm(gauss IntSwarm, mat *AssembledMatrix, visc fn.Func) (o *PreconditionerMatTerm) {
	o = &PreconditionerMatTerm{Swarm: gauss, Mat: mat, Visc: visc}
	o.m = mat.Row.Fld.Msh
	o.sh = shp.Get("qua4")
	o.x = la.MatAlloc(o.m.Ndim, o.sh.Nverts)
	return
}

// Integrate accumulates the preconditioner contributions
func (o *PreconditionerMatTerm) Integrate() (err error) {
	for _, cell := range o.m.Cells {
		o.m.ExtractCoords(o.x, cell.Id)
		var p float64
		for _, ip := range o.Swarm.CellIps(cell.Id) {
			err = o.sh.CalcAtIp(o.x, ip, true)
			if err != nil {
				return
			}
			xip := o.sh.IpRealCoords(o.x, ip)
			eta := fn.EvalScalar(o.Visc, xip)
			p += o.sh.J * ip[3] / eta
		}
		o.Mat.Add(cell.Id, 0, cell.Id, 0, p)
	}
	return
}

// CompressibilityMatTerm assembles the pressure-space compressibility
// matrix M = Na * fn * Nb; fn is typically the branching evaluator
// returning 1/lambda where lambda > 1e-8 and zero otherwise (strictly
// incompressible limit)
type CompressibilityMatTerm struct {

	// input
	Swarm IntSwarm         // integration swarm
	Mat   *AssembledMatrix // target: M (pressure x pressure)
	Fn    fn.Func          // scalar coefficient

	// scratchpad
	m  *msh.Mesh
	sh *shp.Shape
	x  [][]float64
}

// NewCompressibilityMatTerm creates a new compressibility term
func NewCompressibilityMatTerm(swarm IntSwarm, mat *AssembledMatrix, f fn.Func) (o *CompressibilityMatTerm) {
	o = &CompressibilityMatTerm{Swarm: swarm, Mat: mat, Fn: f}
	o.m = mat.Row.Fld.Msh
	o.sh = shp.Get("qua4")
	o.x = la.MatAlloc(o.m.Ndim, o.sh.Nverts)
	return
}

// Integrate accumulates the compressibility contributions
func (o *CompressibilityMatTerm) Integrate() (err error) {
	for _, cell := range o.m.Cells {
		o.m.ExtractCoords(o.x, cell.Id)
		var v float64
		for _, ip := range o.Swarm.CellIps(cell.Id) {
			err = o.sh.CalcAtIp(o.x, ip, true)
			if err != nil {
				return
			}
			xip := o.sh.IpRealCoords(o.x, ip)
			v += o.sh.J * ip[3] * fn.EvalScalar(o.Fn, xip)
		}
		o.Mat.Add(cell.Id, 0, cell.Id, 0, v)
	}
	return
}

// VecAssemblyTerm assembles Na*Fn contributions into a force vector: the
// body force (vector Fn, velocity rows) or the continuity source (scalar
// Fn, pressure rows)
type VecAssemblyTerm struct {

	// input
	Swarm IntSwarm         // integration swarm
	Vec   *AssembledVector // target force vector
	Fn    fn.Func          // integrand; may be swapped between assemblies

	// scratchpad
	m   *msh.Mesh
	sh  *shp.Shape
	x   [][]float64
	val []float64
}

// NewVecAssemblyTerm creates a new Na*Fn vector assembly term
func NewVecAssemblyTerm(swarm IntSwarm, vec *AssembledVector, f fn.Func) (o *VecAssemblyTerm) {
	o = &VecAssemblyTerm{Swarm: swarm, Vec: vec, Fn: f}
	o.m = vec.Eqn.Fld.Msh
	o.sh = shp.Get("qua4")
	o.x = la.MatAlloc(o.m.Ndim, o.sh.Nverts)
	o.val = make([]float64, f.Size())
	return
}

// Integrate accumulates the Na*Fn contributions
func (o *VecAssemblyTerm) Integrate() (err error) {
	ndim := o.m.Ndim
	onCells := o.Vec.Eqn.Fld.Loc == fld.AtCells
	for _, cell := range o.m.Cells {
		o.m.ExtractCoords(o.x, cell.Id)
		for _, ip := range o.Swarm.CellIps(cell.Id) {
			err = o.sh.CalcAtIp(o.x, ip, true)
			if err != nil {
				return
			}
			coef := o.sh.J * ip[3]
			xip := o.sh.IpRealCoords(o.x, ip)
			o.Fn.Eval(o.val, xip)
			if onCells {
				// piecewise-constant pressure row
				o.Vec.Add(cell.Id, 0, coef*o.val[0])
				continue
			}
			for m := 0; m < o.sh.Nverts; m++ {
				for i := 0; i < ndim; i++ {
					o.Vec.Add(cell.Verts[m], i, coef*o.sh.S[m]*o.val[i])
				}
			}
		}
	}
	return
}

// SurfaceFluxTerm integrates a prescribed traction over boundary faces
// into the force vector, with a higher-order face rule to resolve stress
// boundary condition fluctuations. The slot holds a single Neumann
// condition: supplying several conditions to the same slot retains only
// the most recent one.
type SurfaceFluxTerm struct {

	// input
	Vec  *AssembledVector // target force vector
	Nbc  *Neumann         // the (last) Neumann condition
	Npts int              // number of surface Gauss points

	// scratchpad
	m  *msh.Mesh
	sh *shp.Shape
	x  [][]float64
	t  []float64
}

// NewSurfaceFluxTerm creates a new surface traction term
func NewSurfaceFluxTerm(vec *AssembledVector, nbc *Neumann, npts int) (o *SurfaceFluxTerm) {
	o = &SurfaceFluxTerm{Vec: vec, Nbc: nbc, Npts: npts}
	o.m = vec.Eqn.Fld.Msh
	o.sh = shp.Get("qua4")
	o.x = la.MatAlloc(o.m.Ndim, o.sh.Nverts)
	o.t = make([]float64, o.m.Ndim)
	return
}

// Integrate accumulates the surface traction contributions
func (o *SurfaceFluxTerm) Integrate() (err error) {
	ndim := o.m.Ndim
	ips := shp.IpsFaceGauss(o.Npts)
	for _, face := range o.Nbc.Faces {
		cell := o.m.Cells[face.Cell]
		o.m.ExtractCoords(o.x, cell.Id)
		for _, ipf := range ips {
			err = o.sh.CalcAtFaceIp(o.x, ipf, face.Idx)
			if err != nil {
				return
			}
			jf := la.VecNorm(o.sh.Fnvec)
			coef := ipf[3] * jf
			xip := o.sh.FaceIpRealCoords(o.x, ipf, face.Idx)
			o.Nbc.Flux.Eval(o.t, xip)
			for k, mv := range o.sh.FaceLocalVerts[face.Idx] {
				for i := 0; i < ndim; i++ {
					o.Vec.Add(cell.Verts[mv], i, coef*o.sh.Sf[k]*o.t[i])
				}
			}
		}
	}
	return
}

// VepTerm assembles the visco-elastic stress-history contribution into the
// force vector: F += G^T * sigma_history, with the stress returned by Fn
// in Voigt order ([sxx syy sxy] in 2D; [sxx syy szz sxy syz szx] in 3D)
type VepTerm struct {

	// input
	Swarm IntSwarm         // integration swarm
	Vec   *AssembledVector // target force vector
	Fn    fn.Func          // stress history

	// scratchpad
	m   *msh.Mesh
	sh  *shp.Shape
	x   [][]float64
	sig []float64
}

// NewVepTerm creates a new stress-history force term
func NewVepTerm(swarm IntSwarm, vec *AssembledVector, f fn.Func) (o *VepTerm) {
	o = &VepTerm{Swarm: swarm, Vec: vec, Fn: f}
	o.m = vec.Eqn.Fld.Msh
	o.sh = shp.Get("qua4")
	o.x = la.MatAlloc(o.m.Ndim, o.sh.Nverts)
	o.sig = make([]float64, f.Size())
	return
}

// Integrate accumulates the stress-history contributions
func (o *VepTerm) Integrate() (err error) {
	ndim := o.m.Ndim
	for _, cell := range o.m.Cells {
		o.m.ExtractCoords(o.x, cell.Id)
		for _, ip := range o.Swarm.CellIps(cell.Id) {
			err = o.sh.CalcAtIp(o.x, ip, true)
			if err != nil {
				return
			}
			coef := o.sh.J * ip[3]
			xip := o.sh.IpRealCoords(o.x, ip)
			o.Fn.Eval(o.sig, xip)
			for m := 0; m < o.sh.Nverts; m++ {
				for i := 0; i < ndim; i++ {
					var v float64
					for j := 0; j < ndim; j++ {
						v += o.sh.G[m][j] * o.sig[voigt(ndim, i, j)]
					}
					o.Vec.Add(cell.Verts[m], i, coef*v)
				}
			}
		}
	}
	return
}

// voigt maps tensor indices to Voigt order
func voigt(ndim, i, j int) int {
	if i == j {
		return i
	}
	if ndim == 2 {
		return 2
	}
	switch i + j {
	case 1: // (0,1)
		return 3
	case 3: // (1,2)
		return 4
	}
	return 5 // (0,2)
}

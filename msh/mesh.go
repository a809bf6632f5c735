// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements a minimal structured finite-element mesh with
// vertex/cell connectivity, cell centres and boundary sets. It plays the
// collaborator role only: it supplies geometry to the assembly core and is
// immutable during a solve.
package msh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Vert holds vertex data
type Vert struct {
	Id int       // id
	C  []float64 // coordinates [ndim]
}

// Cell holds cell connectivity
type Cell struct {
	Id    int   // id
	Verts []int // vertices
}

// Face refers to one local face of a cell
type Face struct {
	Cell int // cell id
	Idx  int // local face index
}

// Mesh holds vertices, cells and boundary sets
type Mesh struct {
	Ndim     int               // space dimension
	Verts    []*Vert           // vertices
	Cells    []*Cell           // cells
	VertSets map[string][]int  // named vertex sets; e.g. "MinI" => ids of left wall vertices
	FaceSets map[string][]Face // named boundary face sets
	centres  [][]float64       // cell centres [ncells][ndim]
}

// NewGrid2d creates a nx by ny structured grid of qua4 cells over the
// rectangle [xmin,xmax] x [ymin,ymax]. Vertex sets "MinI", "MaxI", "MinJ"
// and "MaxJ" hold the left, right, bottom and top walls, respectively, and
// face sets with the same names hold the corresponding boundary faces.
func NewGrid2d(nx, ny int, xmin, xmax, ymin, ymax float64) (o *Mesh) {

	// check
	chk.IntAssertLessThan(0, nx)
	chk.IntAssertLessThan(0, ny)

	// vertices
	o = new(Mesh)
	o.Ndim = 2
	xx := utl.LinSpace(xmin, xmax, nx+1)
	yy := utl.LinSpace(ymin, ymax, ny+1)
	o.Verts = make([]*Vert, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			id := i + j*(nx+1)
			o.Verts[id] = &Vert{Id: id, C: []float64{xx[i], yy[j]}}
		}
	}

	// cells; counterclockwise qua4 connectivity
	o.Cells = make([]*Cell, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			id := i + j*nx
			a := i + j*(nx+1)
			o.Cells[id] = &Cell{Id: id, Verts: []int{a, a + 1, a + nx + 2, a + nx + 1}}
		}
	}

	// vertex sets
	o.VertSets = map[string][]int{
		"MinI": make([]int, 0, ny+1),
		"MaxI": make([]int, 0, ny+1),
		"MinJ": make([]int, 0, nx+1),
		"MaxJ": make([]int, 0, nx+1),
	}
	for j := 0; j <= ny; j++ {
		o.VertSets["MinI"] = append(o.VertSets["MinI"], j*(nx+1))
		o.VertSets["MaxI"] = append(o.VertSets["MaxI"], nx+j*(nx+1))
	}
	for i := 0; i <= nx; i++ {
		o.VertSets["MinJ"] = append(o.VertSets["MinJ"], i)
		o.VertSets["MaxJ"] = append(o.VertSets["MaxJ"], i+ny*(nx+1))
	}

	// face sets; local faces of qua4: 0=(0,1) bottom, 1=(1,2) right, 2=(2,3) top, 3=(3,0) left
	o.FaceSets = make(map[string][]Face)
	for j := 0; j < ny; j++ {
		o.FaceSets["MinI"] = append(o.FaceSets["MinI"], Face{Cell: j * nx, Idx: 3})
		o.FaceSets["MaxI"] = append(o.FaceSets["MaxI"], Face{Cell: nx - 1 + j*nx, Idx: 1})
	}
	for i := 0; i < nx; i++ {
		o.FaceSets["MinJ"] = append(o.FaceSets["MinJ"], Face{Cell: i, Idx: 0})
		o.FaceSets["MaxJ"] = append(o.FaceSets["MaxJ"], Face{Cell: i + (ny-1)*nx, Idx: 2})
	}

	// cell centres
	o.calcCentres()
	return
}

// CellCentre returns the centre (mean of vertex coordinates) of a cell
func (o *Mesh) CellCentre(cid int) []float64 {
	return o.centres[cid]
}

// ExtractCoords fills the coordinates matrix x[ndim][nverts] of a cell
func (o *Mesh) ExtractCoords(x [][]float64, cid int) {
	cell := o.Cells[cid]
	for i := 0; i < o.Ndim; i++ {
		for m, v := range cell.Verts {
			x[i][m] = o.Verts[v].C[i]
		}
	}
}

// VertSet returns the union of named vertex sets
func (o *Mesh) VertSet(names ...string) (verts []int) {
	seen := make(map[int]bool)
	for _, name := range names {
		for _, v := range o.VertSets[name] {
			if !seen[v] {
				seen[v] = true
				verts = append(verts, v)
			}
		}
	}
	return
}

// FaceSet returns the union of named boundary face sets
func (o *Mesh) FaceSet(names ...string) (faces []Face) {
	for _, name := range names {
		faces = append(faces, o.FaceSets[name]...)
	}
	return
}

// calcCentres computes cell centres
func (o *Mesh) calcCentres() {
	o.centres = make([][]float64, len(o.Cells))
	for _, cell := range o.Cells {
		c := make([]float64, o.Ndim)
		for _, v := range cell.Verts {
			for i := 0; i < o.Ndim; i++ {
				c[i] += o.Verts[v].C[i]
			}
		}
		for i := 0; i < o.Ndim; i++ {
			c[i] /= float64(len(cell.Verts))
		}
		o.centres[cell.Id] = c
	}
}

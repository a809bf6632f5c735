// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/stokes/msh"
	"github.com/cpmech/stokes/shp"
)

// IntSwarm supplies the integration points used by assembly terms: either
// a fixed Gauss rule or a particle-based (Voronoi-weighted) rule
type IntSwarm interface {
	CellIps(cid int) []shp.Ipoint
	Repopulate() error
}

// GaussSwarm is the fixed Gauss quadrature source
type GaussSwarm struct {
	Msh *msh.Mesh
	ips []shp.Ipoint
}

// NewGaussSwarm creates a Gauss integration swarm for the given mesh
func NewGaussSwarm(m *msh.Mesh) *GaussSwarm {
	return &GaussSwarm{Msh: m, ips: shp.IpsGauss("qua4")}
}

// CellIps returns the integration points of one cell
func (o *GaussSwarm) CellIps(cid int) []shp.Ipoint {
	return o.ips
}

// Repopulate is a no-op for fixed Gauss rules
func (o *GaussSwarm) Repopulate() error {
	return nil
}

// VoronoiSwarm is a particle-based quadrature source: each cell carries a
// set of particles at natural coordinates, and each particle's weight is
// the measure of its Voronoi region within the cell. Weights must be
// refreshed via Repopulate before the first use and after particles move.
type VoronoiSwarm struct {
	Msh  *msh.Mesh
	Nsub int             // subsamples per direction used to measure Voronoi regions
	R    [][][]float64   // [ncells][np][2] particle natural coordinates
	ips  [][]shp.Ipoint  // [ncells][np] current integration points
	live bool            // weights are up to date
}

// particle layout constants (plastic/R2 low-discrepancy sequence)
const (
	seqA = 0.7548776662466927
	seqB = 0.5698402909980532
)

// NewVoronoiSwarm creates a particle swarm with perCell particles per cell
// laid out deterministically inside each cell
func NewVoronoiSwarm(m *msh.Mesh, perCell int) (o *VoronoiSwarm) {
	chk.IntAssertLessThan(0, perCell)
	o = &VoronoiSwarm{Msh: m, Nsub: 8}
	o.R = make([][][]float64, len(m.Cells))
	for c := range o.R {
		o.R[c] = make([][]float64, perCell)
		for i := 0; i < perCell; i++ {
			u := math.Mod((float64(i)+0.5)*seqA, 1.0)
			v := math.Mod((float64(i)+0.5)*seqB, 1.0)
			o.R[c][i] = []float64{2.0*u - 1.0, 2.0*v - 1.0}
		}
	}
	return
}

// Repopulate recomputes particle weights from the current particle
// positions: a regular Nsub x Nsub grid of subsamples is partitioned by
// nearest particle and each particle receives the natural-coordinate
// measure of its share. Weights of one cell always sum to the natural
// cell volume, so constant fields integrate exactly.
func (o *VoronoiSwarm) Repopulate() error {
	if len(o.R) == 0 {
		return chk.Err("voronoi swarm has no cells")
	}
	vol := 4.0 / float64(o.Nsub*o.Nsub) // measure per subsample
	o.ips = make([][]shp.Ipoint, len(o.R))
	for c, parts := range o.R {
		np := len(parts)
		w := make([]float64, np)
		for a := 0; a < o.Nsub; a++ {
			for b := 0; b < o.Nsub; b++ {
				r := -1.0 + 2.0*(float64(a)+0.5)/float64(o.Nsub)
				s := -1.0 + 2.0*(float64(b)+0.5)/float64(o.Nsub)
				best, dmin := 0, -1.0
				for i, p := range parts {
					d := (r-p[0])*(r-p[0]) + (s-p[1])*(s-p[1])
					if dmin < 0 || d < dmin {
						best, dmin = i, d
					}
				}
				w[best] += vol
			}
		}
		o.ips[c] = make([]shp.Ipoint, np)
		for i, p := range parts {
			o.ips[c][i] = shp.Ipoint{p[0], p[1], 0, w[i]}
		}
	}
	o.live = true
	return nil
}

// CellIps returns the integration points of one cell
func (o *VoronoiSwarm) CellIps(cid int) []shp.Ipoint {
	if !o.live {
		chk.Panic("voronoi swarm must be repopulated before first use")
	}
	return o.ips[cid]
}

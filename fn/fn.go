// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fn implements evaluatable coefficient functions: a closed set of
// tagged variants behind one Func interface. Functions supply viscosity,
// body-force, lambda, director and stress-history values at integration
// points without materialising per-node arrays up front.
package fn

import (
	"github.com/cpmech/gosl/chk"
)

// Func is an evaluator over spatial position. Implementations write their
// Size() components into res; res must have length Size().
type Func interface {
	Size() int
	Eval(res, x []float64)
}

// Cte is a scalar constant
type Cte struct {
	C float64
}

// Size returns the number of components
func (o *Cte) Size() int { return 1 }

// Eval computes the value @ x
func (o *Cte) Eval(res, x []float64) { res[0] = o.C }

// Vec is a vector constant
type Vec struct {
	V []float64
}

// Size returns the number of components
func (o *Vec) Size() int { return len(o.V) }

// Eval computes the value @ x
func (o *Vec) Eval(res, x []float64) { copy(res, o.V) }

// Scalar wraps a scalar-valued expression
type Scalar struct {
	F func(x []float64) float64
}

// Size returns the number of components
func (o *Scalar) Size() int { return 1 }

// Eval computes the value @ x
func (o *Scalar) Eval(res, x []float64) { res[0] = o.F(x) }

// Vector wraps a vector-valued expression with N components
type Vector struct {
	N int
	F func(res, x []float64)
}

// Size returns the number of components
func (o *Vector) Size() int { return o.N }

// Eval computes the value @ x
func (o *Vector) Eval(res, x []float64) { o.F(res, x) }

// Recip evaluates the reciprocal 1/a of a scalar function
type Recip struct {
	A Func
}

// Size returns the number of components
func (o *Recip) Size() int { return 1 }

// Eval computes the value @ x
func (o *Recip) Eval(res, x []float64) {
	o.A.Eval(res, x)
	res[0] = 1.0 / res[0]
}

// Conditional branches on a scalar predicate function evaluated eagerly at
// each point: if Cond(x) > Above, evaluates Pos; otherwise evaluates Neg.
// Pos and Neg must have the same size.
type Conditional struct {
	Cond  Func    // scalar predicate input
	Above float64 // threshold
	Pos   Func    // branch for Cond(x) > Above
	Neg   Func    // branch otherwise
}

// Size returns the number of components
func (o *Conditional) Size() int { return o.Pos.Size() }

// Eval computes the value @ x
func (o *Conditional) Eval(res, x []float64) {
	var c [1]float64
	o.Cond.Eval(c[:], x)
	if c[0] > o.Above {
		o.Pos.Eval(res, x)
		return
	}
	o.Neg.Eval(res, x)
}

// Convert is the single conversion entry point turning a plain value into a
// Func. Accepted kinds: Func (returned as is), float64/int (Cte),
// []float64 (Vec), func(x []float64) float64 (Scalar). Anything else is an
// error.
func Convert(value interface{}) (Func, error) {
	switch v := value.(type) {
	case Func:
		return v, nil
	case float64:
		return &Cte{C: v}, nil
	case int:
		return &Cte{C: float64(v)}, nil
	case []float64:
		return &Vec{V: v}, nil
	case func(x []float64) float64:
		return &Scalar{F: v}, nil
	}
	return nil, chk.Err("cannot convert %v (%T) to Func", value, value)
}

// EvalScalar is a helper returning the first component of f @ x
func EvalScalar(f Func, x []float64) float64 {
	var res [1]float64
	f.Eval(res[:], x)
	return res[0]
}

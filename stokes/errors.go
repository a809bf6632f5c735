// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stokes

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// ErrMaxIterations signals that the outer pressure iteration hit its limit.
// The best solution found so far has been written back to the fields.
var ErrMaxIterations = errors.New("maximum number of pressure iterations reached")

// ConfigError reports an invalid system set-up (wrong field layout,
// missing viscosity, unconvertible coefficient, conflicting options)
type ConfigError struct {
	Msg string
}

// Error returns the message
func (o *ConfigError) Error() string { return o.Msg }

// cfgerr creates a new ConfigError with a formatted message
func cfgerr(msg string, prm ...interface{}) *ConfigError {
	return &ConfigError{Msg: io.Sf(msg, prm...)}
}

// DivergenceError reports a failed solve: either a non-finite value in
// the outer iteration or a breakdown of the inner velocity solver. The
// fields keep their pre-solve values.
type DivergenceError struct {
	Iteration int     // outer iteration at which the failure was detected
	Norm      float64 // offending residual norm (outer failures only)
	Inner     error   // velocity solver failure, if that is the cause
}

// Error returns the message
func (o *DivergenceError) Error() string {
	if o.Inner != nil {
		return io.Sf("velocity solve at pressure iteration %d failed: %v", o.Iteration, o.Inner)
	}
	return io.Sf("pressure iteration %d diverged (residual norm = %v)", o.Iteration, o.Norm)
}

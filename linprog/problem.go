// Package linprog describes bounded linear programs and solves them.
//
// A Problem is given in the general form
//
//	minimize    c^T x
//	subject to  G x <= h
//	            A x  = b
//	            lower_k <= x_k <= upper_k
//
// which is the shape produced when a matrix game is reduced to an LP.
package linprog

import (
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidProblem is returned for malformed problems.
	ErrInvalidProblem = errors.New("linprog: invalid problem")
	// ErrInfeasible is returned when no point satisfies the constraints.
	ErrInfeasible = errors.New("linprog: problem is infeasible")
	// ErrUnbounded is returned when the objective decreases without bound.
	ErrUnbounded = errors.New("linprog: problem is unbounded")
	// ErrIterationLimit is returned when the solver runs out of pivots.
	ErrIterationLimit = errors.New("linprog: iteration limit reached")
)

// Bound restricts a single variable to [Lower, Upper].
// Use math.Inf for an unbounded side.
type Bound struct {
	Lower float64
	Upper float64
}

// NonNegative is the bound x >= 0.
func NonNegative() Bound {
	return Bound{Lower: 0, Upper: math.Inf(1)}
}

// Free leaves a variable unrestricted in sign.
func Free() Bound {
	return Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Problem is a linear program in general form. Rows of InequalityA and
// EqualityA must have one entry per variable, i.e. len(Objective).
type Problem struct {
	Objective   []float64
	InequalityA [][]float64
	InequalityB []float64
	EqualityA   [][]float64
	EqualityB   []float64
	Bounds      []Bound
}

// NumVariables returns the number of variables, len(Objective).
func (p *Problem) NumVariables() int {
	return len(p.Objective)
}

// Validate sanity checks the dimensions and values of the problem.
func (p *Problem) Validate() error {
	n := p.NumVariables()
	if n == 0 {
		return errors.Wrap(ErrInvalidProblem, "objective has no variables")
	}
	if err := checkFinite("objective", p.Objective); err != nil {
		return err
	}

	if len(p.InequalityA) != len(p.InequalityB) {
		return errors.Wrapf(ErrInvalidProblem, "%d inequality rows but %d bounds",
			len(p.InequalityA), len(p.InequalityB))
	}
	if len(p.EqualityA) != len(p.EqualityB) {
		return errors.Wrapf(ErrInvalidProblem, "%d equality rows but %d bounds",
			len(p.EqualityA), len(p.EqualityB))
	}
	if len(p.InequalityA)+len(p.EqualityA) == 0 {
		return errors.Wrap(ErrInvalidProblem, "problem has no constraints")
	}

	for i, row := range p.InequalityA {
		if len(row) != n {
			return errors.Wrapf(ErrInvalidProblem, "inequality row %d has %d entries, expected %d", i, len(row), n)
		}
		if err := checkFinite("inequality row", row); err != nil {
			return err
		}
	}
	if err := checkFinite("inequality bound", p.InequalityB); err != nil {
		return err
	}

	for i, row := range p.EqualityA {
		if len(row) != n {
			return errors.Wrapf(ErrInvalidProblem, "equality row %d has %d entries, expected %d", i, len(row), n)
		}
		if err := checkFinite("equality row", row); err != nil {
			return err
		}
	}
	if err := checkFinite("equality bound", p.EqualityB); err != nil {
		return err
	}

	if len(p.Bounds) != n {
		return errors.Wrapf(ErrInvalidProblem, "%d variable bounds for %d variables", len(p.Bounds), n)
	}
	for k, b := range p.Bounds {
		if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) {
			return errors.Wrapf(ErrInvalidProblem, "bound on variable %d is NaN", k)
		}
		if b.Lower > b.Upper {
			return errors.Wrapf(ErrInvalidProblem, "bound on variable %d has lower %v > upper %v", k, b.Lower, b.Upper)
		}
		if math.IsInf(b.Lower, 1) || math.IsInf(b.Upper, -1) {
			return errors.Wrapf(ErrInvalidProblem, "bound on variable %d is empty: [%v, %v]", k, b.Lower, b.Upper)
		}
	}

	return nil
}

func checkFinite(what string, vs []float64) error {
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidProblem, "%s entry %d is not finite: %v", what, i, v)
		}
	}
	return nil
}

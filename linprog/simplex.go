package linprog

import (
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

const defaultTolerance = 1e-9

// Result is an optimal solution of a Problem.
type Result struct {
	// Optimal values of the problem variables.
	X []float64
	// Value of the minimized objective at X.
	Objective float64
}

// Solver solves bounded linear programs.
type Solver interface {
	Solve(p *Problem) (*Result, error)
}

// Simplex solves problems with a dense two-phase tableau simplex using
// Bland's pivoting rule. It holds no state between calls and is safe for
// concurrent use.
type Simplex struct {
	// Tolerance below which reduced costs, pivot elements and residuals are
	// treated as zero. Defaults to 1e-9.
	Tolerance float64
	// MaxIterations caps the pivots of each phase. Defaults to 100 times
	// the size of the standard form problem.
	MaxIterations int
}

// NewSimplex returns a Simplex with default settings.
func NewSimplex() *Simplex {
	return &Simplex{}
}

// Solve validates p and returns an optimal solution, or ErrInfeasible,
// ErrUnbounded or ErrIterationLimit.
func (s *Simplex) Solve(p *Problem) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sf, err := p.toStandardForm()
	if err != nil {
		return nil, err
	}

	nRows, nCols := sf.a.Dims()
	tol := s.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = 100 * (nRows + nCols)
	}

	glog.V(2).Infof("Solving standard form LP: %d constraints, %d variables", nRows, nCols)
	y, err := newTableau(sf.a, sf.b, tol, maxIter).solve(sf.c)
	if err != nil {
		return nil, err
	}

	return &Result{
		X:         sf.originalX(y),
		Objective: sf.objective(floats.Dot(sf.c, y)),
	}, nil
}

package zerosum

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/timpalpant/zerosum/linprog"
)

// DefaultPrecision is the number of decimal places the game value and
// strategies of a mixed solution are rounded to.
const DefaultPrecision = 4

// Report is the result of solving a game.
type Report struct {
	Original *Matrix `json:"original"`
	// Reduced is nil if no strategy was dominated.
	Reduced *ReducedMatrix `json:"reduced,omitempty"`
	// SaddlePoint is nil if the game has no pure-strategy equilibrium.
	SaddlePoint *SaddlePoint `json:"saddle_point,omitempty"`
	Value       float64      `json:"value"`
	// Optimal mixed strategies over the strategies of the reduced matrix,
	// rounded to Precision decimal places. Nil when there is a saddle point.
	RowStrategy    []float64 `json:"row_strategy,omitempty"`
	ColumnStrategy []float64 `json:"column_strategy,omitempty"`
	Precision      int       `json:"precision"`
	// Solution is the unrounded LP solution, nil when there is a saddle point.
	Solution *Solution `json:"-"`
}

type options struct {
	solver    linprog.Solver
	precision int
}

// Option configures Solve.
type Option func(*options)

// WithSolver sets the LP solver used for games without a saddle point.
// A nil solver keeps the default.
func WithSolver(solver linprog.Solver) Option {
	return func(o *options) {
		if solver != nil {
			o.solver = solver
		}
	}
}

// WithPrecision sets the number of decimal places reported.
func WithPrecision(precision int) Option {
	return func(o *options) {
		o.precision = precision
	}
}

// Solve computes the solution of the game with payoff matrix m.
//
// Dominated strategies are removed first and reported if there were any.
// The saddle point search runs on m itself. If m has a saddle point its
// value is the game value and no LP is solved. Otherwise the game value and
// both optimal strategies are computed from the reduced matrix by solving
// the row and column player LPs.
//
// Strategies index the strategies of the reduced matrix; use
// Reduced.RowIndices and Reduced.ColIndices to map them back.
func Solve(m *Matrix, opts ...Option) (*Report, error) {
	if nRows, nCols := m.Dims(); nRows == 0 || nCols == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "payoff matrix is empty")
	}

	o := options{
		solver:    linprog.NewSimplex(),
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(&o)
	}

	report := &Report{
		Original:  m,
		Precision: o.precision,
	}

	reduced := Reduce(m)
	if reduced.Changed() {
		report.Reduced = reduced
	}

	if saddle := FindSaddlePoint(m); saddle != nil {
		glog.V(1).Infof("Found saddle point at (%d, %d) with value %v", saddle.Row, saddle.Col, saddle.Value)
		report.SaddlePoint = saddle
		report.Value = saddle.Value
		return report, nil
	}

	solution, err := SolveMixed(reduced.Matrix, o.solver)
	if err != nil {
		return nil, err
	}

	report.Solution = solution
	report.Value = scalar.RoundEven(solution.Value, o.precision)
	report.RowStrategy = roundAll(solution.RowStrategy, o.precision)
	report.ColumnStrategy = roundAll(solution.ColumnStrategy, o.precision)
	return report, nil
}

// SolveRows is a convenience wrapper that validates rows with NewMatrix
// and then solves the game.
func SolveRows(rows [][]float64, opts ...Option) (*Report, error) {
	m, err := NewMatrix(rows)
	if err != nil {
		return nil, err
	}

	return Solve(m, opts...)
}

// roundAll rounds each entry half to even.
func roundAll(xs []float64, precision int) []float64 {
	result := make([]float64, len(xs))
	for i, x := range xs {
		result[i] = scalar.RoundEven(x, precision)
	}

	return result
}

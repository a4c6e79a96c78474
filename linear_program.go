package zerosum

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/zerosum/linprog"
)

// Solution is the value of a game and an optimal mixed strategy for
// each player.
type Solution struct {
	Value          float64   `json:"value"`
	RowStrategy    []float64 `json:"row_strategy"`
	ColumnStrategy []float64 `json:"column_strategy"`
}

// RowPlayerLP builds the linear program whose solution is an optimal mixed
// strategy p of the row player together with the game value v:
//
//	maximize    v
//	subject to  sum_i p_i M[i][j] >= v   for every column j
//	            sum_i p_i = 1
//	            p_i >= 0, v free
//
// The variables are ordered [p_0, ..., p_{r-1}, v]. The problem is stated as
// a minimization of -v, with each column constraint written as
// -M^T p + v <= 0.
func RowPlayerLP(m *Matrix) (*linprog.Problem, error) {
	nRows, nCols := m.Dims()
	if nRows == 0 || nCols == 0 {
		return nil, errors.Wrapf(ErrDegenerateLP, "payoff matrix is %dx%d", nRows, nCols)
	}

	nVars := nRows + 1
	objective := make([]float64, nVars)
	objective[nRows] = -1

	ineqA := make([][]float64, nCols)
	for j := range ineqA {
		row := make([]float64, nVars)
		for i := 0; i < nRows; i++ {
			row[i] = -m.At(i, j)
		}
		row[nRows] = 1
		ineqA[j] = row
	}

	eqRow := make([]float64, nVars)
	for i := 0; i < nRows; i++ {
		eqRow[i] = 1
	}

	bounds := make([]linprog.Bound, nVars)
	for i := 0; i < nRows; i++ {
		bounds[i] = linprog.NonNegative()
	}
	bounds[nRows] = linprog.Free()

	return &linprog.Problem{
		Objective:   objective,
		InequalityA: ineqA,
		InequalityB: make([]float64, nCols),
		EqualityA:   [][]float64{eqRow},
		EqualityB:   []float64{1},
		Bounds:      bounds,
	}, nil
}

// ColumnPlayerLP builds the row player LP of -M^T, the game in which the
// column player chooses rows and receives the negated payoffs. Its strategy
// variables are an optimal mixed strategy of the column player, and its
// value is the negated game value.
func ColumnPlayerLP(m *Matrix) (*linprog.Problem, error) {
	if nRows, nCols := m.Dims(); nRows == 0 || nCols == 0 {
		return nil, errors.Wrapf(ErrDegenerateLP, "payoff matrix is %dx%d", nRows, nCols)
	}

	return RowPlayerLP(m.T().Negate())
}

// SolveRowPlayer solves RowPlayerLP(m), returning the row player's optimal
// strategy and the game value.
func SolveRowPlayer(m *Matrix, solver linprog.Solver) ([]float64, float64, error) {
	problem, err := RowPlayerLP(m)
	if err != nil {
		return nil, 0, err
	}

	strategy, value, err := solveStrategy(problem, solver)
	if err != nil {
		return nil, 0, errors.Wrap(err, "row player LP")
	}

	return strategy, value, nil
}

// SolveColumnPlayer solves ColumnPlayerLP(m), returning the column player's
// optimal strategy and the game value from the row player's point of view.
func SolveColumnPlayer(m *Matrix, solver linprog.Solver) ([]float64, float64, error) {
	problem, err := ColumnPlayerLP(m)
	if err != nil {
		return nil, 0, err
	}

	strategy, value, err := solveStrategy(problem, solver)
	if err != nil {
		return nil, 0, errors.Wrap(err, "column player LP")
	}

	return strategy, -value, nil
}

// SolveMixed solves both players' linear programs independently.
// The reported value is that of the row player's program. A nil solver
// uses linprog.NewSimplex.
func SolveMixed(m *Matrix, solver linprog.Solver) (*Solution, error) {
	rowStrategy, value, err := SolveRowPlayer(m, solver)
	if err != nil {
		return nil, err
	}

	colStrategy, colValue, err := SolveColumnPlayer(m, solver)
	if err != nil {
		return nil, err
	}

	if math.Abs(value-colValue) > 1e-6 {
		glog.Warningf("Row and column player LPs disagree on game value: %v != %v", value, colValue)
	}

	return &Solution{
		Value:          value,
		RowStrategy:    rowStrategy,
		ColumnStrategy: colStrategy,
	}, nil
}

// solveStrategy solves a row player LP and splits its solution into the
// strategy and the maximized value.
func solveStrategy(problem *linprog.Problem, solver linprog.Solver) ([]float64, float64, error) {
	if solver == nil {
		solver = linprog.NewSimplex()
	}

	result, err := solver.Solve(problem)
	if err != nil {
		return nil, 0, err
	}

	nStrategies := problem.NumVariables() - 1
	if len(result.X) != problem.NumVariables() {
		return nil, 0, errors.Errorf("solver returned %d variables, expected %d",
			len(result.X), problem.NumVariables())
	}

	strategy := make([]float64, nStrategies)
	for i, p := range result.X[:nStrategies] {
		// Simplex pivots can leave round-off slightly below zero.
		strategy[i] = math.Max(p, 0)
	}

	return strategy, -result.Objective, nil
}

package zerosum

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/timpalpant/zerosum/linprog"
)

type countingSolver struct {
	linprog.Solver
	calls int
}

func (s *countingSolver) Solve(p *linprog.Problem) (*linprog.Result, error) {
	s.calls++
	return s.Solver.Solve(p)
}

func TestSolveMixedStrategies(t *testing.T) {
	solver := &countingSolver{Solver: linprog.NewSimplex()}
	report, err := SolveRows([][]float64{{-3, 2}, {2, -1}}, WithSolver(solver))
	require.NoError(t, err)

	assert.Nil(t, report.Reduced)
	assert.Nil(t, report.SaddlePoint)
	assert.Equal(t, DefaultPrecision, report.Precision)
	assert.InDelta(t, 0.125, report.Value, 1e-12)
	assert.InDeltaSlice(t, []float64{0.375, 0.625}, report.RowStrategy, 1e-12)
	assert.InDeltaSlice(t, []float64{0.375, 0.625}, report.ColumnStrategy, 1e-12)
	require.NotNil(t, report.Solution)
	assert.InDelta(t, 0.125, report.Solution.Value, 1e-6)
	assert.Equal(t, 2, solver.calls)
}

func TestSolveWithoutSaddlePoint(t *testing.T) {
	report, err := SolveRows([][]float64{{4, 3}, {2, 5}})
	require.NoError(t, err)

	assert.Nil(t, report.SaddlePoint)
	assert.InDelta(t, 3.5, report.Value, 1e-12)
	assert.InDeltaSlice(t, []float64{0.75, 0.25}, report.RowStrategy, 1e-12)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, report.ColumnStrategy, 1e-12)
}

func TestSolveSaddlePointSkipsLP(t *testing.T) {
	m := MustNewMatrix([][]float64{{4, 5}, {2, 6}})
	solver := &countingSolver{Solver: linprog.NewSimplex()}
	report, err := Solve(m, WithSolver(solver))
	require.NoError(t, err)

	assert.Equal(t, &SaddlePoint{Row: 0, Col: 0, Value: 4}, report.SaddlePoint)
	assert.Equal(t, 4.0, report.Value)
	assert.Nil(t, report.RowStrategy)
	assert.Nil(t, report.ColumnStrategy)
	assert.Nil(t, report.Solution)
	assert.Equal(t, 0, solver.calls)

	// Column 1 is dominated.
	require.NotNil(t, report.Reduced)
	assert.Equal(t, [][]float64{{4}, {2}}, report.Reduced.Matrix.RawRows())

	// The skipped LP would have found the same value.
	solution, err := SolveMixed(m, linprog.NewSimplex())
	require.NoError(t, err)
	assert.InDelta(t, report.Value, solution.Value, 1e-6)
	assert.InDeltaSlice(t, []float64{1, 0}, solution.RowStrategy, 1e-6)
	assert.InDeltaSlice(t, []float64{1, 0}, solution.ColumnStrategy, 1e-6)
}

func TestSolveDominatedWithSaddlePoint(t *testing.T) {
	report, err := SolveRows([][]float64{
		{-3, 4, 5, 7, 8},
		{-5, 0, 4, 6, -1},
		{-12, 5, -7, 8, 2},
	})
	require.NoError(t, err)

	require.NotNil(t, report.Reduced)
	assert.Equal(t, [][]float64{{-3}, {-12}}, report.Reduced.Matrix.RawRows())
	assert.Equal(t, []int{0, 2}, report.Reduced.RowIndices)
	assert.Equal(t, []int{0}, report.Reduced.ColIndices)
	assert.Equal(t, &SaddlePoint{Row: 0, Col: 0, Value: -3}, report.SaddlePoint)
	assert.Equal(t, -3.0, report.Value)
}

func TestSolveMixed3x4(t *testing.T) {
	rows := [][]float64{{-1, 2, 7, -8}, {-2, 1, 1, 4}, {3, 1, 2, -2}}
	report, err := SolveRows(rows)
	require.NoError(t, err)

	assert.Nil(t, report.Reduced)
	assert.Nil(t, report.SaddlePoint)
	require.Len(t, report.RowStrategy, 3)
	require.Len(t, report.ColumnStrategy, 4)
	assertProbabilityVector(t, report.Solution.RowStrategy)
	assertProbabilityVector(t, report.Solution.ColumnStrategy)

	m := MustNewMatrix(rows)
	_, rowValue, err := SolveRowPlayer(m, linprog.NewSimplex())
	require.NoError(t, err)
	_, colValue, err := SolveColumnPlayer(m, linprog.NewSimplex())
	require.NoError(t, err)
	assert.InDelta(t, rowValue, colValue, 1e-4)
	assert.InDelta(t, rowValue, report.Value, 1e-4)
}

func TestSolveDegenerateGames(t *testing.T) {
	report, err := SolveRows([][]float64{{3, -3}, {-3, -2}})
	require.NoError(t, err)
	assert.Nil(t, report.SaddlePoint)
	assert.InDelta(t, -2.1429, report.Value, 1e-12)
	assert.InDeltaSlice(t, []float64{0.1429, 0.8571}, report.RowStrategy, 1e-12)
	assert.InDeltaSlice(t, []float64{0.1429, 0.8571}, report.ColumnStrategy, 1e-12)

	done := make(chan error, 1)
	go func() {
		report, err = SolveRows(degenerate6x5)
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Solve did not return")
	}

	assert.Nil(t, report.SaddlePoint)
	assert.InDelta(t, -0.3333, report.Value, 1e-12)
	assert.InDelta(t, 1, floats.Sum(report.RowStrategy), 1e-3)
	assert.InDelta(t, 1, floats.Sum(report.ColumnStrategy), 1e-3)
}

func TestSolveNilSolver(t *testing.T) {
	report, err := SolveRows([][]float64{{-3, 2}, {2, -1}}, WithSolver(nil))
	require.NoError(t, err)
	assert.InDelta(t, 0.125, report.Value, 1e-12)

	solution, err := SolveMixed(MustNewMatrix([][]float64{{4, 3}, {2, 5}}), nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, solution.Value, 1e-6)
}

func TestSolveSingleEntry(t *testing.T) {
	report, err := SolveRows([][]float64{{-2}})
	require.NoError(t, err)
	assert.Equal(t, &SaddlePoint{Row: 0, Col: 0, Value: -2}, report.SaddlePoint)
	assert.Nil(t, report.Reduced)
}

func TestSolvePrecision(t *testing.T) {
	report, err := SolveRows([][]float64{{-3, 2}, {2, -1}}, WithPrecision(1))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Precision)
	assert.InDelta(t, 0.1, report.Value, 1e-12)
	assert.InDeltaSlice(t, []float64{0.4, 0.6}, report.RowStrategy, 1e-12)
	assert.InDeltaSlice(t, []float64{0.4, 0.6}, report.ColumnStrategy, 1e-12)
}

func TestSolveInvalidInput(t *testing.T) {
	_, err := Solve(nil)
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)

	_, err = Solve(&Matrix{})
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)

	_, err = SolveRows([][]float64{{1, 2}, {3}})
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
}

func TestSolveSolverFailure(t *testing.T) {
	_, err := SolveRows([][]float64{{-3, 2}, {2, -1}}, WithSolver(failingSolver{linprog.ErrInfeasible}))
	assert.True(t, errors.Is(err, linprog.ErrInfeasible), "got %v", err)
}

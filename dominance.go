package zerosum

import (
	"github.com/golang/glog"
)

// ReducedMatrix is a payoff matrix with dominated strategies removed,
// together with the original indices of the strategies that survived.
type ReducedMatrix struct {
	Matrix *Matrix `json:"matrix"`
	// Original indices of the surviving rows and columns, ascending.
	RowIndices []int `json:"row_indices"`
	ColIndices []int `json:"col_indices"`
	// Original indices of the removed rows and columns, in the order
	// they were found to be dominated.
	RemovedRows []int `json:"removed_rows,omitempty"`
	RemovedCols []int `json:"removed_cols,omitempty"`
}

// Changed reports whether any strategy was removed.
func (r *ReducedMatrix) Changed() bool {
	return len(r.RemovedRows) > 0 || len(r.RemovedCols) > 0
}

// Reduce removes strictly dominated strategies of both players.
//
// Each player's strategies are swept once, left to right: strategy i is
// compared against every later surviving strategy j. If i is strictly better
// than j against every opponent strategy, j is removed and the sweep for i
// continues. Otherwise, if j is at least as good as i everywhere, i is
// removed and the sweep moves on to i+1. The row player prefers larger
// payoffs and the column player smaller ones.
//
// Both sweeps look at m itself, so the column sweep does not see rows
// removed by the row sweep, and dominance that only appears once another
// strategy is gone is not found. Reduce is not iterated to a fixed point.
//
// m is never modified; the result always holds a new matrix.
func Reduce(m *Matrix) *ReducedMatrix {
	nRows, nCols := m.Dims()
	if nRows == 0 || nCols == 0 {
		return &ReducedMatrix{Matrix: m}
	}

	removedRows := sweepDominated(m.RawRows(), greater, lessOrEqual)
	removedCols := sweepDominated(m.T().RawRows(), less, greaterOrEqual)
	rowIndices := survivors(nRows, removedRows)
	colIndices := survivors(nCols, removedCols)

	if len(removedRows) > 0 || len(removedCols) > 0 {
		glog.V(1).Infof("Removed dominated rows %v and columns %v", removedRows, removedCols)
	}

	return &ReducedMatrix{
		Matrix:      m.selectEntries(rowIndices, colIndices),
		RowIndices:  rowIndices,
		ColIndices:  colIndices,
		RemovedRows: removedRows,
		RemovedCols: removedCols,
	}
}

// sweepDominated returns the indices of strategies found to be dominated in
// one pass over the given payoff vectors. Strategy i dominates j when
// strict(i_k, j_k) holds for every k, and is dominated by j when
// weak(i_k, j_k) holds for every k.
func sweepDominated(strategies [][]float64, strict, weak func(a, b float64) bool) []int {
	excluded := make([]bool, len(strategies))
	var removed []int
	for i := 0; i < len(strategies)-1; i++ {
		if excluded[i] {
			continue
		}

		for j := i + 1; j < len(strategies); j++ {
			if excluded[j] {
				continue
			}

			if all(strategies[i], strategies[j], strict) {
				excluded[j] = true
				removed = append(removed, j)
			} else if all(strategies[i], strategies[j], weak) {
				excluded[i] = true
				removed = append(removed, i)
				break
			}
		}
	}

	return removed
}

func all(a, b []float64, cmp func(x, y float64) bool) bool {
	for k := range a {
		if !cmp(a[k], b[k]) {
			return false
		}
	}

	return true
}

func survivors(n int, removed []int) []int {
	isRemoved := make([]bool, n)
	for _, i := range removed {
		isRemoved[i] = true
	}

	result := make([]int, 0, n-len(removed))
	for i := 0; i < n; i++ {
		if !isRemoved[i] {
			result = append(result, i)
		}
	}

	return result
}

func greater(a, b float64) bool        { return a > b }
func less(a, b float64) bool           { return a < b }
func lessOrEqual(a, b float64) bool    { return a <= b }
func greaterOrEqual(a, b float64) bool { return a >= b }

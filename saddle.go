package zerosum

import (
	"gonum.org/v1/gonum/floats"
)

// SaddlePoint is an entry that is both the minimum of its row and the
// maximum of its column: a pure-strategy equilibrium of the game.
type SaddlePoint struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Value float64 `json:"value"`
}

// FindSaddlePoint returns a saddle point of m, or nil if there is none.
//
// Columns are scanned in order, and within each column the rows attaining the
// column maximum are checked in order. The first entry that is also its row's
// minimum is returned. All saddle points of a game share the same value, but
// callers may rely on this choice of indices.
func FindSaddlePoint(m *Matrix) *SaddlePoint {
	nRows, nCols := m.Dims()
	rowMins := make([]float64, nRows)
	for i := range rowMins {
		rowMins[i] = floats.Min(m.Row(i))
	}

	for j := 0; j < nCols; j++ {
		col := m.Col(j)
		colMax := floats.Max(col)
		for i, x := range col {
			if x == colMax && rowMins[i] == colMax {
				return &SaddlePoint{Row: i, Col: j, Value: x}
			}
		}
	}

	return nil
}

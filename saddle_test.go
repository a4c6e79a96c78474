package zerosum

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindSaddlePoint(t *testing.T) {
	testCases := []struct {
		name     string
		matrix   [][]float64
		expected *SaddlePoint
	}{
		{"mixed 2x2", [][]float64{{-3, 2}, {2, -1}}, nil},
		// 4 is the maximum of column 0 but row 0's minimum is 3.
		{"column max is not row min", [][]float64{{4, 3}, {2, 5}}, nil},
		{"pure 2x2", [][]float64{{4, 5}, {2, 6}}, &SaddlePoint{Row: 0, Col: 0, Value: 4}},
		{
			"pure 3x5",
			[][]float64{{-3, 4, 5, 7, 8}, {-5, 0, 4, 6, -1}, {-12, 5, -7, 8, 2}},
			&SaddlePoint{Row: 0, Col: 0, Value: -3},
		},
		{"mixed 3x4", [][]float64{{-1, 2, 7, -8}, {-2, 1, 1, 4}, {3, 1, 2, -2}}, nil},
		{"first column has no saddle", [][]float64{{1, 0}, {3, -1}, {2, 0}}, &SaddlePoint{Row: 0, Col: 1, Value: 0}},
		{"second maximizing row", [][]float64{{5, 0}, {5, 6}}, &SaddlePoint{Row: 1, Col: 0, Value: 5}},
		{"several saddle points", [][]float64{{1, 1}, {0, 0}}, &SaddlePoint{Row: 0, Col: 0, Value: 1}},
		{"single row", [][]float64{{3, -1, 2}}, &SaddlePoint{Row: 0, Col: 1, Value: -1}},
		{"single column", [][]float64{{3}, {-1}, {2}}, &SaddlePoint{Row: 0, Col: 0, Value: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FindSaddlePoint(MustNewMatrix(tc.matrix))
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("saddle point mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaddlePointIsMaximinAndMinimax(t *testing.T) {
	m := MustNewMatrix([][]float64{{-3, 4, 5, 7, 8}, {-5, 0, 4, 6, -1}, {-12, 5, -7, 8, 2}})
	saddle := FindSaddlePoint(m)
	if saddle == nil {
		t.Fatal("expected a saddle point")
	}

	nRows, nCols := m.Dims()
	maximin := -1e300
	for i := 0; i < nRows; i++ {
		rowMin := 1e300
		for j := 0; j < nCols; j++ {
			rowMin = min(rowMin, m.At(i, j))
		}
		maximin = max(maximin, rowMin)
	}

	minimax := 1e300
	for j := 0; j < nCols; j++ {
		colMax := -1e300
		for i := 0; i < nRows; i++ {
			colMax = max(colMax, m.At(i, j))
		}
		minimax = min(minimax, colMax)
	}

	if maximin != saddle.Value || minimax != saddle.Value {
		t.Errorf("saddle value %v, maximin %v, minimax %v", saddle.Value, maximin, minimax)
	}
}

// Package zerosum solves two-player zero-sum matrix games.
//
// Solving a game proceeds in three steps: strictly dominated strategies are
// removed in a single sweep per player, the payoff matrix is checked for a
// pure-strategy saddle point, and if there is none the game value and both
// players' optimal mixed strategies are found by linear programming.
package zerosum

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Matrix is an immutable payoff matrix. Entry (i, j) is the payoff to the
// row player (and the loss of the column player) when the row player plays
// pure strategy i and the column player plays pure strategy j.
type Matrix struct {
	dense *mat.Dense
}

// NewMatrix copies the given rows into a new Matrix. The rows must be
// non-empty, of equal length, and contain only finite values.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "payoff matrix has no rows")
	}

	nCols := len(rows[0])
	if nCols == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "payoff matrix has no columns")
	}

	data := make([]float64, 0, len(rows)*nCols)
	for i, row := range rows {
		if len(row) != nCols {
			return nil, errors.Wrapf(ErrInvalidInput, "row %d has %d entries, expected %d", i, len(row), nCols)
		}

		for j, x := range row {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, errors.Wrapf(ErrInvalidInput, "entry (%d, %d) is not finite: %v", i, j, x)
			}
		}

		data = append(data, row...)
	}

	return &Matrix{mat.NewDense(len(rows), nCols, data)}, nil
}

// MustNewMatrix is like NewMatrix but panics if the rows are invalid.
func MustNewMatrix(rows [][]float64) *Matrix {
	m, err := NewMatrix(rows)
	if err != nil {
		panic(err)
	}

	return m
}

// Dims returns the number of row and column player strategies.
// A nil Matrix has dimensions (0, 0).
func (m *Matrix) Dims() (rows, cols int) {
	if m == nil || m.dense == nil {
		return 0, 0
	}

	return m.dense.Dims()
}

// At returns the payoff when row strategy i meets column strategy j.
func (m *Matrix) At(i, j int) float64 {
	return m.dense.At(i, j)
}

// Row returns a copy of the payoffs of row strategy i.
func (m *Matrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.dense)
}

// Col returns a copy of the payoffs of column strategy j.
func (m *Matrix) Col(j int) []float64 {
	return mat.Col(nil, j, m.dense)
}

// T returns the transpose of m.
func (m *Matrix) T() *Matrix {
	return &Matrix{mat.DenseCopyOf(m.dense.T())}
}

// Negate returns -m, the game seen from the column player's side.
func (m *Matrix) Negate() *Matrix {
	var neg mat.Dense
	neg.Scale(-1, m.dense)
	return &Matrix{&neg}
}

// Equal reports whether m and other have the same shape and entries.
func (m *Matrix) Equal(other *Matrix) bool {
	r1, c1 := m.Dims()
	r2, c2 := other.Dims()
	if r1 != r2 || c1 != c2 {
		return false
	}

	return r1 == 0 || mat.Equal(m.dense, other.dense)
}

// RawRows returns a copy of the matrix as a slice of rows.
func (m *Matrix) RawRows() [][]float64 {
	nRows, _ := m.Dims()
	rows := make([][]float64, nRows)
	for i := range rows {
		rows[i] = m.Row(i)
	}

	return rows
}

// selectEntries returns the submatrix of the given rows and columns,
// in the given order.
func (m *Matrix) selectEntries(rows, cols []int) *Matrix {
	data := make([]float64, 0, len(rows)*len(cols))
	for _, i := range rows {
		for _, j := range cols {
			data = append(data, m.dense.At(i, j))
		}
	}

	return &Matrix{mat.NewDense(len(rows), len(cols), data)}
}

// String formats the matrix with one row per line.
func (m *Matrix) String() string {
	if r, _ := m.Dims(); r == 0 {
		return "[]"
	}

	return fmt.Sprintf("%v", mat.Formatted(m.dense, mat.Squeeze()))
}

// MarshalJSON encodes the matrix as a list of rows.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.RawRows())
}

// UnmarshalJSON decodes a list of rows, validated as in NewMatrix.
func (m *Matrix) UnmarshalJSON(buf []byte) error {
	var rows [][]float64
	if err := json.Unmarshal(buf, &rows); err != nil {
		return err
	}

	parsed, err := NewMatrix(rows)
	if err != nil {
		return err
	}

	*m = *parsed
	return nil
}

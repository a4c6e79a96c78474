package zerosum

import (
	"math"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestNewMatrix(t *testing.T) {
	rows := [][]float64{{-3, 2}, {2, -1}, {0, 5}}
	m, err := NewMatrix(rows)
	if err != nil {
		t.Fatal(err)
	}

	nRows, nCols := m.Dims()
	if nRows != 3 || nCols != 2 {
		t.Errorf("matrix has dims (%d, %d), expected (3, 2)", nRows, nCols)
	}

	for i, row := range rows {
		for j, x := range row {
			if m.At(i, j) != x {
				t.Errorf("entry (%d, %d) is %v, expected %v", i, j, m.At(i, j), x)
			}
		}
	}

	// The matrix must not alias its input.
	rows[0][0] = 100
	if m.At(0, 0) != -3 {
		t.Errorf("modifying input changed matrix entry to %v", m.At(0, 0))
	}
}

func TestNewMatrixInvalid(t *testing.T) {
	testCases := map[string][][]float64{
		"no rows":       {},
		"no columns":    {{}},
		"ragged":        {{1, 2}, {3}},
		"NaN":           {{1, math.NaN()}},
		"infinity":      {{1, 2}, {math.Inf(1), 0}},
		"neg. infinity": {{math.Inf(-1)}},
	}

	for name, rows := range testCases {
		if _, err := NewMatrix(rows); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: got error %v, expected %v", name, err, ErrInvalidInput)
		}
	}
}

func TestMustNewMatrixPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for ragged matrix")
		}
	}()

	MustNewMatrix([][]float64{{1, 2}, {3}})
}

func TestRowsAndCols(t *testing.T) {
	m := MustNewMatrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	if row := m.Row(1); !reflect.DeepEqual(row, []float64{4, 5, 6}) {
		t.Errorf("got row %v, expected [4 5 6]", row)
	}
	if col := m.Col(2); !reflect.DeepEqual(col, []float64{3, 6}) {
		t.Errorf("got column %v, expected [3 6]", col)
	}

	// Returned slices are copies.
	m.Row(0)[0] = 100
	if m.At(0, 0) != 1 {
		t.Error("modifying a row changed the matrix")
	}
}

func TestTransposeAndNegate(t *testing.T) {
	m := MustNewMatrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	expected := MustNewMatrix([][]float64{{-1, -4}, {-2, -5}, {-3, -6}})
	if got := m.T().Negate(); !got.Equal(expected) {
		t.Errorf("got %v, expected %v", got.RawRows(), expected.RawRows())
	}

	// Neither operation modifies m.
	if !m.Equal(MustNewMatrix([][]float64{{1, 2, 3}, {4, 5, 6}})) {
		t.Errorf("matrix was modified: %v", m.RawRows())
	}
}

func TestEqual(t *testing.T) {
	a := MustNewMatrix([][]float64{{1, 2}})
	if !a.Equal(MustNewMatrix([][]float64{{1, 2}})) {
		t.Error("identical matrices are not equal")
	}
	if a.Equal(MustNewMatrix([][]float64{{1}, {2}})) {
		t.Error("matrices of different shape are equal")
	}
	if a.Equal(nil) {
		t.Error("matrix equals nil")
	}
}

func TestMatrixJSON(t *testing.T) {
	m := MustNewMatrix([][]float64{{-3, 2}, {2, -1}})
	buf, err := m.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "[[-3,2],[2,-1]]" {
		t.Errorf("got JSON %s", buf)
	}

	var reloaded Matrix
	if err := reloaded.UnmarshalJSON(buf); err != nil {
		t.Fatal(err)
	}
	if !reloaded.Equal(m) {
		t.Errorf("expected: %v, got: %v", m.RawRows(), reloaded.RawRows())
	}

	if err := reloaded.UnmarshalJSON([]byte("[[1, 2], [3]]")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got error %v, expected %v", err, ErrInvalidInput)
	}
}

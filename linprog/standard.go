package linprog

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// term is one standard form column contributing to an original variable.
type term struct {
	col  int
	sign float64
}

// upperBound is the row y[col] <= width.
type upperBound struct {
	col   int
	width float64
}

// standardForm is a Problem rewritten as
//
//	minimize    c^T y
//	subject to  A y = b
//	            y >= 0
//
// together with what is needed to map y back onto the original variables.
type standardForm struct {
	c []float64
	a *mat.Dense
	b []float64

	// x_k = offsets[k] + sum of sign*y[col] over terms[k].
	offsets []float64
	terms   [][]term
	// Constant added to c^T y to recover the original objective.
	objectiveOffset float64
}

// toStandardForm substitutes variables so that every standard form column is
// non-negative:
//
//	lower finite:          x = lower + y   (and y <= upper-lower if upper is finite)
//	only upper finite:     x = upper - y
//	free:                  x = y+ - y-
//
// Each inequality row then receives its own slack column. Columns that appear
// in no constraint and equality rows that are identically zero are dropped.
func (p *Problem) toStandardForm() (*standardForm, error) {
	n := p.NumVariables()
	sf := &standardForm{
		offsets: make([]float64, n),
		terms:   make([][]term, n),
	}

	nY := 0
	var upperRows []upperBound
	for k, bound := range p.Bounds {
		switch {
		case !math.IsInf(bound.Lower, -1):
			sf.offsets[k] = bound.Lower
			sf.terms[k] = []term{{nY, 1}}
			if !math.IsInf(bound.Upper, 1) {
				upperRows = append(upperRows, upperBound{nY, bound.Upper - bound.Lower})
			}
			nY++
		case !math.IsInf(bound.Upper, 1):
			sf.offsets[k] = bound.Upper
			sf.terms[k] = []term{{nY, -1}}
			nY++
		default:
			sf.terms[k] = []term{{nY, 1}, {nY + 1, -1}}
			nY += 2
		}
	}

	// Project a row of original coefficients onto the y columns, returning
	// the projected row and the constant contributed by the offsets.
	project := func(row []float64) ([]float64, float64) {
		projected := make([]float64, nY)
		constant := 0.0
		for k, coef := range row {
			constant += coef * sf.offsets[k]
			for _, t := range sf.terms[k] {
				projected[t.col] += coef * t.sign
			}
		}
		return projected, constant
	}

	c, objectiveOffset := project(p.Objective)
	sf.objectiveOffset = objectiveOffset

	var ineqRows [][]float64
	var ineqB []float64
	for i, row := range p.InequalityA {
		projected, constant := project(row)
		ineqRows = append(ineqRows, projected)
		ineqB = append(ineqB, p.InequalityB[i]-constant)
	}
	for _, ub := range upperRows {
		row := make([]float64, nY)
		row[ub.col] = 1
		ineqRows = append(ineqRows, row)
		ineqB = append(ineqB, ub.width)
	}

	var eqRows [][]float64
	var eqB []float64
	for i, row := range p.EqualityA {
		projected, constant := project(row)
		rhs := p.EqualityB[i] - constant
		if isZero(projected) {
			if rhs != 0 {
				return nil, ErrInfeasible
			}
			continue
		}
		eqRows = append(eqRows, projected)
		eqB = append(eqB, rhs)
	}

	// Drop y columns no constraint refers to. Such a column can only sit at
	// zero in an optimal solution, unless decreasing the objective along it
	// is unbounded.
	keep := make([]int, 0, nY)
	for col := 0; col < nY; col++ {
		if columnUsed(col, ineqRows) || columnUsed(col, eqRows) {
			keep = append(keep, col)
		} else if c[col] < 0 {
			return nil, ErrUnbounded
		}
	}

	nIneq := len(ineqRows)
	nRows := nIneq + len(eqRows)
	nCols := len(keep) + nIneq
	if nRows == 0 {
		return nil, errors.Wrap(ErrInvalidProblem, "problem has no constraints after substitution")
	}

	newCol := make(map[int]int, len(keep))
	for i, col := range keep {
		newCol[col] = i
	}
	for k, terms := range sf.terms {
		kept := terms[:0]
		for _, t := range terms {
			if i, ok := newCol[t.col]; ok {
				kept = append(kept, term{i, t.sign})
			}
		}
		sf.terms[k] = kept
	}

	sf.c = make([]float64, nCols)
	for i, col := range keep {
		sf.c[i] = c[col]
	}

	sf.a = mat.NewDense(nRows, nCols, nil)
	sf.b = make([]float64, 0, nRows)
	for i, row := range ineqRows {
		for j, col := range keep {
			sf.a.Set(i, j, row[col])
		}
		sf.a.Set(i, len(keep)+i, 1)
	}
	sf.b = append(sf.b, ineqB...)
	for i, row := range eqRows {
		for j, col := range keep {
			sf.a.Set(nIneq+i, j, row[col])
		}
	}
	sf.b = append(sf.b, eqB...)

	return sf, nil
}

// originalX maps a standard form solution back onto the original variables.
func (sf *standardForm) originalX(y []float64) []float64 {
	x := make([]float64, len(sf.offsets))
	copy(x, sf.offsets)
	for k, terms := range sf.terms {
		for _, t := range terms {
			x[k] += t.sign * y[t.col]
		}
	}
	return x
}

func (sf *standardForm) objective(optF float64) float64 {
	return optF + sf.objectiveOffset
}

func columnUsed(col int, rows [][]float64) bool {
	for _, row := range rows {
		if row[col] != 0 {
			return true
		}
	}
	return false
}

func isZero(row []float64) bool {
	return floats.Norm(row, math.Inf(1)) == 0
}

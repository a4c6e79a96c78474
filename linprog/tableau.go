package linprog

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// tableau is a dense simplex tableau for
//
//	minimize    c^T y
//	subject to  A y = b
//	            y >= 0
//
// extended with one artificial column per row. The last column holds the
// values of the basic variables.
type tableau struct {
	t       *mat.Dense
	basis   []int
	isBasic []bool
	// Number of standard form columns, excluding artificials.
	n   int
	tol float64
	// Pivots allowed per phase.
	maxIter int
}

// newTableau negates rows with a negative right-hand side and starts from the
// all-artificial basis, which is feasible for phase one.
func newTableau(a *mat.Dense, b []float64, tol float64, maxIter int) *tableau {
	m, n := a.Dims()
	tab := &tableau{
		t:       mat.NewDense(max(m, 1), n+m+1, nil),
		basis:   make([]int, m),
		isBasic: make([]bool, n+m),
		n:       n,
		tol:     tol,
		maxIter: maxIter,
	}

	for i := 0; i < m; i++ {
		row := tab.row(i)
		mat.Row(row[:n], i, a)
		row[n+i] = 1
		row[n+m] = b[i]
		if b[i] < 0 {
			floats.Scale(-1, row[:n])
			row[n+m] = -b[i]
		}

		tab.basis[i] = n + i
		tab.isBasic[n+i] = true
	}

	return tab
}

func (tab *tableau) row(i int) []float64 {
	return tab.t.RawRowView(i)
}

func (tab *tableau) rhs(i int) float64 {
	return tab.t.At(i, tab.n+len(tab.basis))
}

// solve runs both phases and returns the optimal y.
func (tab *tableau) solve(c []float64) ([]float64, error) {
	m := len(tab.basis)

	// Phase one minimizes the sum of the artificial variables.
	phaseOne := make([]float64, tab.n+m)
	for j := tab.n; j < tab.n+m; j++ {
		phaseOne[j] = 1
	}
	if err := tab.optimize(phaseOne, tab.n+m); err != nil {
		return nil, err
	}

	infeasibility := 0.0
	for i, col := range tab.basis {
		if col >= tab.n {
			infeasibility += tab.rhs(i)
		}
	}
	if infeasibility > math.Sqrt(tab.tol) {
		return nil, ErrInfeasible
	}

	tab.dropArtificials()

	// Phase two never lets an artificial column back into the basis.
	phaseTwo := make([]float64, tab.n+m)
	copy(phaseTwo, c)
	if err := tab.optimize(phaseTwo, tab.n); err != nil {
		return nil, err
	}

	y := make([]float64, tab.n)
	for i, col := range tab.basis {
		if col < tab.n {
			y[col] = tab.rhs(i)
		}
	}

	return y, nil
}

// optimize pivots with Bland's rule until no column below nEnter has a
// negative reduced cost. Bland's rule cannot cycle on degenerate vertices.
func (tab *tableau) optimize(cost []float64, nEnter int) error {
	for iter := 0; iter < tab.maxIter; iter++ {
		q := tab.entering(cost, nEnter)
		if q < 0 {
			return nil
		}

		p := tab.leaving(q)
		if p < 0 {
			return ErrUnbounded
		}

		tab.pivot(p, q)
	}

	return ErrIterationLimit
}

// entering returns the lowest index non-basic column with a negative
// reduced cost, or -1 at optimality.
func (tab *tableau) entering(cost []float64, nEnter int) int {
	m := len(tab.basis)
	for j := 0; j < nEnter; j++ {
		if tab.isBasic[j] {
			continue
		}

		reduced := cost[j]
		for i := 0; i < m; i++ {
			reduced -= cost[tab.basis[i]] * tab.t.At(i, j)
		}
		if reduced < -tab.tol {
			return j
		}
	}

	return -1
}

// leaving returns the row of the minimum ratio test, breaking ties by the
// lowest basic column, or -1 if column q can increase without bound.
func (tab *tableau) leaving(q int) int {
	p := -1
	best := math.Inf(1)
	for i, col := range tab.basis {
		a := tab.t.At(i, q)
		if a <= tab.tol {
			continue
		}

		ratio := tab.rhs(i) / a
		if p < 0 || ratio < best-tab.tol || (ratio <= best+tab.tol && col < tab.basis[p]) {
			best = math.Min(best, ratio)
			p = i
		}
	}

	return p
}

func (tab *tableau) pivot(p, q int) {
	last := tab.n + len(tab.basis)
	pivotRow := tab.row(p)
	floats.Scale(1/pivotRow[q], pivotRow)
	pivotRow[q] = 1

	for i := range tab.basis {
		if i == p {
			continue
		}

		row := tab.row(i)
		if f := row[q]; f != 0 {
			floats.AddScaled(row, -f, pivotRow)
			row[q] = 0
			if math.Abs(row[last]) < tab.tol {
				row[last] = 0
			}
		}
	}

	tab.isBasic[tab.basis[p]] = false
	tab.basis[p] = q
	tab.isBasic[q] = true
}

// dropArtificials pivots artificial columns that are still basic, at zero,
// out of the basis. A row with no usable column is redundant and keeps its
// artificial, which phase two never moves.
func (tab *tableau) dropArtificials() {
	last := tab.n + len(tab.basis)
	for i, col := range tab.basis {
		if col < tab.n {
			continue
		}

		row := tab.row(i)
		q, largest := -1, tab.tol
		for j := 0; j < tab.n; j++ {
			if !tab.isBasic[j] && math.Abs(row[j]) > largest {
				q, largest = j, math.Abs(row[j])
			}
		}

		if q >= 0 {
			tab.pivot(i, q)
			tab.row(i)[last] = 0
		}
	}
}

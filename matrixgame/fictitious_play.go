// Package matrixgame approximates solutions of zero-sum matrix games by
// fictitious play. It is much slower to converge than the linear programs in
// package zerosum, but shares no code with them, which makes it useful for
// cross-checking their results.
package matrixgame

import (
	"math/rand"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"

	"github.com/timpalpant/zerosum"
)

// FictitiousPlay runs nIter rounds in which each player best-responds to
// the empirical distribution of the other player's past plays, and returns
// those empirical distributions. Player 0 chooses rows and maximizes the
// payoff, player 1 chooses columns and minimizes it.
//
// With probability mixingLambda a player plays uniformly at random instead
// of best-responding; rng may be nil if mixingLambda is 0. Ties between best
// responses go to the lowest index.
func FictitiousPlay(m *zerosum.Matrix, nIter int, mixingLambda float64, rng *rand.Rand) ([]float64, []float64) {
	rows := m.RawRows()
	cols := m.T().RawRows()
	p0PlayCounts := make([]float64, len(rows))
	p1PlayCounts := make([]float64, len(cols))
	logEvery := max(nIter/10, 1)
	for i := 1; i <= nIter; i++ {
		var p0Selected int
		if mixingLambda > 0 && rng.Float64() < mixingLambda {
			p0Selected = rng.Intn(len(p0PlayCounts))
		} else {
			p0Selected = getP0BestResponse(rows, p1PlayCounts)
		}

		var p1Selected int
		if mixingLambda > 0 && rng.Float64() < mixingLambda {
			p1Selected = rng.Intn(len(p1PlayCounts))
		} else {
			p1Selected = getP1BestResponse(cols, p0PlayCounts)
		}
		p0PlayCounts[p0Selected]++
		p1PlayCounts[p1Selected]++

		if i%logEvery == 0 {
			glog.V(1).Infof("After %d iterations, player 0 weights: %v", i, normalize(p0PlayCounts))
			glog.V(1).Infof("After %d iterations, player 1 weights: %v", i, normalize(p1PlayCounts))
		}
	}

	return normalize(p0PlayCounts), normalize(p1PlayCounts)
}

// ValueBounds returns the payoff that p0 guarantees the row player and the
// payoff that p1 concedes at most. The value of the game lies in
// [lower, upper], and the gap shrinks to zero as both strategies approach
// optimal play.
func ValueBounds(m *zerosum.Matrix, p0, p1 []float64) (lower, upper float64) {
	nRows, nCols := m.Dims()
	colPayoffs := make([]float64, nCols)
	for j := range colPayoffs {
		colPayoffs[j] = floats.Dot(p0, m.Col(j))
	}

	rowPayoffs := make([]float64, nRows)
	for i := range rowPayoffs {
		rowPayoffs[i] = floats.Dot(m.Row(i), p1)
	}

	return floats.Min(colPayoffs), floats.Max(rowPayoffs)
}

func getP0BestResponse(rows [][]float64, p1PlayCounts []float64) int {
	utilities := make([]float64, len(rows))
	for i, row := range rows {
		utilities[i] = floats.Dot(row, p1PlayCounts)
	}

	return floats.MaxIdx(utilities)
}

func getP1BestResponse(cols [][]float64, p0PlayCounts []float64) int {
	losses := make([]float64, len(cols))
	for j, col := range cols {
		losses[j] = floats.Dot(col, p0PlayCounts)
	}

	return floats.MinIdx(losses)
}

func normalize(counts []float64) []float64 {
	result := make([]float64, len(counts))
	total := floats.Sum(counts)
	if total == 0 {
		return result
	}

	floats.ScaleTo(result, 1/total, counts)
	return result
}

package main

import (
	"github.com/timpalpant/zerosum"
)

// builtinExamples are solved when no input file is given.
func builtinExamples() []*zerosum.Matrix {
	return []*zerosum.Matrix{
		// No dominated strategies and no saddle point.
		zerosum.MustNewMatrix([][]float64{
			{-3, 2},
			{2, -1},
		}),
		// Dominated strategies and a saddle point.
		zerosum.MustNewMatrix([][]float64{
			{-3, 4, 5, 7, 8},
			{-5, 0, 4, 6, -1},
			{-12, 5, -7, 8, 2},
		}),
		// Mixed strategies on a 3x4 game.
		zerosum.MustNewMatrix([][]float64{
			{-1, 2, 7, -8},
			{-2, 1, 1, 4},
			{3, 1, 2, -2},
		}),
	}
}

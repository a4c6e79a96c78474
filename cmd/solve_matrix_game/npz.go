package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/timpalpant/zerosum"
	"github.com/timpalpant/zerosum/internal/npyio"
)

// npzArrays collects the arrays of each solved game for analysis in Python.
// Game i is stored under keys prefixed with "game<i>_".
type npzArrays map[string]io.Reader

func (a npzArrays) add(i int, report *zerosum.Report) error {
	prefix := fmt.Sprintf("game%d_", i)
	if err := a.addMatrix(prefix+"original.npy", report.Original); err != nil {
		return err
	}
	if report.Reduced != nil {
		if err := a.addMatrix(prefix+"reduced.npy", report.Reduced.Matrix); err != nil {
			return err
		}
	}
	if err := a.addVector(prefix+"value.npy", []float64{report.Value}); err != nil {
		return err
	}
	if report.SaddlePoint != nil {
		saddle := []float64{float64(report.SaddlePoint.Row), float64(report.SaddlePoint.Col)}
		return a.addVector(prefix+"saddle_point.npy", saddle)
	}
	if err := a.addVector(prefix+"row_strategy.npy", report.RowStrategy); err != nil {
		return err
	}
	return a.addVector(prefix+"column_strategy.npy", report.ColumnStrategy)
}

func (a npzArrays) addMatrix(name string, m *zerosum.Matrix) error {
	nRows, nCols := m.Dims()
	data := make([]float64, 0, nRows*nCols)
	for _, row := range m.RawRows() {
		data = append(data, row...)
	}

	var buf bytes.Buffer
	if err := npyio.Write(&buf, data, nRows, nCols); err != nil {
		return err
	}
	a[name] = &buf
	return nil
}

func (a npzArrays) addVector(name string, v []float64) error {
	var buf bytes.Buffer
	if err := npyio.Write(&buf, v); err != nil {
		return err
	}
	a[name] = &buf
	return nil
}

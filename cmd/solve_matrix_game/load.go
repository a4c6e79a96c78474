package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/timpalpant/zerosum"
	"github.com/timpalpant/zerosum/internal/npyio"
)

// loadMatrices reads payoff matrices from a JSON file, or a single matrix
// from a 2-D .npy file. Either may be gzipped with a .gz suffix.
func loadMatrices(filename string) ([]*zerosum.Matrix, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	name := filename
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "open %v", filename)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	var matrices []*zerosum.Matrix
	if strings.HasSuffix(name, ".npy") {
		var m *zerosum.Matrix
		m, err = readNPY(r)
		matrices = []*zerosum.Matrix{m}
	} else {
		var buf []byte
		if buf, err = io.ReadAll(r); err == nil {
			matrices, err = parseMatrices(buf)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse %v", filename)
	}

	return matrices, nil
}

// parseMatrices accepts either a single matrix, [[1, 2], [3, 4]],
// or a list of matrices, [[[1, 2], [3, 4]], [[0]]].
func parseMatrices(buf []byte) ([]*zerosum.Matrix, error) {
	var many []*zerosum.Matrix
	if err := json.Unmarshal(buf, &many); err == nil {
		if len(many) == 0 {
			return nil, errors.New("no payoff matrices")
		}
		for i, m := range many {
			if m == nil {
				return nil, errors.Wrapf(zerosum.ErrInvalidInput, "payoff matrix %d is null", i)
			}
		}
		return many, nil
	} else if errors.Is(err, zerosum.ErrInvalidInput) {
		return nil, err
	}

	var one zerosum.Matrix
	if err := json.Unmarshal(buf, &one); err != nil {
		return nil, err
	}

	return []*zerosum.Matrix{&one}, nil
}

func readNPY(r io.Reader) (*zerosum.Matrix, error) {
	data, shape, err := npyio.Read(r)
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 {
		return nil, errors.Wrapf(zerosum.ErrInvalidInput, "array has shape %v, expected 2 dimensions", shape)
	}

	nRows, nCols := shape[0], shape[1]
	rows := make([][]float64, nRows)
	for i := range rows {
		rows[i] = data[i*nCols : (i+1)*nCols]
	}

	return zerosum.NewMatrix(rows)
}

// Package npyio reads and writes float64 arrays in numpy's .npy format.
package npyio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var order = binary.LittleEndian

// Write writes v as a C-ordered array of the given shape. With no shape,
// v is written as a 1-D array.
func Write(w io.Writer, v []float64, shape ...int) error {
	if len(shape) == 0 {
		shape = []int{len(v)}
	}
	if n, err := numElements(shape); err != nil {
		return err
	} else if n != len(v) {
		return errors.Errorf("npyio: shape %v holds %d elements, got %d", shape, n, len(v))
	}

	if err := writeHeader(w, shape); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	var buf [8]byte
	for _, x := range v {
		order.PutUint64(buf[:], math.Float64bits(x))
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Read reads a little-endian float64 array, returning its elements in
// C order and its shape.
func Read(r io.Reader) ([]float64, []int, error) {
	shape, err := readHeader(r)
	if err != nil {
		return nil, nil, err
	}

	n, err := numElements(shape)
	if err != nil {
		return nil, nil, err
	}

	v := make([]float64, n)
	if err := binary.Read(r, order, v); err != nil {
		return nil, nil, errors.Wrap(err, "npyio: read data")
	}

	return v, shape, nil
}

// The following is adapted from: github.com/sbinet/npyio
var magic = [6]byte{'\x93', 'N', 'U', 'M', 'P', 'Y'}

const (
	majorVersion = byte(2)
	minorVersion = byte(0)
	// Numpy pads headers so that the data starts 64-byte aligned.
	headerAlign = 64
)

func writeHeader(w io.Writer, shape []int) error {
	if err := binary.Write(w, order, magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, order, majorVersion); err != nil {
		return err
	}
	if err := binary.Write(w, order, minorVersion); err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf,
		"{'descr': '<f8', 'fortran_order': False, 'shape': %s, }",
		shapeTuple(shape))

	var hdrSize = 6 + len(magic)
	padding := (headerAlign - (hdrSize+buf.Len()+1)%headerAlign) % headerAlign
	if _, err := buf.Write(bytes.Repeat([]byte{'\x20'}, padding)); err != nil {
		return err
	}
	if _, err := buf.Write([]byte{'\n'}); err != nil {
		return err
	}

	buflen := int64(buf.Len())
	if err := binary.Write(w, order, uint32(buflen)); err != nil {
		return err
	}

	if n, err := io.Copy(w, buf); err != nil {
		return err
	} else if n < buflen {
		return io.ErrShortWrite
	}

	return nil
}

var (
	descrRe   = regexp.MustCompile(`'descr':\s*'([^']*)'`)
	fortranRe = regexp.MustCompile(`'fortran_order':\s*(True|False)`)
	shapeRe   = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
)

func readHeader(r io.Reader) ([]int, error) {
	var prefix [8]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, errors.Wrap(err, "npyio: read magic")
	}
	if !bytes.Equal(prefix[:6], magic[:]) {
		return nil, errors.New("npyio: not a .npy file")
	}

	var hdrLen int
	switch prefix[6] {
	case 1:
		var n uint16
		if err := binary.Read(r, order, &n); err != nil {
			return nil, errors.Wrap(err, "npyio: read header length")
		}
		hdrLen = int(n)
	case 2, 3:
		var n uint32
		if err := binary.Read(r, order, &n); err != nil {
			return nil, errors.Wrap(err, "npyio: read header length")
		}
		hdrLen = int(n)
	default:
		return nil, errors.Errorf("npyio: unsupported format version %d.%d", prefix[6], prefix[7])
	}

	hdr := make([]byte, hdrLen)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, errors.Wrap(err, "npyio: read header")
	}

	descr := descrRe.FindSubmatch(hdr)
	if descr == nil || string(descr[1]) != "<f8" {
		return nil, errors.Errorf("npyio: unsupported dtype in header %q, want '<f8'", hdr)
	}
	if fortran := fortranRe.FindSubmatch(hdr); fortran == nil || string(fortran[1]) != "False" {
		return nil, errors.Errorf("npyio: unsupported memory order in header %q", hdr)
	}
	shape := shapeRe.FindSubmatch(hdr)
	if shape == nil {
		return nil, errors.Errorf("npyio: missing shape in header %q", hdr)
	}

	return parseShape(string(shape[1]))
}

func shapeTuple(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	if len(shape) == 1 {
		return "(" + dims[0] + ",)"
	}
	return "(" + strings.Join(dims, ", ") + ")"
}

func parseShape(tuple string) ([]int, error) {
	var shape []int
	for _, field := range strings.Split(tuple, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		d, err := strconv.Atoi(field)
		if err != nil || d < 0 {
			return nil, errors.Errorf("npyio: invalid shape (%s)", tuple)
		}
		shape = append(shape, d)
	}

	return shape, nil
}

// MaxElements bounds the size of arrays read or written, 512 MiB of float64.
const MaxElements = 1 << 26

func numElements(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, errors.Errorf("npyio: negative dimension in shape %v", shape)
		}
		if d != 0 && n > MaxElements/d {
			return 0, errors.Errorf("npyio: shape %v exceeds %d elements", shape, MaxElements)
		}
		n *= d
	}
	return n, nil
}

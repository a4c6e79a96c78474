package npyio

import (
	"bufio"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/zip"
)

// MakeNPZ bundles .npy files into an .npz archive, which numpy.load
// opens as a dict of arrays. Entries are written in name order.
func MakeNPZ(npyFiles map[string]io.Reader, output string) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	b := bufio.NewWriter(f)
	z := zip.NewWriter(b)

	names := make([]string, 0, len(npyFiles))
	for name := range npyFiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := z.Create(name)
		if err != nil {
			return err
		}

		if _, err := io.Copy(w, npyFiles[name]); err != nil {
			return err
		}
	}

	if err := z.Close(); err != nil {
		return err
	}
	if err := b.Flush(); err != nil {
		return err
	}
	return f.Close()
}

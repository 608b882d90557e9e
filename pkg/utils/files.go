// Package utils holds helpers shared by the command line tools.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/pkg/errors"
)

// romExtensions are the file extensions searched for inside an archive.
var romExtensions = []string{".gb", ".gbc", ".bin"}

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield their first ROM image, or their first file
// when none has a ROM extension.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading rom")
	}

	var decoder io.ReadCloser
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		var r *zip.Reader
		r, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err == nil {
			decoder, err = openFirst(len(r.File), func(i int) string { return r.File[i].Name }, func(i int) (io.ReadCloser, error) {
				return r.File[i].Open()
			})
		}
	case ".7z":
		var r *sevenzip.Reader
		r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err == nil {
			decoder, err = openFirst(len(r.File), func(i int) string { return r.File[i].Name }, func(i int) (io.ReadCloser, error) {
				return r.File[i].Open()
			})
		}
	default:
		return data, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", filename)
	}
	defer decoder.Close()

	data, err = io.ReadAll(decoder)
	if err != nil {
		return nil, errors.Wrapf(err, "decompressing %s", filename)
	}
	return data, nil
}

// openFirst opens the first archive entry with a ROM extension.
func openFirst(n int, name func(int) string, open func(int) (io.ReadCloser, error)) (io.ReadCloser, error) {
	if n == 0 {
		return nil, errors.New("archive is empty")
	}
	for i := 0; i < n; i++ {
		ext := strings.ToLower(filepath.Ext(name(i)))
		for _, e := range romExtensions {
			if ext == e {
				return open(i)
			}
		}
	}
	return open(0)
}

// Package romfile loads a cartridge image from disk, transparently
// decompressing .zip, .7z and .gz archives; any other file is returned
// as is.
package romfile

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// Load reads path and returns the decompressed ROM image, dispatching on
// file extension: .gb/.gbc files are returned as is; .zip/.7z/.gz
// archives have their first entry extracted.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gb", ".gbc":
		return data, nil
	case ".gz":
		r, err := gzip.NewReader(strings.NewReader(string(data)))
		if err != nil {
			return nil, err
		}
		return io.ReadAll(r)
	case ".zip":
		r, err := zip.NewReader(strings.NewReader(string(data)), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, io.ErrUnexpectedEOF
		}
		entry, err := r.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer entry.Close()
		return io.ReadAll(entry)
	case ".7z":
		r, err := sevenzip.NewReader(strings.NewReader(string(data)), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, io.ErrUnexpectedEOF
		}
		entry, err := r.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer entry.Close()
		return io.ReadAll(entry)
	default:
		return data, nil
	}
}

package csvreader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
	"github.com/pivolan/go_utils"
)

// MaxDecodedBytes caps the size of a decompressed upload.
const MaxDecodedBytes = 64 << 20

var ErrDecodedTooLarge = errors.New("decompressed file is too large")

// IsArchive reports whether name carries one of the supported archive extensions.
func IsArchive(name string) bool {
	return go_utils.InArray(strings.ToLower(filepath.Ext(name)), []string{".zip", ".gz", ".lz4"})
}

// Decode returns the CSV payload of an upload, unpacking zip, gzip and lz4
// archives in memory. Other files are returned unchanged.
func Decode(name string, data []byte) ([]byte, error) {
	if !IsArchive(name) {
		return data, nil
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		return unpackZip(data)
	case ".gz":
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		defer gr.Close()
		return readLimited(gr)
	default:
		return readLimited(lz4.NewReader(bytes.NewReader(data)))
	}
}

// unpackZip extracts the largest file of the archive.
func unpackZip(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return nil, ErrEmptyFile
	}

	rc, err := largestFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry %s: %w", largestFile.Name, err)
	}
	defer rc.Close()
	return readLimited(rc)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDecodedBytes+1))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	if len(data) > MaxDecodedBytes {
		return nil, ErrDecodedTooLarge
	}
	return data, nil
}

// Package exchange reads and writes client lists as CSV or JSON files.
//
// CSV files carry the header "id,name,phone,email"; JSON files hold an array
// of objects with the same keys, indented by four spaces. A ".gz" suffix on
// either adds gzip compression. Imported ids are always ignored: the store
// assigns fresh ones.
package exchange

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
)

// Format is an interchange file format.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// ErrUnknownFormat is returned for file names without a supported extension.
var ErrUnknownFormat = errors.New("unknown interchange format")

// Detect derives the format from a file name and reports whether the file is
// gzip-compressed.
func Detect(path string) (Format, bool, error) {
	name := strings.ToLower(filepath.Base(path))
	gz := strings.HasSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".gz")

	switch filepath.Ext(name) {
	case ".csv":
		return CSV, gz, nil
	case ".json":
		return JSON, gz, nil
	default:
		return "", gz, errors.Wrap(ErrUnknownFormat, path)
	}
}

type gzipWriteCloser struct {
	*pgzip.Writer
	file *os.File
}

func (w *gzipWriteCloser) Close() error {
	if err := w.Writer.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

type gzipReadCloser struct {
	*pgzip.Reader
	file *os.File
}

func (r *gzipReadCloser) Close() error {
	_ = r.Reader.Close()
	return r.file.Close()
}

func createFile(path string, gz bool) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create file")
	}
	if !gz {
		return f, nil
	}
	return &gzipWriteCloser{Writer: pgzip.NewWriter(f), file: f}, nil
}

func openFile(path string, gz bool) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	if !gz {
		return f, nil
	}
	zr, err := pgzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "open gzip stream")
	}
	return &gzipReadCloser{Reader: zr, file: f}, nil
}

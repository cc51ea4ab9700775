package aptdb

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/mholt/archives"
	"github.com/ulikunitz/xz"
)

// readCloser pairs a decoding reader with the closers it depends on.
type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenList opens a list file and returns its decompressed content. The
// compression is chosen by extension, falling back to content sniffing for
// formats such as lz4 and bzip2.
func OpenList(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rc, err := decompress(ctx, f, filepath.Base(path))
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(errors.ErrDecompress, "%s: %v", path, err)
	}
	return rc, nil
}

func decompress(ctx context.Context, f *os.File, name string) (io.ReadCloser, error) {
	closeFile := f.Close

	switch compressionSuffix(name) {
	case "":
		return &readCloser{Reader: bufio.NewReader(f), closers: []func() error{closeFile}}, nil
	case ".gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: gr, closers: []func() error{gr.Close, closeFile}}, nil
	case ".xz":
		xr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: xr, closers: []func() error{closeFile}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: zr, closers: []func() error{func() error { zr.Close(); return nil }, closeFile}}, nil
	}

	format, stream, err := archives.Identify(ctx, name, f)
	if err != nil {
		if stderrors.Is(err, archives.NoMatch) {
			// uncompressed content under an unexpected name
			return &readCloser{Reader: stream, closers: []func() error{closeFile}}, nil
		}
		return nil, err
	}
	decomp, ok := format.(archives.Decompressor)
	if !ok {
		return nil, errors.Wrapf(errors.ErrDecompress, "unsupported format %s", format.Extension())
	}
	dr, err := decomp.OpenReader(stream)
	if err != nil {
		return nil, err
	}
	return &readCloser{Reader: dr, closers: []func() error{dr.Close, closeFile}}, nil
}

// compressionSuffix returns the extension after "_Packages", or the plain
// file extension for other names. Host names in list file names contain
// dots, so filepath.Ext alone is not enough.
func compressionSuffix(name string) string {
	if i := strings.LastIndex(name, "_Packages"); i >= 0 {
		return strings.ToLower(name[i+len("_Packages"):])
	}
	return strings.ToLower(filepath.Ext(name))
}

package ingest

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

var (
	// UseXZFileDecompression forces XZ decompression of all file-based input,
	// including STDIN.  Files ending in ".xz" are always decompressed.
	UseXZFileDecompression bool
)

// Open opens a file for reading, transparently decompressing XZ input.  The
// special name "-" refers to STDIN.
func Open(name string) (io.ReadCloser, error) {
	var rc io.ReadCloser
	if name == "-" {
		rc = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %q", name)
		}
		rc = f
	}

	if !UseXZFileDecompression && !strings.HasSuffix(name, ".xz") {
		return rc, nil
	}

	xr, err := xz.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, errors.Wrapf(err, "initializing xz decompression for %q", name)
	}
	return &xzReadCloser{Reader: xr, closer: rc}, nil
}

type xzReadCloser struct {
	*xz.Reader
	closer io.Closer
}

func (xrc *xzReadCloser) Close() error {
	return xrc.closer.Close()
}

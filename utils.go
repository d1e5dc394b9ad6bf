package ogprofile

import (
	"bufio"
	"io"
	"os"

	gzip "github.com/klauspost/pgzip"
)

// OpenMembers opens a members table for reading.
// An empty name or "-" means standard input.
// Gzip compressed input is decompressed.
func OpenMembers(name string) (io.ReadCloser, error) {
	var f *os.File
	if name == "" || name == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(name)
		if err != nil {
			return nil, err
		}
	}

	rc, err := decompress(f)
	if err != nil {
		if f != os.Stdin {
			f.Close()
		}
		return nil, err
	}
	if f == os.Stdin {
		return io.NopCloser(rc), nil
	}
	return &fileReader{Reader: rc, f: f}, nil
}

// decompress wraps r with a gzip reader if r starts with the gzip magic number.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}

type fileReader struct {
	io.Reader
	f *os.File
}

func (r *fileReader) Close() error {
	if c, ok := r.Reader.(io.Closer); ok {
		c.Close()
	}
	return r.f.Close()
}

// Package input opens line streams from files or stdin.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-isatty"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ErrInteractive is returned when stdin is a terminal instead of a pipe or file.
var ErrInteractive = errors.New("refusing to read from an interactive terminal")

// Source is an opened input. Close releases the decompressor and the file.
type Source struct {
	io.Reader
	Name    string
	closers []io.Closer
}

func (s *Source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path, or stdin for "-". Files named *.gz, *.zst or *.bz2 are
// decompressed transparently.
func Open(path string, stdin *os.File) (*Source, error) {
	if path == "" || path == Stdin {
		if stdin == nil {
			stdin = os.Stdin
		}
		if IsTerminal(stdin) {
			return nil, ErrInteractive
		}
		return &Source{Reader: stdin, Name: "stdin"}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	src := &Source{Name: filepath.Base(path), closers: []io.Closer{f}}
	r, err := decompress(path, f, src)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	src.Reader = r
	return src, nil
}

func decompress(path string, f io.Reader, src *Source) (io.Reader, error) {
	br := bufio.NewReader(f)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		src.closers = append(src.closers, zr)
		return zr, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open zstd: %w", err)
		}
		rc := zr.IOReadCloser()
		src.closers = append(src.closers, rc)
		return rc, nil
	case ".bz2":
		zr, err := bzip2.NewReader(br, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, fmt.Errorf("open bzip2: %w", err)
		}
		src.closers = append(src.closers, zr)
		return zr, nil
	default:
		return br, nil
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

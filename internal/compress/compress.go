// Package compress selects a stream codec from a blob name's extension.
//
// Supported extensions are .zst (zstd), .gz (gzip) and .lz4 (LZ4 frames).
// Any other name is passed through unchanged.
package compress

import (
	"errors"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a compression format.
type Type uint8

const (
	// None indicates no compression.
	None Type = iota
	// Zstd indicates zstd frames (klauspost/compress).
	Zstd
	// Gzip indicates gzip members (klauspost/compress).
	Gzip
	// LZ4 indicates LZ4 frames.
	LZ4
)

func (t Type) String() string {
	switch t {
	case Zstd:
		return "zstd"
	case Gzip:
		return "gzip"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

// ErrUnknownType is returned for a Type outside the defined constants.
var ErrUnknownType = errors.New("compress: unknown type")

// Detect returns the compression type implied by the extension of name.
func Detect(name string) Type {
	switch strings.ToLower(path.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz", ".gzip":
		return Gzip
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// Trim returns name without a recognized compression extension.
func Trim(name string) string {
	if Detect(name) == None {
		return name
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

// NewReader returns a reader that decompresses r according to t.
func NewReader(t Type, r io.Reader) (io.ReadCloser, error) {
	switch t {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, ErrUnknownType
	}
}

// NewWriter returns a writer that compresses into w according to t.
// Close flushes the codec; it does not close w.
func NewWriter(t Type, w io.Writer) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		return enc, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, ErrUnknownType
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Package compression encodes and decodes request bodies for the
// Content-Encoding values seen in captured traffic.
package compression

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"
	"strings"

	"github.com/WhileEndless/go-burparse/pkg/errors"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// CompressionType represents supported compression algorithms
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionGzip
	CompressionDeflate
	CompressionBrotli
	CompressionZstd
)

type codec struct {
	name      string
	newWriter func(io.Writer) (io.WriteCloser, error)
	newReader func(io.Reader) (io.ReadCloser, error)
}

var codecs = map[CompressionType]codec{
	CompressionGzip: {
		name:      "gzip",
		newWriter: func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil },
		newReader: func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) },
	},
	CompressionDeflate: {
		name:      "deflate",
		newWriter: func(w io.Writer) (io.WriteCloser, error) { return flate.NewWriter(w, flate.DefaultCompression) },
		newReader: func(r io.Reader) (io.ReadCloser, error) { return flate.NewReader(r), nil },
	},
	CompressionBrotli: {
		name:      "br",
		newWriter: func(w io.Writer) (io.WriteCloser, error) { return brotli.NewWriter(w), nil },
		newReader: func(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(brotli.NewReader(r)), nil },
	},
	CompressionZstd: {
		name:      "zstd",
		newWriter: func(w io.Writer) (io.WriteCloser, error) { return zstd.NewWriter(w) },
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return d.IOReadCloser(), nil
		},
	},
}

// DetectCompression maps a Content-Encoding value to a CompressionType.
// Unknown values map to CompressionNone.
func DetectCompression(contentEncoding string) CompressionType {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip", "x-gzip":
		return CompressionGzip
	case "deflate", "x-deflate":
		return CompressionDeflate
	case "br", "brotli":
		return CompressionBrotli
	case "zstd", "zstandard":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// CompressionTypeToString converts a CompressionType to its Content-Encoding string
func CompressionTypeToString(ct CompressionType) string {
	return codecs[ct].name
}

// Compress compresses data using the specified algorithm
func Compress(data []byte, compressionType CompressionType) ([]byte, error) {
	if compressionType == CompressionNone {
		return data, nil
	}
	c, ok := codecs[compressionType]
	if !ok {
		return nil, errors.NewError(errors.ErrorTypeCompressionError,
			"unsupported compression type", "compress", nil)
	}

	var buf bytes.Buffer
	w, err := c.newWriter(&buf)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeCompressionError,
			"failed to create "+c.name+" writer", "compress")
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeCompressionError,
			"failed to write "+c.name+" data", "compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeCompressionError,
			"failed to close "+c.name+" writer", "compress")
	}
	return buf.Bytes(), nil
}

// Decompress decompresses data based on the compression type
func Decompress(data []byte, compressionType CompressionType) ([]byte, error) {
	if compressionType == CompressionNone || len(data) == 0 {
		return data, nil
	}
	c, ok := codecs[compressionType]
	if !ok {
		return nil, errors.NewError(errors.ErrorTypeCompressionError,
			"unsupported compression type", "decompress", nil)
	}

	r, err := c.newReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeCompressionError,
			"failed to create "+c.name+" reader", "decompress")
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeCompressionError,
			"failed to decompress "+c.name+" data", "decompress")
	}
	return out, nil
}

package request

import (
	"strconv"
	"strings"

	"github.com/WhileEndless/go-burparse/pkg/chunked"
	"github.com/WhileEndless/go-burparse/pkg/compression"
)

// CompressionMethod selects the body coding applied at build time
type CompressionMethod int

const (
	// CompressionNone leaves the body as is (default)
	CompressionNone CompressionMethod = iota
	// CompressionGzip compresses with gzip
	CompressionGzip
	// CompressionDeflate compresses with deflate
	CompressionDeflate
	// CompressionBrotli compresses with brotli
	CompressionBrotli
	// CompressionZstd compresses with zstd
	CompressionZstd
)

// ChunkedOption represents chunked encoding options for build
type ChunkedOption int

const (
	// ChunkedNone sends the body as is (default)
	ChunkedNone ChunkedOption = iota
	// ChunkedApply applies chunked encoding
	ChunkedApply
)

// BuildOptions configures how the request is built
type BuildOptions struct {
	// LineSeparator ends the request line and each header line.
	// Empty means "\n".
	LineSeparator string

	// UpdateContentLength sets Content-Length to the emitted body size
	UpdateContentLength bool

	// Compression compresses the body and sets Content-Encoding
	Compression CompressionMethod

	// Chunked applies chunked transfer coding and sets Transfer-Encoding
	Chunked ChunkedOption

	// ChunkSize for chunked encoding (0 = chunked.DefaultChunkSize)
	ChunkSize int
}

// DefaultBuildOptions returns options for LF output with headers and body
// left alone. Unlike Build, a request without headers gets a single blank line.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{LineSeparator: "\n"}
}

// WireOptions returns options for replaying the request over a socket:
// CRLF line endings and an accurate Content-Length
func WireOptions() BuildOptions {
	return BuildOptions{
		LineSeparator:       "\r\n",
		UpdateContentLength: true,
	}
}

// BuildWithOptions builds the request with specified options.
// The receiver is not modified.
func (r *Request) BuildWithOptions(opts BuildOptions) ([]byte, error) {
	lineSep := opts.LineSeparator
	if lineSep == "" {
		lineSep = "\n"
	}

	body := []byte(r.body)
	hdrs := r.Headers.Clone()

	if ct := toCompressionType(opts.Compression); ct != compression.CompressionNone && len(body) > 0 {
		compressed, err := compression.Compress(body, ct)
		if err != nil {
			return nil, err
		}
		body = compressed
		hdrs.Set("Content-Encoding", compression.CompressionTypeToString(ct))
	}

	if opts.Chunked == ChunkedApply {
		body = chunked.Encode(body, opts.ChunkSize)
		hdrs.Set("Transfer-Encoding", addChunkedToTE(hdrs.Get("Transfer-Encoding")))
		hdrs.Del("Content-Length")
	} else if opts.UpdateContentLength {
		if len(body) > 0 {
			hdrs.Set("Content-Length", strconv.Itoa(len(body)))
		} else {
			hdrs.Del("Content-Length")
		}
	}

	var b strings.Builder
	r.writeHead(&b, lineSep, hdrs)
	if hdrs.Len() > 0 {
		b.WriteString(lineSep)
	}
	b.WriteString(lineSep)
	b.Write(body)
	return []byte(b.String()), nil
}

func toCompressionType(cm CompressionMethod) compression.CompressionType {
	switch cm {
	case CompressionGzip:
		return compression.CompressionGzip
	case CompressionDeflate:
		return compression.CompressionDeflate
	case CompressionBrotli:
		return compression.CompressionBrotli
	case CompressionZstd:
		return compression.CompressionZstd
	default:
		return compression.CompressionNone
	}
}

// addChunkedToTE appends "chunked" to a Transfer-Encoding value unless present
func addChunkedToTE(te string) string {
	if te == "" {
		return "chunked"
	}
	for _, part := range strings.Split(te, ",") {
		if strings.EqualFold(strings.TrimSpace(part), "chunked") {
			return te
		}
	}
	return te + ", chunked"
}

// ParseCompressionMethod maps a Content-Encoding name ("gzip", "br", ...)
// to a CompressionMethod. ok is false for unknown names.
func ParseCompressionMethod(name string) (CompressionMethod, bool) {
	switch compression.DetectCompression(name) {
	case compression.CompressionGzip:
		return CompressionGzip, true
	case compression.CompressionDeflate:
		return CompressionDeflate, true
	case compression.CompressionBrotli:
		return CompressionBrotli, true
	case compression.CompressionZstd:
		return CompressionZstd, true
	}
	if name == "" || strings.EqualFold(name, "none") || strings.EqualFold(name, "identity") {
		return CompressionNone, true
	}
	return CompressionNone, false
}

// Package chunked applies and removes HTTP/1.1 chunked transfer coding.
package chunked

import (
	"bytes"
	"strconv"
	"strings"
)

// DefaultChunkSize is used when Encode is given a non-positive size
const DefaultChunkSize = 8192

// Encode encodes data with chunked transfer coding, CRLF delimited
func Encode(data []byte, chunkSize int) []byte {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var result bytes.Buffer
	for pos := 0; pos < len(data); pos += chunkSize {
		end := pos + chunkSize
		if end > len(data) {
			end = len(data)
		}
		result.WriteString(strconv.FormatInt(int64(end-pos), 16))
		result.WriteString("\r\n")
		result.Write(data[pos:end])
		result.WriteString("\r\n")
	}

	// last-chunk plus empty trailer section
	result.WriteString("0\r\n\r\n")
	return result.Bytes()
}

// Decode removes chunked transfer coding. It never fails: on malformed
// input it returns whatever was decoded before the damage. Chunk
// extensions and trailers are ignored; LF-only line endings are accepted.
func Decode(data []byte) []byte {
	var result bytes.Buffer
	pos := 0

	for pos < len(data) {
		lineEnd := bytes.IndexByte(data[pos:], '\n')
		if lineEnd == -1 {
			break
		}

		sizeLine := strings.TrimSpace(string(data[pos : pos+lineEnd]))
		if i := strings.IndexByte(sizeLine, ';'); i != -1 {
			sizeLine = strings.TrimSpace(sizeLine[:i])
		}
		size, err := strconv.ParseInt(sizeLine, 16, 64)
		if err != nil || size < 0 {
			break
		}
		pos += lineEnd + 1

		if size == 0 {
			break
		}
		if size > int64(len(data)-pos) {
			result.Write(data[pos:])
			break
		}

		result.Write(data[pos : pos+int(size)])
		pos += int(size)

		if pos < len(data) && data[pos] == '\r' {
			pos++
		}
		if pos < len(data) && data[pos] == '\n' {
			pos++
		}
	}

	return result.Bytes()
}

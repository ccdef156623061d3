package request

import (
	"io"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/WhileEndless/go-burparse/pkg/errors"
	"github.com/WhileEndless/go-burparse/pkg/headers"
)

// Parse parses a raw HTTP request.
//
// The first line must hold exactly three whitespace separated tokens
// (method, request-target, version). Header lines follow until the first
// empty line; every later line is appended to the body without a
// separator. Line endings may be LF or CRLF.
func Parse(data []byte) (*Request, error) {
	return parse(string(data))
}

// ParseString parses a raw HTTP request held in a string
func ParseString(s string) (*Request, error) {
	return parse(s)
}

// ParseReader reads r to the end and parses the result
func ParseReader(r io.Reader) (*Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeSourceUnavailable,
			"failed to read from reader", "parseReader")
	}
	return parse(string(data))
}

// ParseFile loads and parses the request stored in path
func ParseFile(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(pkgerrors.Wrapf(err, "read %s", path),
			errors.ErrorTypeSourceUnavailable, "cannot load request file", "parseFile")
	}

	req, err := parse(string(data))
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("loaded request from %s: %d bytes, %d headers", path, len(data), req.Headers.Len())
	return req, nil
}

func parse(data string) (*Request, error) {
	lines := strings.Split(data, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}

	req := NewRequest()
	if err := req.parseRequestLine(lines[0]); err != nil {
		return nil, err
	}

	var body strings.Builder
	inBody := false
	for _, line := range lines[1:] {
		if !inBody {
			if line == "" {
				inBody = true
				continue
			}
			name, value, ok := headers.ParseLine(line)
			if !ok {
				return nil, errors.NewError(errors.ErrorTypeMalformedHeaderLine,
					"header line needs a name and a colon", "parseHeaders", []byte(line))
			}
			req.Headers.Set(name, value)
			continue
		}

		if line != "" {
			body.WriteString(line)
			req.hasBody = true
		}
	}
	req.body = body.String()

	return req, nil
}

// parseRequestLine splits the request line into method, target and version
func (r *Request) parseRequestLine(line string) error {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return errors.NewError(errors.ErrorTypeMalformedRequestLine,
			"request line must be METHOD PATH VERSION", "parseRequestLine", []byte(line))
	}

	r.Method = parts[0]
	r.Path = parts[1]
	r.Version = parts[2]
	return nil
}

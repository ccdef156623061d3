package utils

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/WhileEndless/go-burparse/pkg/headers"
	"github.com/WhileEndless/go-burparse/pkg/request"
)

var standardMethods = map[string]bool{
	"GET": true, "HEAD": true, "POST": true, "PUT": true, "DELETE": true,
	"CONNECT": true, "OPTIONS": true, "TRACE": true, "PATCH": true,
}

// ValidationResult contains validation results
type ValidationResult struct {
	Valid    bool
	Warnings []string
	Errors   []string
}

func (r *ValidationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Valid = false
}

// ValidateRequest reports what would stop req from being sent as is.
// The request itself accepts any token, so nothing here is enforced.
func ValidateRequest(req *request.Request) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Warnings: make([]string, 0),
		Errors:   make([]string, 0),
	}

	// Method
	if !isToken(req.Method) {
		result.fail("HTTP method is not a valid token: %q", req.Method)
	} else if !standardMethods[req.Method] {
		result.warn("Non-standard HTTP method: %s", req.Method)
	}

	// Version
	if !strings.HasPrefix(req.Version, "HTTP/") {
		result.warn("Invalid HTTP version format: %s", req.Version)
	}

	validateHeaders(req.Headers.All(), result)

	// Host
	if host, ok := req.GetHeader("Host"); !ok {
		if strings.HasPrefix(req.Version, "HTTP/1.1") {
			result.warn("HTTP/1.1 request without Host header")
		}
	} else if !httpguts.ValidHostHeader(host) {
		result.fail("Invalid Host header: %q", host)
	}

	// Content-Length vs body size
	body, hasBody := req.Body()
	if contentLength, ok := req.GetHeader("Content-Length"); ok {
		if length, err := strconv.Atoi(contentLength); err != nil {
			result.warn("Invalid Content-Length header: %s", contentLength)
		} else if length != len(body) {
			result.warn("Content-Length mismatch: header says %d, body is %d bytes", length, len(body))
		}
	}

	if (req.Method == "GET" || req.Method == "HEAD") && hasBody && body != "" {
		result.warn("%s request with body (non-standard)", req.Method)
	}

	return result
}

// validateHeaders validates common header issues
func validateHeaders(headerList []headers.Header, result *ValidationResult) {
	seen := make(map[string]string)

	for _, header := range headerList {
		// names are stored case-sensitively; the wire treats them as equal
		lowerName := strings.ToLower(header.Name)
		if first, dup := seen[lowerName]; dup {
			result.warn("Duplicate header (case-insensitive): %s and %s", first, header.Name)
		} else {
			seen[lowerName] = header.Name
		}

		if !httpguts.ValidHeaderFieldName(header.Name) {
			result.fail("Invalid header name: %q", header.Name)
		}
		if !httpguts.ValidHeaderFieldValue(header.Value) {
			result.fail("Invalid header value for %s", header.Name)
		}
	}
}

func isToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !httpguts.IsTokenRune(r) {
			return false
		}
	}
	return true
}

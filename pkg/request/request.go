package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/WhileEndless/go-burparse/pkg/cookies"
	"github.com/WhileEndless/go-burparse/pkg/errors"
	"github.com/WhileEndless/go-burparse/pkg/headers"
)

// Content types set by the body mutators
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Request represents a captured HTTP request
type Request struct {
	Method  string                  // HTTP method token, replayed verbatim
	Path    string                  // Request-target as on the request line, query included
	Version string                  // HTTP version token, never interpreted
	Headers *headers.OrderedHeaders // Headers with preserved order

	body    string
	hasBody bool
}

// NewRequest creates a new Request instance
func NewRequest() *Request {
	return &Request{
		Headers: headers.NewOrderedHeaders(),
	}
}

// Clone creates a deep copy of the request
func (r *Request) Clone() *Request {
	clone := *r
	clone.Headers = r.Headers.Clone()
	return &clone
}

// GetMethod returns the HTTP method
func (r *Request) GetMethod() string {
	return r.Method
}

// ChangeMethod replaces the method token. Any token is accepted.
func (r *Request) ChangeMethod(method string) {
	r.Method = method
}

// GetHeaders returns a copy of all headers in order
func (r *Request) GetHeaders() []headers.Header {
	return r.Headers.All()
}

// GetHeader returns the value of name and whether it is present
func (r *Request) GetHeader(name string) (string, bool) {
	return r.Headers.Lookup(name)
}

// SetHeader inserts or overwrites a header. An existing header keeps its position.
func (r *Request) SetHeader(name, value string) {
	r.Headers.Set(name, value)
}

// SetHeaderAfter inserts a new header right after anchor
func (r *Request) SetHeaderAfter(name, value, anchor string) {
	r.Headers.SetAfter(name, value, anchor)
}

// SetHeaderBefore inserts a new header right before anchor
func (r *Request) SetHeaderBefore(name, value, anchor string) {
	r.Headers.SetBefore(name, value, anchor)
}

// DelHeader removes a header
func (r *Request) DelHeader(name string) {
	r.Headers.Del(name)
}

// Body returns the body and whether one is present
func (r *Request) Body() (string, bool) {
	return r.body, r.hasBody
}

// HasBody reports whether the request carries a body
func (r *Request) HasBody() bool {
	return r.hasBody
}

// SetBodyText sets a pre-formatted body. Text containing "=" is taken
// to be form data and Content-Type is set accordingly.
func (r *Request) SetBodyText(body string) {
	r.body = body
	r.hasBody = true
	if strings.Contains(body, "=") {
		r.Headers.Set("Content-Type", ContentTypeForm)
	}
}

// SetBodyJSON encodes v as JSON, uses it as the body and sets
// Content-Type to application/json. The text uses ": " and ", "
// separators and escapes non-ASCII runes as \uXXXX. Map keys come out
// sorted; pass a json.RawMessage to keep a given key order.
// On failure the request is unchanged.
func (r *Request) SetBodyJSON(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrorTypeBodyEncoding,
			"cannot encode body as JSON", "setBodyJSON")
	}

	r.body = spaceJSON(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	r.hasBody = true
	r.Headers.Set("Content-Type", ContentTypeJSON)
	return nil
}

// SetBodyRaw sets the body without touching any header
func (r *Request) SetBodyRaw(body string) {
	r.body = body
	r.hasBody = true
}

// spaceJSON rewrites compact JSON with a space after every ':' and ','
// outside strings and with non-ASCII runes escaped
func spaceJSON(compact []byte) string {
	var b strings.Builder
	inString, escaped := false, false
	for _, c := range string(compact) {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			if c >= utf8.RuneSelf {
				writeUnicodeEscape(&b, c)
				continue
			}
			b.WriteRune(c)
			continue
		}

		b.WriteRune(c)
		switch c {
		case '"':
			inString = true
		case ':', ',':
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func writeUnicodeEscape(b *strings.Builder, c rune) {
	if c > 0xFFFF {
		hi, lo := utf16.EncodeRune(c)
		fmt.Fprintf(b, "\\u%04x\\u%04x", hi, lo)
		return
	}
	fmt.Fprintf(b, "\\u%04x", c)
}

// ClearBody removes the body
func (r *Request) ClearBody() {
	r.body = ""
	r.hasBody = false
}

// UpdateContentLength sets Content-Length to the body size, or removes it
// when there is no body
func (r *Request) UpdateContentLength() {
	if r.hasBody && len(r.body) > 0 {
		r.Headers.Set("Content-Length", strconv.Itoa(len(r.body)))
	} else {
		r.Headers.Del("Content-Length")
	}
}

// Cookies returns the cookies of the Cookie header
func (r *Request) Cookies() []cookies.Cookie {
	return cookies.ParseCookies(r.Headers.Get("Cookie"))
}

// Cookie returns the value of the named cookie
func (r *Request) Cookie(name string) (string, bool) {
	return cookies.Find(r.Cookies(), name)
}

// SetCookie sets a cookie, rewriting the Cookie header in place
func (r *Request) SetCookie(name, value string) {
	r.Headers.Set("Cookie", cookies.BuildCookieHeader(cookies.Set(r.Cookies(), name, value)))
}

// DelCookie removes a cookie. The Cookie header is dropped once empty.
func (r *Request) DelCookie(name string) {
	if !r.Headers.Has("Cookie") {
		return
	}
	remaining := cookies.Delete(r.Cookies(), name)
	if len(remaining) == 0 {
		r.Headers.Del("Cookie")
		return
	}
	r.Headers.Set("Cookie", cookies.BuildCookieHeader(remaining))
}

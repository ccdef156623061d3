package request

import (
	"strings"

	"github.com/WhileEndless/go-burparse/pkg/headers"
)

// Build reconstructs the raw request text:
// request line, one "Name: Value" line per header, a blank line, the body.
// An absent body is written as nothing.
func (r *Request) Build() []byte {
	return []byte(r.String())
}

// String reconstructs the request as a string
func (r *Request) String() string {
	var b strings.Builder
	r.writeHead(&b, "\n", r.Headers)
	b.WriteString("\n\n")
	b.WriteString(r.body)
	return b.String()
}

// BuildString reconstructs the request as a string
func (r *Request) BuildString() string {
	return r.String()
}

func (r *Request) writeHead(b *strings.Builder, lineSep string, hdrs *headers.OrderedHeaders) {
	b.WriteString(r.Method)
	b.WriteString(" ")
	b.WriteString(r.Path)
	b.WriteString(" ")
	b.WriteString(r.Version)
	b.WriteString(lineSep)
	b.WriteString(hdrs.Build(lineSep))
}

package utils

import (
	"net/url"
	"strings"

	"github.com/WhileEndless/go-burparse/pkg/request"
)

// RequestEditor applies a chain of edits to a copy of a request.
// The first failing edit is remembered and later edits are skipped.
type RequestEditor struct {
	req *request.Request
	err error
}

// NewRequestEditor creates a new request editor working on a clone of req
func NewRequestEditor(req *request.Request) *RequestEditor {
	return &RequestEditor{req: req.Clone()}
}

// Request returns the edited request and the first edit error
func (e *RequestEditor) Request() (*request.Request, error) {
	return e.req, e.err
}

// Err returns the first edit error
func (e *RequestEditor) Err() error {
	return e.err
}

// SetMethod changes the HTTP method verbatim
func (e *RequestEditor) SetMethod(method string) *RequestEditor {
	if e.err == nil {
		e.req.ChangeMethod(method)
	}
	return e
}

// SetVersion changes the HTTP version
func (e *RequestEditor) SetVersion(version string) *RequestEditor {
	if e.err == nil {
		e.req.Version = version
	}
	return e
}

// SetHeader adds or updates a header
func (e *RequestEditor) SetHeader(name, value string) *RequestEditor {
	if e.err == nil {
		e.req.SetHeader(name, value)
	}
	return e
}

// SetHeaderLine adds or updates a header given as "Name: Value"
func (e *RequestEditor) SetHeaderLine(line string) *RequestEditor {
	if e.err != nil {
		return e
	}
	name, value, found := strings.Cut(line, ":")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		e.err = &EditError{Op: "header", Input: line}
		return e
	}
	e.req.SetHeader(name, strings.TrimSpace(value))
	return e
}

// RemoveHeader removes a header
func (e *RequestEditor) RemoveHeader(name string) *RequestEditor {
	if e.err == nil {
		e.req.DelHeader(name)
	}
	return e
}

// SetURI replaces the path, keeping the query string
func (e *RequestEditor) SetURI(uri string) *RequestEditor {
	if e.err == nil {
		e.req.SetURI(uri)
	}
	return e
}

// SetQueryString replaces the raw query string
func (e *RequestEditor) SetQueryString(query string) *RequestEditor {
	if e.err == nil {
		e.req.SetQueryString(query)
	}
	return e
}

// SetQueryParams replaces the query string with params
func (e *RequestEditor) SetQueryParams(params url.Values) *RequestEditor {
	if e.err == nil {
		e.req.SetQueryParams(params)
	}
	return e
}

// SetCookie sets a cookie in the Cookie header
func (e *RequestEditor) SetCookie(name, value string) *RequestEditor {
	if e.err == nil {
		e.req.SetCookie(name, value)
	}
	return e
}

// SetBodyText sets a text body
func (e *RequestEditor) SetBodyText(body string) *RequestEditor {
	if e.err == nil {
		e.req.SetBodyText(body)
	}
	return e
}

// SetBodyJSON sets a JSON body
func (e *RequestEditor) SetBodyJSON(v any) *RequestEditor {
	if e.err == nil {
		e.err = e.req.SetBodyJSON(v)
	}
	return e
}

// UpdateContentLength recomputes Content-Length
func (e *RequestEditor) UpdateContentLength() *RequestEditor {
	if e.err == nil {
		e.req.UpdateContentLength()
	}
	return e
}

// EditError reports an edit whose input could not be understood
type EditError struct {
	Op    string
	Input string
}

func (e *EditError) Error() string {
	return "burparse: invalid " + e.Op + " edit: " + e.Input
}

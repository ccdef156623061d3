// Package cookies reads and rewrites the Cookie header of a captured request.
package cookies

import (
	"strings"
)

// Cookie is a single name=value pair from a Cookie header
type Cookie struct {
	Name  string
	Value string // raw value, quotes kept
}

// Unquoted returns the value without surrounding double quotes
func (c Cookie) Unquoted() string {
	if len(c.Value) >= 2 && c.Value[0] == '"' && c.Value[len(c.Value)-1] == '"' {
		return c.Value[1 : len(c.Value)-1]
	}
	return c.Value
}

// ParseCookies parses a Cookie header value.
// Never fails; pieces without "=" become a cookie with an empty value.
func ParseCookies(cookieHeader string) []Cookie {
	cookies := []Cookie{}
	for _, part := range strings.Split(cookieHeader, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, found := strings.Cut(part, "=")
		if !found {
			cookies = append(cookies, Cookie{Name: part})
			continue
		}
		cookies = append(cookies, Cookie{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return cookies
}

// BuildCookieHeader joins cookies as "a=1; b=2". Nameless cookies are skipped.
func BuildCookieHeader(cookies []Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// Set replaces the value of every cookie called name, or appends one
func Set(cookies []Cookie, name, value string) []Cookie {
	found := false
	out := make([]Cookie, len(cookies))
	copy(out, cookies)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			found = true
		}
	}
	if !found {
		out = append(out, Cookie{Name: name, Value: value})
	}
	return out
}

// Delete drops every cookie called name
func Delete(cookies []Cookie, name string) []Cookie {
	out := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the value of the first cookie called name
func Find(cookies []Cookie, name string) (string, bool) {
	for _, c := range cookies {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

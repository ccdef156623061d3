package request

import (
	"net/url"
	"strings"
)

// target is the request-target split into the parts the URI and query
// accessors work on: [scheme://authority | //authority] path [?query] [#fragment]
type target struct {
	prefix   string
	path     string
	query    string
	fragment string
	hasFrag  bool
}

func splitTarget(s string) target {
	var t target

	s, t.fragment, t.hasFrag = strings.Cut(s, "#")
	s, t.query, _ = strings.Cut(s, "?")

	authStart := -1
	if strings.HasPrefix(s, "//") {
		authStart = 2
	} else if i := strings.Index(s, "://"); i > 0 && isScheme(s[:i]) {
		authStart = i + 3
	}
	if authStart >= 0 {
		end := len(s)
		if j := strings.IndexByte(s[authStart:], '/'); j >= 0 {
			end = authStart + j
		}
		t.prefix, s = s[:end], s[end:]
	}

	t.path = s
	return t
}

func (t target) String() string {
	var b strings.Builder
	b.WriteString(t.prefix)
	b.WriteString(t.path)
	if t.query != "" {
		b.WriteByte('?')
		b.WriteString(t.query)
	}
	if t.hasFrag {
		b.WriteByte('#')
		b.WriteString(t.fragment)
	}
	return b.String()
}

// isScheme reports whether s is a valid URI scheme (RFC 3986 section 3.1)
func isScheme(s string) bool {
	for i, c := range s {
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}

// GetURI returns the path part of the request-target, without query string
func (r *Request) GetURI() string {
	return splitTarget(r.Path).path
}

// SetURI replaces the path part of the request-target, keeping the query string
func (r *Request) SetURI(uri string) {
	t := splitTarget(r.Path)
	t.path = uri
	r.Path = t.String()
}

// GetQueryString returns the raw query string, or "" when there is none
func (r *Request) GetQueryString() string {
	return splitTarget(r.Path).query
}

// SetQueryString replaces the query string. An empty query removes the "?".
func (r *Request) SetQueryString(query string) {
	t := splitTarget(r.Path)
	t.query = query
	r.Path = t.String()
}

// GetQueryParams decodes the query string. Pairs are separated by '&'
// only, so a ';' stays part of the value. Values keep their order of
// appearance. Pairs without '=', parameters with an empty value and pairs
// that fail to decode are left out.
func (r *Request) GetQueryParams() url.Values {
	params := url.Values{}
	for _, pair := range strings.Split(r.GetQueryString(), "&") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || value == "" {
			continue
		}
		name, err := url.QueryUnescape(name)
		if err != nil {
			continue
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			continue
		}
		params[name] = append(params[name], value)
	}
	return params
}

// SetQueryParams encodes params, sorted by name with one name=value pair
// per value, and installs them as the query string
func (r *Request) SetQueryParams(params url.Values) {
	r.SetQueryString(params.Encode())
}

// SetQueryParam replaces a single parameter, leaving the others as decoded
func (r *Request) SetQueryParam(name string, values ...string) {
	params := r.GetQueryParams()
	if len(values) == 0 {
		params.Del(name)
	} else {
		params[name] = values
	}
	r.SetQueryParams(params)
}

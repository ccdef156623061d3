// Package search finds and replaces text inside a captured request.
package search

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/WhileEndless/go-burparse/pkg/chunked"
	"github.com/WhileEndless/go-burparse/pkg/compression"
	"github.com/WhileEndless/go-burparse/pkg/request"
)

// Location specifies where to search
type Location int

const (
	InRequestLine Location = 1 << iota
	InHeaders
	InBody
	InAll = InRequestLine | InHeaders | InBody
)

func (l Location) String() string {
	switch l {
	case InRequestLine:
		return "request-line"
	case InHeaders:
		return "header"
	case InBody:
		return "body"
	}
	return "all"
}

// Options configures search behaviour
type Options struct {
	Pattern         string
	UseRegex        bool
	CaseInsensitive bool
	Location        Location

	// DecodeBody undoes Transfer-Encoding: chunked and Content-Encoding
	// before the body is searched
	DecodeBody bool

	// SearchHeaderNames also matches header names, not just values
	SearchHeaderNames bool

	MaxResults int // 0 = unlimited
}

// DefaultOptions returns default search options
func DefaultOptions() Options {
	return Options{
		Location:          InAll,
		DecodeBody:        true,
		SearchHeaderNames: true,
	}
}

// Match is a single hit
type Match struct {
	Location   Location
	HeaderName string // empty outside headers
	Text       string
	Start      int
	End        int
	Line       int // 1-indexed line inside the searched text
	Context    string
}

// Results holds all matches for a query
type Results struct {
	Query         string
	Matches       []Match
	HeaderMatches int
	BodyMatches   int
}

// HasMatches returns true if anything matched
func (r *Results) HasMatches() bool {
	return len(r.Matches) > 0
}

// Searcher matches a compiled pattern
type Searcher struct {
	opts  Options
	regex *regexp.Regexp // nil for case-sensitive literal patterns
}

// NewSearcher compiles opts.Pattern. Case-insensitive literal patterns
// are matched with Unicode case folding on the original bytes.
func NewSearcher(opts Options) (*Searcher, error) {
	s := &Searcher{opts: opts}
	if opts.Location == 0 {
		s.opts.Location = InAll
	}

	expr := ""
	switch {
	case opts.UseRegex:
		expr = opts.Pattern
	case opts.CaseInsensitive && opts.Pattern != "":
		expr = regexp.QuoteMeta(opts.Pattern)
	default:
		return s, nil
	}
	if opts.CaseInsensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	s.regex = re
	return s, nil
}

func (s *Searcher) full(n int) bool {
	return s.opts.MaxResults > 0 && n >= s.opts.MaxResults
}

// indexes returns [start, end) pairs of every match in data
func (s *Searcher) indexes(data []byte) [][]int {
	if s.regex != nil {
		return s.regex.FindAllIndex(data, -1)
	}
	if s.opts.Pattern == "" {
		return nil
	}

	needle := []byte(s.opts.Pattern)
	var out [][]int
	offset := 0
	for {
		idx := bytes.Index(data[offset:], needle)
		if idx == -1 {
			return out
		}
		start := offset + idx
		out = append(out, []int{start, start + len(needle)})
		offset = start + len(needle)
	}
}

// SearchBytes searches raw bytes
func (s *Searcher) SearchBytes(data []byte) []Match {
	var matches []Match
	for _, m := range s.indexes(data) {
		if s.full(len(matches)) {
			break
		}
		matches = append(matches, Match{
			Text:    string(data[m[0]:m[1]]),
			Start:   m[0],
			End:     m[1],
			Line:    bytes.Count(data[:m[0]], []byte("\n")) + 1,
			Context: extractContext(data, m[0], m[1], 50),
		})
	}
	return matches
}

// Request searches the parts of req selected by the options
func (s *Searcher) Request(req *request.Request) *Results {
	res := &Results{Query: s.opts.Pattern}
	add := func(loc Location, header string, found []Match) {
		for _, m := range found {
			if s.full(len(res.Matches)) {
				return
			}
			m.Location = loc
			m.HeaderName = header
			res.Matches = append(res.Matches, m)
			switch loc {
			case InHeaders:
				res.HeaderMatches++
			case InBody:
				res.BodyMatches++
			}
		}
	}

	if s.opts.Location&InRequestLine != 0 {
		add(InRequestLine, "", s.SearchBytes([]byte(req.Method+" "+req.Path+" "+req.Version)))
	}
	if s.opts.Location&InHeaders != 0 {
		for _, h := range req.GetHeaders() {
			if s.opts.SearchHeaderNames {
				add(InHeaders, h.Name, s.SearchBytes([]byte(h.Name)))
			}
			add(InHeaders, h.Name, s.SearchBytes([]byte(h.Value)))
		}
	}
	if s.opts.Location&InBody != 0 {
		if body, ok := req.Body(); ok {
			data := []byte(body)
			if s.opts.DecodeBody {
				data = DecodeBody(req, data)
			}
			add(InBody, "", s.SearchBytes(data))
		}
	}
	return res
}

// DecodeBody undoes the transfer and content codings named by the request
// headers. A body that fails to decode is returned as is. A parsed capture
// has its line breaks removed, so its chunk framing usually cannot be
// found; the stored text is kept when chunked decoding yields nothing.
func DecodeBody(req *request.Request, body []byte) []byte {
	if te, _ := req.GetHeader("Transfer-Encoding"); strings.Contains(strings.ToLower(te), "chunked") {
		if decoded := chunked.Decode(body); len(decoded) > 0 || len(body) == 0 {
			body = decoded
		}
	}
	ce, _ := req.GetHeader("Content-Encoding")
	if ct := compression.DetectCompression(ce); ct != compression.CompressionNone {
		if plain, err := compression.Decompress(body, ct); err == nil {
			body = plain
		}
	}
	return body
}

// Find runs a one-off search over req
func Find(req *request.Request, opts Options) (*Results, error) {
	s, err := NewSearcher(opts)
	if err != nil {
		return nil, err
	}
	return s.Request(req), nil
}

// Replace returns a copy of req with every match replaced. Body
// replacement works on the stored body text, so encoded bodies are only
// touched where the pattern occurs literally. Header names are left alone.
func Replace(req *request.Request, opts Options, replacement string) (*request.Request, int, error) {
	s, err := NewSearcher(opts)
	if err != nil {
		return nil, 0, err
	}

	out := req.Clone()
	count := 0
	loc := s.opts.Location

	if loc&InRequestLine != 0 {
		var n int
		out.Method, n = s.replace(out.Method, replacement)
		count += n
		out.Path, n = s.replace(out.Path, replacement)
		count += n
		out.Version, n = s.replace(out.Version, replacement)
		count += n
	}
	if loc&InHeaders != 0 {
		for _, h := range out.GetHeaders() {
			v, n := s.replace(h.Value, replacement)
			if n > 0 {
				out.SetHeader(h.Name, v)
				count += n
			}
		}
	}
	if loc&InBody != 0 {
		if body, ok := out.Body(); ok {
			v, n := s.replace(body, replacement)
			if n > 0 {
				out.SetBodyRaw(v)
				count += n
			}
		}
	}
	return out, count, nil
}

func (s *Searcher) replace(text, replacement string) (string, int) {
	data := []byte(text)
	idx := s.indexes(data)
	if len(idx) == 0 {
		return text, 0
	}
	if s.opts.UseRegex {
		return string(s.regex.ReplaceAll(data, []byte(replacement))), len(idx)
	}

	var b strings.Builder
	last := 0
	for _, m := range idx {
		b.Write(data[last:m[0]])
		b.WriteString(replacement)
		last = m[1]
	}
	b.Write(data[last:])
	return b.String(), len(idx)
}

func extractContext(data []byte, start, end, size int) string {
	ctxStart := start - size
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctxEnd := end + size
	if ctxEnd > len(data) {
		ctxEnd = len(data)
	}
	return string(data[ctxStart:ctxEnd])
}

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/WhileEndless/go-burparse/pkg/request"
	"github.com/WhileEndless/go-burparse/pkg/search"
	"github.com/WhileEndless/go-burparse/pkg/utils"
)

var (
	labelColor = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	titleColor = color.New(color.FgCyan, color.Bold)
)

// InitColors turns coloured output on or off
func InitColors(enabled bool) {
	color.NoColor = !enabled
}

// Printer writes human readable reports
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) field(label, value string) {
	labelColor.Fprintf(p.out, "[+] %s: ", label)
	fmt.Fprintln(p.out, value)
}

// Inspect prints the parsed fields of req
func (p *Printer) Inspect(req *request.Request) {
	p.field("Method", req.GetMethod())

	pairs := make([]string, 0, req.Headers.Len())
	for _, h := range req.GetHeaders() {
		pairs = append(pairs, fmt.Sprintf("%q: %q", h.Name, h.Value))
	}
	p.field("Headers", "{"+strings.Join(pairs, ", ")+"}")

	if body, ok := req.Body(); ok {
		p.field("Body", body)
	} else {
		p.field("Body", "<none>")
	}

	p.field("URI", req.GetURI())
	p.field("Query string", req.GetQueryString())

	params := req.GetQueryParams()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%q: %q", name, params[name]))
	}
	p.field("Query params", "{"+strings.Join(parts, ", ")+"}")
}

// Validation prints a validation report
func (p *Printer) Validation(result *utils.ValidationResult) {
	for _, e := range result.Errors {
		errorColor.Fprint(p.out, "[error] ")
		fmt.Fprintln(p.out, e)
	}
	for _, w := range result.Warnings {
		warnColor.Fprint(p.out, "[warning] ")
		fmt.Fprintln(p.out, w)
	}
	if result.Valid && len(result.Warnings) == 0 {
		labelColor.Fprintln(p.out, "[+] Request looks sendable")
	}
}

// Matches prints search hits
func (p *Printer) Matches(res *search.Results) {
	if !res.HasMatches() {
		warnColor.Fprintf(p.out, "[-] No match for %q\n", res.Query)
		return
	}
	for _, m := range res.Matches {
		where := m.Location.String()
		if m.HeaderName != "" {
			where += " " + m.HeaderName
		}
		labelColor.Fprintf(p.out, "[+] %s:%d: ", where, m.Line)
		fmt.Fprintln(p.out, m.Text)
	}
	labelColor.Fprintf(p.out, "[+] %d header, %d body matches\n", res.HeaderMatches, res.BodyMatches)
}

// Title prints a section banner
func (p *Printer) Title(title string) {
	titleColor.Fprintf(p.out, "\n================= %s ==============\n\n", title)
}

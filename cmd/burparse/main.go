// Command burparse loads a raw HTTP request exported from an intercepting
// proxy, applies edits given on the command line and prints the result.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"k8s.io/klog/v2"

	"github.com/WhileEndless/go-burparse/pkg/request"
	"github.com/WhileEndless/go-burparse/pkg/search"
	"github.com/WhileEndless/go-burparse/pkg/utils"
	"github.com/WhileEndless/go-burparse/pkg/version"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "burparse:", err)
		os.Exit(2)
	}
	defer klog.Flush()

	if cfg.ShowVersion {
		fmt.Println("burparse", version.GetVersion())
		return
	}

	InitColors(!cfg.NoColor)
	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		klog.ErrorS(err, "burparse failed", "file", cfg.RequestFile)
		klog.Flush()
		os.Exit(1)
	}
}

func run(cfg *Config, stdin io.Reader, stdout io.Writer) error {
	req, err := load(cfg.RequestFile, stdin)
	if err != nil {
		return err
	}

	printer := NewPrinter(stdout)
	if cfg.Inspect {
		printer.Inspect(req)
	}

	edited, err := applyEdits(cfg, req)
	if err != nil {
		return err
	}
	if cfg.ReplaceSet {
		var n int
		edited, n, err = search.Replace(edited, cfg.searchOptions(), cfg.Replace)
		if err != nil {
			return err
		}
		klog.V(2).InfoS("replaced matches", "pattern", cfg.Find, "count", n)
	} else if cfg.Find != "" {
		res, err := search.Find(edited, cfg.searchOptions())
		if err != nil {
			return err
		}
		printer.Matches(res)
	}

	klog.V(4).InfoS("edits applied", "method", edited.Method, "path", edited.Path, "headers", edited.Headers.Len())

	if cfg.ValidateRequest {
		printer.Validation(utils.ValidateRequest(edited))
	}

	if cfg.Inspect || cfg.ValidateRequest || (cfg.Find != "" && !cfg.ReplaceSet) {
		printer.Title("FULL REQUEST")
	}

	var out []byte
	if cfg.rendersPlainly() {
		out = edited.Build()
	} else {
		out, err = edited.BuildWithOptions(cfg.buildOptions())
		if err != nil {
			return err
		}
	}
	if _, err := stdout.Write(out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout)
	return err
}

func load(path string, stdin io.Reader) (*request.Request, error) {
	if path == "-" {
		return request.ParseReader(stdin)
	}
	return request.ParseFile(path)
}

// applyEdits runs the command line edits, in flag order of concern,
// through a RequestEditor
func applyEdits(cfg *Config, req *request.Request) (*request.Request, error) {
	e := utils.NewRequestEditor(req)

	if cfg.Method != "" {
		e.SetMethod(cfg.Method)
	}
	for _, h := range cfg.Headers {
		e.SetHeaderLine(h)
	}
	if cfg.URI != "" {
		e.SetURI(cfg.URI)
	}
	if cfg.QuerySet {
		e.SetQueryString(cfg.Query)
	}
	if len(cfg.Params) > 0 {
		params := url.Values{}
		for _, p := range cfg.Params {
			name, value, _ := strings.Cut(p, "=")
			params.Add(name, value)
		}
		e.SetQueryParams(params)
	}
	for _, c := range cfg.Cookies {
		name, value, _ := strings.Cut(c, "=")
		e.SetCookie(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	switch {
	case cfg.JSONBody != "":
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(cfg.JSONBody), &fields); err != nil {
			return nil, fmt.Errorf("--%s must be a JSON object: %w", flagJSONBody, err)
		}
		// raw text keeps the caller's key order
		e.SetBodyJSON(json.RawMessage(cfg.JSONBody))
	case cfg.Body != "":
		e.SetBodyText(cfg.Body)
	}

	return e.Request()
}

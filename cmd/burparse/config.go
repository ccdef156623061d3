package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/WhileEndless/go-burparse/pkg/request"
	"github.com/WhileEndless/go-burparse/pkg/search"
)

const (
	flagMethod       = "method"
	flagHeader       = "header"
	flagURI          = "uri"
	flagQuery        = "query"
	flagParam        = "param"
	flagCookie       = "cookie"
	flagBody         = "body"
	flagJSONBody     = "json-body"
	flagCRLF         = "crlf"
	flagUpdateLength = "update-length"
	flagCompress     = "compress"
	flagChunked      = "chunked"
	flagChunkSize    = "chunk-size"
	flagInspect      = "inspect"
	flagValidate     = "validate"
	flagNoColor      = "no-color"
	flagVersion      = "version"
	flagFind         = "find"
	flagRegex        = "regex"
	flagIgnoreCase   = "ignore-case"
	flagReplace      = "replace"
)

// Config holds the command line configuration
type Config struct {
	RequestFile string // path of the captured request, "-" for stdin

	Method   string
	Headers  []string
	URI      string
	Query    string
	QuerySet bool
	Params   []string
	Cookies  []string
	Body     string
	JSONBody string

	CRLF         bool
	UpdateLength bool
	Compress     string
	Chunked      bool
	ChunkSize    int

	Find       string
	Regex      bool
	IgnoreCase bool
	Replace    string
	ReplaceSet bool

	Inspect         bool
	ValidateRequest bool
	NoColor         bool
	ShowVersion     bool
}

// BindFlags registers the configuration flags on fs
func (cfg *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&cfg.Method, flagMethod, "X", "", "Replace the HTTP method (any token is accepted)")
	fs.StringArrayVarP(&cfg.Headers, flagHeader, "H", nil, "Set a header \"Name: Value\" (repeatable)")
	fs.StringVar(&cfg.URI, flagURI, "", "Replace the path, keeping the query string")
	fs.StringVar(&cfg.Query, flagQuery, "", "Replace the raw query string (empty removes it)")
	fs.StringArrayVar(&cfg.Params, flagParam, nil, "Query parameter name=value, replaces the query string (repeatable)")
	fs.StringArrayVar(&cfg.Cookies, flagCookie, nil, "Set a cookie name=value (repeatable)")
	fs.StringVar(&cfg.Body, flagBody, "", "Replace the body with text")
	fs.StringVar(&cfg.JSONBody, flagJSONBody, "", "Replace the body with a JSON object, keys kept in the given order")
	fs.BoolVar(&cfg.CRLF, flagCRLF, false, "Write CRLF line endings")
	fs.BoolVar(&cfg.UpdateLength, flagUpdateLength, false, "Recompute Content-Length")
	fs.StringVar(&cfg.Compress, flagCompress, "", "Compress the body: gzip, deflate, br or zstd")
	fs.BoolVar(&cfg.Chunked, flagChunked, false, "Apply chunked transfer coding to the body")
	fs.IntVar(&cfg.ChunkSize, flagChunkSize, 0, "Chunk size for --chunked (0 = 8192)")
	fs.StringVar(&cfg.Find, flagFind, "", "Report every occurrence of a pattern")
	fs.BoolVar(&cfg.Regex, flagRegex, false, "Treat --find as a regular expression")
	fs.BoolVarP(&cfg.IgnoreCase, flagIgnoreCase, "i", false, "Case insensitive --find")
	fs.StringVar(&cfg.Replace, flagReplace, "", "Replace every --find match with this text")
	fs.BoolVar(&cfg.Inspect, flagInspect, false, "Print the parsed fields before editing")
	fs.BoolVar(&cfg.ValidateRequest, flagValidate, false, "Report problems that would stop the request from being sent")
	fs.BoolVar(&cfg.NoColor, flagNoColor, false, "Disable coloured output")
	fs.BoolVar(&cfg.ShowVersion, flagVersion, false, "Print the version and exit")
}

// Validate checks flag combinations
func (cfg *Config) Validate() error {
	if cfg.ShowVersion {
		return nil
	}
	if cfg.RequestFile == "" {
		return fmt.Errorf("a request file (or - for stdin) is required")
	}
	if cfg.Body != "" && cfg.JSONBody != "" {
		return fmt.Errorf("--%s and --%s are mutually exclusive", flagBody, flagJSONBody)
	}
	if cfg.QuerySet && len(cfg.Params) > 0 {
		return fmt.Errorf("--%s and --%s are mutually exclusive", flagQuery, flagParam)
	}
	if _, ok := request.ParseCompressionMethod(cfg.Compress); !ok {
		return fmt.Errorf("unsupported --%s value %q", flagCompress, cfg.Compress)
	}
	if cfg.ChunkSize < 0 {
		return fmt.Errorf("--%s must not be negative", flagChunkSize)
	}
	if cfg.ReplaceSet && cfg.Find == "" {
		return fmt.Errorf("--%s needs --%s", flagReplace, flagFind)
	}
	for _, p := range cfg.Params {
		if !strings.Contains(p, "=") {
			return fmt.Errorf("--%s %q is not name=value", flagParam, p)
		}
	}
	for _, c := range cfg.Cookies {
		if name, _, ok := strings.Cut(c, "="); !ok || strings.TrimSpace(name) == "" {
			return fmt.Errorf("--%s %q is not name=value", flagCookie, c)
		}
	}
	return nil
}

// LoadConfig parses args (without the program name) into a Config.
// klog flags such as -v are accepted as well.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}

	gofs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(gofs)

	fs := pflag.NewFlagSet("burparse", pflag.ContinueOnError)
	fs.AddGoFlagSet(gofs)
	cfg.BindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.QuerySet = fs.Changed(flagQuery)
	cfg.ReplaceSet = fs.Changed(flagReplace)
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected one request file, got %d arguments", fs.NArg())
	}
	cfg.RequestFile = fs.Arg(0)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildOptions translates output flags into request.BuildOptions
func (cfg *Config) buildOptions() request.BuildOptions {
	opts := request.DefaultBuildOptions()
	if cfg.CRLF {
		opts.LineSeparator = "\r\n"
	}
	opts.UpdateContentLength = cfg.UpdateLength
	opts.Compression, _ = request.ParseCompressionMethod(cfg.Compress)
	if cfg.Chunked {
		opts.Chunked = request.ChunkedApply
		opts.ChunkSize = cfg.ChunkSize
	}
	return opts
}

func (cfg *Config) searchOptions() search.Options {
	opts := search.DefaultOptions()
	opts.Pattern = cfg.Find
	opts.UseRegex = cfg.Regex
	opts.CaseInsensitive = cfg.IgnoreCase
	return opts
}

// rendersPlainly reports whether the output equals Request.String
func (cfg *Config) rendersPlainly() bool {
	return !cfg.CRLF && !cfg.UpdateLength && !cfg.Chunked &&
		(cfg.Compress == "" || strings.EqualFold(cfg.Compress, "none") || strings.EqualFold(cfg.Compress, "identity"))
}

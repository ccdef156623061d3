package main

import (
	"testing"

	"github.com/WhileEndless/go-burparse/pkg/request"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig([]string{
		"-X", "POST",
		"-H", "X-One: 1",
		"--header", "X-Two: 2",
		"--param", "a=1", "--param", "a=2",
		"--crlf", "--update-length",
		"-v", "4",
		"capture.txt",
	})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Method != "POST" {
		t.Errorf("Expected method POST, got %s", cfg.Method)
	}
	if len(cfg.Headers) != 2 || cfg.Headers[1] != "X-Two: 2" {
		t.Errorf("Unexpected headers: %v", cfg.Headers)
	}
	if len(cfg.Params) != 2 {
		t.Errorf("Expected 2 params, got %v", cfg.Params)
	}
	if cfg.RequestFile != "capture.txt" {
		t.Errorf("Expected request file capture.txt, got %s", cfg.RequestFile)
	}
	if cfg.QuerySet {
		t.Error("QuerySet should be false when --query is not given")
	}

	opts := cfg.buildOptions()
	if opts.LineSeparator != "\r\n" || !opts.UpdateContentLength {
		t.Errorf("Unexpected build options: %+v", opts)
	}
	if cfg.rendersPlainly() {
		t.Error("CRLF output should not render plainly")
	}
}

func TestLoadConfigEmptyQuery(t *testing.T) {
	cfg, err := LoadConfig([]string{"--query", "", "capture.txt"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.QuerySet || cfg.Query != "" {
		t.Errorf("Expected explicit empty query, got set=%v query=%q", cfg.QuerySet, cfg.Query)
	}
}

func TestLoadConfigCompression(t *testing.T) {
	cfg, err := LoadConfig([]string{"--compress", "br", "--chunked", "--chunk-size", "16", "capture.txt"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	opts := cfg.buildOptions()
	if opts.Compression != request.CompressionBrotli {
		t.Errorf("Expected brotli compression, got %v", opts.Compression)
	}
	if opts.Chunked != request.ChunkedApply || opts.ChunkSize != 16 {
		t.Errorf("Unexpected chunk options: %+v", opts)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string][]string{
		"missing file":     {},
		"two files":        {"a.txt", "b.txt"},
		"body and json":    {"--body", "x", "--json-body", "{}", "a.txt"},
		"query and param":  {"--query", "a=1", "--param", "b=2", "a.txt"},
		"bad compression":  {"--compress", "lzma", "a.txt"},
		"negative chunk":   {"--chunked", "--chunk-size", "-1", "a.txt"},
		"param without eq": {"--param", "novalue", "a.txt"},
		"nameless cookie":  {"--cookie", "=v", "a.txt"},
		"unknown flag":     {"--nope", "a.txt"},
	}

	for name, args := range cases {
		if _, err := LoadConfig(args); err == nil {
			t.Errorf("%s: expected an error for %v", name, args)
		}
	}
}

func TestLoadConfigVersionNeedsNoFile(t *testing.T) {
	cfg, err := LoadConfig([]string{"--version"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.ShowVersion {
		t.Error("Expected ShowVersion")
	}
}

func TestLoadConfigReplaceNeedsFind(t *testing.T) {
	if _, err := LoadConfig([]string{"--replace", "x", "a.txt"}); err == nil {
		t.Error("Expected an error for --replace without --find")
	}
	cfg, err := LoadConfig([]string{"--find", "a", "-i", "--replace", "", "a.txt"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	opts := cfg.searchOptions()
	if !cfg.ReplaceSet || !opts.CaseInsensitive || opts.Pattern != "a" {
		t.Errorf("Unexpected search config: %+v %+v", cfg, opts)
	}
}

package utils

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/WhileEndless/go-burparse/pkg/request"
)

// TargetURL returns the absolute URL of req. Origin-form targets are
// resolved against the Host header using scheme.
func TargetURL(req *request.Request, scheme string) (string, error) {
	if strings.Contains(req.Path, "://") {
		return req.Path, nil
	}
	host, ok := req.GetHeader("Host")
	if !ok || host == "" {
		return "", fmt.Errorf("request has no Host header and an origin-form target %q", req.Path)
	}
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + host + req.Path, nil
}

// ToStandardRequest converts req to a net/http request. Header names are
// kept as written.
func ToStandardRequest(req *request.Request, scheme string) (*http.Request, error) {
	target, err := TargetURL(req, scheme)
	if err != nil {
		return nil, err
	}

	body, _ := req.Body()
	httpReq, err := http.NewRequest(req.Method, target, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create standard request: %w", err)
	}

	for _, header := range req.GetHeaders() {
		if header.Name == "Host" {
			httpReq.Host = header.Value
			continue
		}
		httpReq.Header[header.Name] = []string{header.Value}
	}

	return httpReq, nil
}

// ToFastHTTPRequest converts req to a fasthttp request without
// normalizing header names. Release it with fasthttp.ReleaseRequest.
func ToFastHTTPRequest(req *request.Request, scheme string) (*fasthttp.Request, error) {
	target, err := TargetURL(req, scheme)
	if err != nil {
		return nil, err
	}

	freq := fasthttp.AcquireRequest()
	freq.Header.DisableNormalizing()
	freq.Header.SetMethod(req.Method)
	freq.SetRequestURI(target)

	for _, header := range req.GetHeaders() {
		freq.Header.Set(header.Name, header.Value)
	}
	if body, ok := req.Body(); ok {
		freq.SetBodyString(body)
	}

	return freq, nil
}

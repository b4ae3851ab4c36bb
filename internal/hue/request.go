package hue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request describes one call against the bridge.
type Request struct {
	Method string
	Path   string
	Body   any // marshalled to JSON when non-nil
}

func validMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut:
		return true
	}
	return false
}

// build turns r into an *http.Request against host over plain http.
func (r Request) build(ctx context.Context, host string, bypassCache bool) (*http.Request, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, ErrNoHost
	}
	if !validMethod(r.Method) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, r.Method)
	}

	path := r.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := &url.URL{Scheme: "http", Host: host, Path: path}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if bypassCache {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}
	return req, nil
}

func authenticatedPath(username, path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "/api/" + username + path
}

// redactURL hides the username segment of /api/{username}/... paths so it
// never ends up in logs or error messages.
func redactURL(raw string) string {
	const marker = "/api/"
	i := strings.Index(raw, marker)
	if i < 0 {
		return raw
	}
	rest := raw[i+len(marker):]
	if rest == "" {
		return raw
	}
	if j := strings.IndexAny(rest, "/?"); j >= 0 {
		return raw[:i+len(marker)] + "***" + rest[j:]
	}
	return raw[:i+len(marker)] + "***"
}

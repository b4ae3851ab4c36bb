package hue

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	defaultRequestTimeout  = 5 * time.Second
	defaultMaxConnsPerHost = 1
)

// Policy holds the fixed connection parameters used to reach the bridge.
//
// The bridge lives on the local network, so requests go direct (no proxy),
// bypass caches, time out quickly and share a single connection. Overlapping
// calls are serialized by the transport, not by the session.
type Policy struct {
	Timeout         time.Duration
	MaxConnsPerHost int
	BypassCache     bool
}

// DefaultPolicy returns the policy every session uses unless overridden.
func DefaultPolicy() Policy {
	return Policy{
		Timeout:         defaultRequestTimeout,
		MaxConnsPerHost: defaultMaxConnsPerHost,
		BypassCache:     true,
	}
}

func (p Policy) normalized() Policy {
	def := DefaultPolicy()
	if p.Timeout <= 0 {
		p.Timeout = def.Timeout
	}
	if p.MaxConnsPerHost <= 0 {
		p.MaxConnsPerHost = def.MaxConnsPerHost
	}
	return p
}

// httpClient builds the ephemeral client for p: no cookie jar, no proxy.
func (p Policy) httpClient(logger *slog.Logger) *http.Client {
	p = p.normalized()
	base := &http.Transport{
		Proxy: nil,
		DialContext: (&net.Dialer{
			Timeout:   p.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxConnsPerHost:     p.MaxConnsPerHost,
		MaxIdleConnsPerHost: p.MaxConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   false,
	}
	var rt http.RoundTripper = base
	if logger != nil {
		rt = &loggingTransport{base: base, logger: logger}
	}
	return &http.Client{
		Timeout:   p.Timeout,
		Transport: rt,
	}
}

// loggingTransport logs each round trip at debug level, tagging request and
// response with the same correlation id.
type loggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := uuid.NewString()
	start := time.Now()
	t.logger.LogAttrs(req.Context(), slog.LevelDebug, "bridge_request",
		slog.String("id", id),
		slog.String("method", req.Method),
		slog.String("url", redactURL(req.URL.String())),
	)

	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		t.logger.LogAttrs(req.Context(), slog.LevelDebug, "bridge_error",
			slog.String("id", id),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	t.logger.LogAttrs(req.Context(), level, "bridge_response",
		slog.String("id", id),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)
	return resp, nil
}

func (t *loggingTransport) CloseIdleConnections() {
	if c, ok := t.base.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
}

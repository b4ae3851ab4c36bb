package hue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	userAgent         = "lumen/0.1"
	defaultDeviceType = "lumen#desktop"
)

// Bridge is the part of Session the UI and CLI depend on. It is implemented
// by *Session and can be faked in tests.
type Bridge interface {
	Lights(ctx context.Context) ([]Light, error)
	SetBrightness(ctx context.Context, id string, bri int) error
	Pair(ctx context.Context) error
	Paired() bool
	Shutdown()
}

// Ensure Session implements Bridge at compile time.
var _ Bridge = (*Session)(nil)

// Session is the single authority for talking to one bridge. It owns the
// host, the username credential and the HTTP client built from the transport
// policy.
type Session struct {
	host       string
	deviceType string
	policy     Policy
	http       *http.Client
	logger     *slog.Logger

	mu       sync.RWMutex
	username string

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Session.
type Option func(*Session)

// WithUsername starts the session already paired with a known username.
func WithUsername(username string) Option {
	return func(s *Session) {
		s.username = strings.TrimSpace(username)
	}
}

// WithDeviceType sets the devicetype sent when pairing ("app#device").
func WithDeviceType(deviceType string) Option {
	return func(s *Session) {
		if dt := strings.TrimSpace(deviceType); dt != "" {
			s.deviceType = dt
		}
	}
}

// WithPolicy overrides the transport policy.
func WithPolicy(p Policy) Option {
	return func(s *Session) {
		s.policy = p.normalized()
	}
}

// WithHTTPClient replaces the client built from the policy. Tests use it to
// talk to httptest servers.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) {
		s.http = c
	}
}

// WithLogger enables debug logging of bridge round trips.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session for the bridge at host (host or host:port).
func NewSession(host string, opts ...Option) (*Session, error) {
	host, err := normalizeHost(host)
	if err != nil {
		return nil, err
	}
	s := &Session{
		host:       host,
		deviceType: defaultDeviceType,
		policy:     DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(discardHandler{})
	}
	if s.http == nil {
		s.http = s.policy.httpClient(s.logger)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s, nil
}

// Host returns the bridge host the session talks to.
func (s *Session) Host() string { return s.host }

// Username returns the paired username, or "" before pairing.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Paired reports whether the session holds a username.
func (s *Session) Paired() bool {
	return s.Username() != ""
}

// Request issues method against path and returns the normalized JSON value.
func (s *Session) Request(ctx context.Context, method, path string, body any) (any, error) {
	return s.do(ctx, Request{Method: method, Path: path, Body: body})
}

// AuthenticatedRequest is Request with path prefixed by /api/{username}. It
// fails with ErrNotPaired when no username is known.
func (s *Session) AuthenticatedRequest(ctx context.Context, method, path string, body any) (any, error) {
	username := s.Username()
	if username == "" {
		return nil, ErrNotPaired
	}
	return s.do(ctx, Request{Method: method, Path: authenticatedPath(username, path), Body: body})
}

// Go runs Request on its own goroutine and reports the result to done
// exactly once.
func (s *Session) Go(ctx context.Context, method, path string, body any, done func(any, error)) {
	complete := completeOnce(done)
	go func() {
		complete(s.Request(ctx, method, path, body))
	}()
}

// GoAuthenticated is the asynchronous form of AuthenticatedRequest.
func (s *Session) GoAuthenticated(ctx context.Context, method, path string, body any, done func(any, error)) {
	complete := completeOnce(done)
	go func() {
		complete(s.AuthenticatedRequest(ctx, method, path, body))
	}()
}

// Pair exchanges the device type for a username. The bridge answers
// [{"success":{"username":"..."}}]; anything else is a MalformedResponseError.
// A failed pairing leaves the session unpaired so it can be retried.
func (s *Session) Pair(ctx context.Context) error {
	if s.Paired() {
		return nil
	}
	body, display, err := s.roundTrip(ctx, Request{
		Method: http.MethodPost,
		Path:   "/api",
		Body:   map[string]string{"devicetype": s.deviceType},
	})
	if err != nil {
		return fmt.Errorf("pair: %w", err)
	}
	// Bridge errors such as 101 surface through Normalize; the username is
	// read from the raw body so the success envelope is required.
	if _, err := Normalize(body, display); err != nil {
		return fmt.Errorf("pair: %w", err)
	}
	username, perr := usernameFrom(body)
	if perr != nil {
		perr.URL = display
		return fmt.Errorf("pair: %w", perr)
	}

	s.mu.Lock()
	if s.username == "" {
		s.username = username
	}
	s.mu.Unlock()
	s.logger.Info("paired with bridge", slog.String("host", s.host))
	return nil
}

// Shutdown cancels every in-flight request; their results still arrive, as
// cancellation TransportErrors. The session is unusable afterwards.
func (s *Session) Shutdown() {
	s.cancel()
	s.http.CloseIdleConnections()
}

func (s *Session) do(ctx context.Context, r Request) (any, error) {
	body, display, err := s.roundTrip(ctx, r)
	if err != nil {
		return nil, err
	}
	return Normalize(body, display)
}

// roundTrip sends r and returns the body of a 2xx response together with the
// redacted URL used in errors.
func (s *Session) roundTrip(ctx context.Context, r Request) ([]byte, string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.ctx.Err(); err != nil {
		return nil, "", &TransportError{Message: "session is shut down", Err: err}
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	req, err := r.build(ctx, s.host, s.policy.BypassCache)
	if err != nil {
		return nil, "", err
	}
	display := redactURL(req.URL.String())

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, display, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, display, &HTTPStatusError{
			Code:   resp.StatusCode,
			Status: http.StatusText(resp.StatusCode),
			URL:    display,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, display, transportError(err)
	}
	return body, display, nil
}

// normalizeHost accepts "host", "host:port" or a full http URL and returns
// the host[:port] part.
func normalizeHost(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoHost
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse bridge host: %w", err)
	}
	if u.Scheme != "http" {
		return "", fmt.Errorf("bridge host %q: only http is supported", raw)
	}
	if u.Host == "" {
		return "", ErrNoHost
	}
	return u.Host, nil
}

func transportError(err error) *TransportError {
	msg := err.Error()
	switch {
	case errors.Is(err, context.Canceled):
		msg = "request cancelled"
	case IsTimeout(err):
		msg = "request timed out"
	}
	return &TransportError{Message: msg, Err: err}
}

func usernameFrom(body []byte) (string, *MalformedResponseError) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", &MalformedResponseError{Reason: "body is not valid JSON", Err: err}
	}
	items, ok := raw.([]any)
	if !ok {
		return "", &MalformedResponseError{Reason: "pairing response is not an array"}
	}
	if len(items) == 0 {
		return "", &MalformedResponseError{Reason: "pairing response is empty"}
	}
	obj, ok := items[0].(map[string]any)
	if !ok {
		return "", &MalformedResponseError{Reason: "pairing response element is not an object"}
	}
	success, ok := obj[keySuccess].(map[string]any)
	if !ok {
		return "", &MalformedResponseError{Reason: "pairing response has no success object"}
	}
	value, ok := success["username"]
	if !ok {
		return "", &MalformedResponseError{Reason: "pairing response has no username"}
	}
	username, ok := value.(string)
	if !ok || strings.TrimSpace(username) == "" {
		return "", &MalformedResponseError{Reason: "pairing username is not a string"}
	}
	return username, nil
}

// completeOnce guards a completion handler. A second call is a bug in the
// caller and panics instead of being dropped.
func completeOnce(done func(any, error)) func(any, error) {
	var called atomic.Bool
	return func(v any, err error) {
		if !called.CompareAndSwap(false, true) {
			panic("hue: completion handler called twice")
		}
		if done != nil {
			done(v, err)
		}
	}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

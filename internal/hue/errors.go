package hue

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors returned by the session before any network work happens.
var (
	ErrNoHost            = errors.New("hue: bridge host is not set")
	ErrNotPaired         = errors.New("hue: session is not paired (no username)")
	ErrUnsupportedMethod = errors.New("hue: unsupported request method")
)

// Bridge error types that callers commonly react to.
const (
	ErrorTypeUnauthorized         = 1
	ErrorTypeLinkButtonNotPressed = 101
)

// TransportError wraps failures of the underlying HTTP transport: DNS, connect,
// timeout and cancellation.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Message == "" && e.Err != nil {
		return "hue: transport: " + e.Err.Error()
	}
	return "hue: transport: " + e.Message
}

func (e *TransportError) Unwrap() error { return e.Err }

// Canceled reports whether the transport failure came from cancellation,
// typically Session.Shutdown.
func (e *TransportError) Canceled() bool {
	return errors.Is(e.Err, context.Canceled)
}

// HTTPStatusError is returned when the bridge answers outside 200–299. The body
// is not inspected.
type HTTPStatusError struct {
	Code   int
	Status string // human readable phrase for Code
	URL    string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("hue: %s returned status %d (%s)", e.URL, e.Code, e.Status)
}

// BridgeAPIError is the bridge's own in-body error object.
type BridgeAPIError struct {
	Code        int
	Description string
	Address     string
	URL         string
}

func (e *BridgeAPIError) Error() string {
	if e.Address != "" {
		return fmt.Sprintf("hue: bridge error %d at %s: %s", e.Code, e.Address, e.Description)
	}
	return fmt.Sprintf("hue: bridge error %d: %s", e.Code, e.Description)
}

// MalformedResponseError means the body was not JSON or did not have the shape
// the operation expects.
type MalformedResponseError struct {
	Reason string
	URL    string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	msg := "hue: malformed response"
	if e.URL != "" {
		msg += " from " + e.URL
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsLinkButtonNotPressed reports whether pairing failed because the bridge's
// link button has not been pressed yet.
func IsLinkButtonNotPressed(err error) bool {
	var apiErr *BridgeAPIError
	return errors.As(err, &apiErr) && apiErr.Code == ErrorTypeLinkButtonNotPressed
}

// IsUnauthorized reports whether the bridge rejected the username.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNotPaired) {
		return true
	}
	var apiErr *BridgeAPIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == ErrorTypeUnauthorized
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == 401 || statusErr.Code == 403
	}
	return false
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsCanceled reports whether err comes from a cancelled request.
func IsCanceled(err error) bool {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.Canceled()
	}
	return errors.Is(err, context.Canceled)
}

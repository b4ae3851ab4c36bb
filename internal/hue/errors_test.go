package hue

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestPredicates(t *testing.T) {
	linkErr := fmt.Errorf("pair: %w", &BridgeAPIError{Code: ErrorTypeLinkButtonNotPressed})
	unauthorized := &BridgeAPIError{Code: ErrorTypeUnauthorized}
	forbidden := &HTTPStatusError{Code: http.StatusForbidden}
	canceled := &TransportError{Message: "request cancelled", Err: context.Canceled}
	timeout := &TransportError{Message: "request timed out", Err: context.DeadlineExceeded}

	if !IsLinkButtonNotPressed(linkErr) {
		t.Fatalf("IsLinkButtonNotPressed(%v) = false, want true", linkErr)
	}
	if IsLinkButtonNotPressed(unauthorized) {
		t.Fatalf("IsLinkButtonNotPressed(%v) = true, want false", unauthorized)
	}
	for _, err := range []error{unauthorized, forbidden, ErrNotPaired} {
		if !IsUnauthorized(err) {
			t.Fatalf("IsUnauthorized(%v) = false, want true", err)
		}
	}
	if !IsCanceled(canceled) || IsCanceled(timeout) {
		t.Fatalf("IsCanceled mismatch: canceled=%v timeout=%v", IsCanceled(canceled), IsCanceled(timeout))
	}
	if !IsTimeout(timeout) {
		t.Fatalf("IsTimeout(%v) = false, want true", timeout)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&BridgeAPIError{Code: 101, Description: "link button not pressed"}, "hue: bridge error 101: link button not pressed"},
		{&BridgeAPIError{Code: 3, Description: "not available", Address: "/lights/9"}, "hue: bridge error 3 at /lights/9: not available"},
		{&HTTPStatusError{Code: 404, Status: "Not Found", URL: "http://h/api"}, "hue: http://h/api returned status 404 (Not Found)"},
		{&TransportError{Message: "request cancelled"}, "hue: transport: request cancelled"},
		{&MalformedResponseError{Reason: "pairing response is empty"}, "hue: malformed response: pairing response is empty"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Fatalf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestPolicy_HTTPClient(t *testing.T) {
	c := Policy{}.httpClient(nil)
	if c.Timeout != 5*time.Second {
		t.Fatalf("Timeout = %v, want 5s", c.Timeout)
	}
	if c.Jar != nil {
		t.Fatalf("Jar = %v, want nil", c.Jar)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport = %T, want *http.Transport", c.Transport)
	}
	if tr.MaxConnsPerHost != 1 || tr.MaxIdleConnsPerHost != 1 {
		t.Fatalf("conns per host = %d/%d, want 1/1", tr.MaxConnsPerHost, tr.MaxIdleConnsPerHost)
	}
	if tr.Proxy != nil {
		t.Fatal("Proxy is set, want direct connections")
	}
}

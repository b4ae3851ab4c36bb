// Package hue is a small client for the local v1 HTTP/JSON API of a Hue
// bridge.
//
// # Overview
//
// A Session owns everything needed to talk to one bridge: the host, the
// username obtained by pairing, and an HTTP client built once from a fixed
// transport Policy. All calls go through Session.Request (anonymous) or
// Session.AuthenticatedRequest (prefixed with /api/{username}), and every
// response body is passed through Normalize before it reaches the caller.
//
// # Pairing
//
// A session starts anonymous unless WithUsername supplies a stored username.
// Pair posts the device type to /api. The bridge refuses with error type 101
// until its link button has been pressed; IsLinkButtonNotPressed detects
// that case so callers can prompt the user and retry:
//
//	s, err := hue.NewSession("192.168.1.2", hue.WithDeviceType("lumen#laptop"))
//	if err != nil {
//		return err
//	}
//	if err := s.Pair(ctx); hue.IsLinkButtonNotPressed(err) {
//		fmt.Println("press the link button on the bridge")
//	}
//
// The username is written at most once and never cleared. It is not persisted.
//
// # Response Normalization
//
// The bridge answers with either a bare object or an array of result objects.
// Normalize folds both into a single (value, error):
//
//   - array: the first element with an "error" key fails the call; elements
//     with "success" are replaced by the wrapped value; others pass through
//   - object: "error" fails the call, "success" is unwrapped, anything else is
//     returned as is
//
// Error objects are decoded leniently. A missing type becomes 0 and a missing
// description becomes "no error description".
//
// # Errors
//
// Failures are typed so callers can use errors.As or the Is* helpers:
//
//   - TransportError: DNS, connect, timeout, cancellation (see Canceled)
//   - HTTPStatusError: status outside 200-299; the body is not inspected
//   - BridgeAPIError: the bridge's own error object
//   - MalformedResponseError: invalid JSON or an unexpected shape
//
// Usage errors are reported through ErrNoHost, ErrNotPaired and
// ErrUnsupportedMethod.
//
// # Transport
//
// Requests go straight to the bridge over plain http: no proxy, no cookies,
// cache bypass headers, a 5 second timeout and a single connection per host.
// Overlapping requests queue on that connection. With a logger attached each
// round trip is logged at debug level with a correlation id; the username
// segment of the URL is redacted.
//
// # Concurrency
//
// Session is safe for concurrent use. Go and GoAuthenticated run a call on a
// separate goroutine and invoke the completion exactly once. Shutdown cancels
// everything in flight; those calls complete with a TransportError whose
// Canceled method reports true.
package hue

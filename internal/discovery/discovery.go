// Package discovery finds a Hue bridge on the local network over mDNS.
//
// Only the first responder is used. Picking between several bridges is left
// to explicit configuration.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/hashicorp/mdns"
)

const (
	// Service is the mDNS service type bridges advertise.
	Service = "_hue._tcp"

	defaultTimeout = 3 * time.Second
)

// ErrNotFound is returned when no bridge answered before the timeout.
var ErrNotFound = errors.New("discovery: no bridge found")

// queryFunc runs an mDNS query; replaced in tests.
var queryFunc = mdns.Query

// Locate returns the IPv4 address of the first bridge that answers. The
// bridge's v1 API is served on port 80, so the advertised port is ignored.
func Locate(ctx context.Context, timeout time.Duration, logger *slog.Logger) (string, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	entries := make(chan *mdns.ServiceEntry, 10)
	errc := make(chan error, 1)
	go func() {
		params := &mdns.QueryParam{
			Service:             Service,
			Domain:              "local",
			Timeout:             timeout,
			Entries:             entries,
			DisableIPv6:         true,
			WantUnicastResponse: true,
		}
		errc <- queryFunc(params)
		close(entries)
	}()

	for {
		select {
		case <-ctx.Done():
			drain(entries)
			return "", ctx.Err()
		case entry, ok := <-entries:
			if !ok {
				if err := <-errc; err != nil {
					return "", fmt.Errorf("mdns query: %w", err)
				}
				return "", ErrNotFound
			}
			addr := addrOf(entry)
			if addr == "" {
				continue
			}
			logger.Info("bridge discovered", slog.String("name", entry.Name), slog.String("addr", addr))
			drain(entries)
			return addr, nil
		}
	}
}

func addrOf(entry *mdns.ServiceEntry) string {
	if entry == nil {
		return ""
	}
	ip := entry.AddrV4
	if ip == nil {
		ip = entry.Addr
	}
	if ip == nil || ip.To4() == nil || ip.Equal(net.IPv4zero) {
		return ""
	}
	return ip.String()
}

// drain keeps the query goroutine from blocking on a full channel after the
// caller has gone away.
func drain(entries <-chan *mdns.ServiceEntry) {
	go func() {
		for range entries {
		}
	}()
}

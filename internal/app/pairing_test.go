package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/five82/lumen/internal/hue"
)

type scriptedBridge struct {
	results []error
	calls   int
}

func (b *scriptedBridge) Pair(context.Context) error {
	b.calls++
	if len(b.results) == 0 {
		return nil
	}
	err := b.results[0]
	b.results = b.results[1:]
	return err
}

func (b *scriptedBridge) Lights(context.Context) ([]hue.Light, error) { return nil, nil }
func (b *scriptedBridge) SetBrightness(context.Context, string, int) error {
	return nil
}
func (b *scriptedBridge) Paired() bool { return false }
func (b *scriptedBridge) Shutdown()    {}

var linkNotPressed = &hue.BridgeAPIError{Code: hue.ErrorTypeLinkButtonNotPressed, Description: "link button not pressed"}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 80; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff || got <= 0 {
			t.Errorf("calculateBackoff(%d, %v) = %v, want within (0, %v]", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestPairUntilReady_RetriesUntilPressed(t *testing.T) {
	bridge := &scriptedBridge{results: []error{linkNotPressed, linkNotPressed, nil}}

	var waits []time.Duration
	err := PairUntilReady(context.Background(), bridge, time.Millisecond, quietLogger(), func(attempt int, delay time.Duration) {
		if attempt != len(waits)+1 {
			t.Errorf("attempt = %d, want %d", attempt, len(waits)+1)
		}
		waits = append(waits, delay)
	})
	if err != nil {
		t.Fatalf("PairUntilReady() error = %v", err)
	}
	if bridge.calls != 3 {
		t.Fatalf("Pair calls = %d, want 3", bridge.calls)
	}
	if len(waits) != 2 || waits[0] != time.Millisecond || waits[1] != 2*time.Millisecond {
		t.Fatalf("waits = %v, want [1ms 2ms]", waits)
	}
}

func TestPairUntilReady_StopsOnOtherErrors(t *testing.T) {
	boom := &hue.HTTPStatusError{Code: 500, Status: "Internal Server Error"}
	bridge := &scriptedBridge{results: []error{boom}}

	err := PairUntilReady(context.Background(), bridge, time.Millisecond, quietLogger(), nil)
	var statusErr *hue.HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("PairUntilReady() error = %v, want HTTPStatusError", err)
	}
	if bridge.calls != 1 {
		t.Fatalf("Pair calls = %d, want 1", bridge.calls)
	}
}

func TestPairUntilReady_ContextCancelled(t *testing.T) {
	bridge := &scriptedBridge{results: []error{linkNotPressed, linkNotPressed, linkNotPressed}}
	ctx, cancel := context.WithCancel(context.Background())

	err := PairUntilReady(ctx, bridge, time.Hour, quietLogger(), func(int, time.Duration) { cancel() })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("PairUntilReady() error = %v, want context.Canceled", err)
	}
	if bridge.calls != 1 {
		t.Fatalf("Pair calls = %d, want 1", bridge.calls)
	}
}

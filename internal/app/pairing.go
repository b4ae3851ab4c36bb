package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/lumen/internal/hue"
)

const (
	defaultPairInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// PairUntilReady keeps asking the bridge for a username until the link
// button is pressed or ctx ends. Timeouts and an unpressed button are retried
// with exponential backoff; any other error stops the loop. wait, if non-nil,
// is called before each pause.
func PairUntilReady(ctx context.Context, bridge hue.Bridge, interval time.Duration, logger *slog.Logger, wait func(attempt int, delay time.Duration)) error {
	if interval <= 0 {
		interval = defaultPairInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	failures := 0
	for {
		err := bridge.Pair(ctx)
		if err == nil {
			return nil
		}
		if !retryablePairError(err) {
			return err
		}
		if ctx.Err() != nil {
			return fmt.Errorf("pair: %w", ctx.Err())
		}

		delay := calculateBackoff(failures, interval)
		failures++
		logger.Debug("pairing not ready",
			slog.Int("attempt", failures),
			slog.Duration("retry_in", delay),
			slog.String("error", err.Error()),
		)
		if wait != nil {
			wait(failures, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("pair: %w", ctx.Err())
		case <-timer.C:
		}
	}
}

func retryablePairError(err error) bool {
	return hue.IsLinkButtonNotPressed(err) || hue.IsTimeout(err)
}

// calculateBackoff doubles base for each consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

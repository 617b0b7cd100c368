// Package readiness provides Kubernetes resource readiness polling utilities.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeoutExceeded is returned when a readiness deadline is exceeded.
var ErrTimeoutExceeded = errors.New("timeout exceeded")

// pollInterval is the delay between readiness probes.
const pollInterval = 2 * time.Second

// PollForReadiness calls probe until it reports ready, the deadline passes,
// or the context is cancelled. A probe error aborts polling immediately;
// probes that want to keep polling on transient failures should return
// (false, nil).
func PollForReadiness(
	ctx context.Context,
	deadline time.Duration,
	probe func(ctx context.Context) (bool, error),
) error {
	pollCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		ready, err := probe(pollCtx)
		if err != nil {
			return fmt.Errorf("readiness probe: %w", err)
		}

		if ready {
			return nil
		}

		select {
		case <-pollCtx.Done():
			if errors.Is(pollCtx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w after %s", ErrTimeoutExceeded, deadline)
			}

			return fmt.Errorf("readiness polling cancelled: %w", pollCtx.Err())
		case <-ticker.C:
		}
	}
}

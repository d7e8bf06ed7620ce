// Package chansend provides the single cooperative-backpressure primitive
// shared by every pipeline stage: a non-blocking send that retries on a
// short sleep instead of blocking indefinitely or dropping the value. This
// generalizes the teacher framework's non-blocking select-with-default
// heartbeat pattern (stream/sse.go) from "best-effort delivery, drop on
// full" to "best-effort delivery, retry on full" — the pipeline's
// correctness depends on never losing an event.
package chansend

import (
	"context"
	"time"

	"github.com/recera/rodata/internal/obs"
)

// RetryDelay is how long Send waits before re-attempting a full channel.
const RetryDelay = 50 * time.Millisecond

// Send pushes v onto ch. It tries a non-blocking send first; if ch is full
// it sleeps for RetryDelay and tries again, repeating until the send
// succeeds or ctx is cancelled. ctx cancellation is this pipeline's
// realization of "the receiver went away" — Go channels have no built-in
// signal for a discarded receiver, unlike a dropped mpsc receiver, so every
// stage threads a context down and checks it at each retry.
func Send[T any](ctx context.Context, ch chan<- T, v T) error {
	for {
		select {
		case ch <- v:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryDelay):
			obs.RecordChannelRetry(ctx)
		}
	}
}

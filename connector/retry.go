package connector

import (
	"context"
	"time"
)

// retryConnect calls connectFn until it succeeds or MaxRetries retries are used,
// backing off between attempts.
func retryConnect[T any](ctx context.Context, opts RetryConfig, connectFn func(context.Context) (T, error)) (T, error) {
	var zero T
	delay := opts.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}
	backoff := opts.Backoff
	if backoff < 1 {
		backoff = 2
	}

	var err error
	for i := 0; i <= opts.MaxRetries; i++ {
		var conn T
		conn, err = connectFn(ctx)
		if err == nil {
			return conn, nil
		}
		if i == opts.MaxRetries {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * backoff)
		if opts.MaxDelay > 0 && delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
	return zero, err
}

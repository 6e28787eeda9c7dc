package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
)

// Policy bounds the exponential backoff used while waiting for a dependency,
// such as the catalog database, to become reachable.
type Policy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialInterval
	bo.MaxInterval = p.MaxInterval
	bo.Multiplier = p.Multiplier
	bo.MaxElapsedTime = 0
	bo.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(bo, p.MaxRetries), ctx)
}

// Permanent marks err so that Do returns it without further attempts.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs operation until it succeeds, the retries are exhausted or ctx is
// done.
func Do(ctx context.Context, log logger.Logger, name string, operation func() error, p Policy) error {
	attempts := 0
	counted := func() error {
		attempts++
		return operation()
	}

	notify := func(err error, next time.Duration) {
		log.Warn("Operation failed, retrying",
			"operation", name,
			"attempt", attempts,
			"error", err,
			"next_attempt_in", next.Round(time.Millisecond).String(),
		)
	}

	err := backoff.RetryNotify(counted, p.backOff(ctx), notify)
	if err == nil && attempts > 1 {
		log.Info("Operation recovered", "operation", name, "attempts", attempts)
	}
	return err
}

package retry

import (
	"context"

	"github.com/catatduit/go-catatduit/internal/config"
	"github.com/catatduit/go-catatduit/internal/logging"

	"github.com/cenkalti/backoff/v4"
)

const DefaultMaxRetries uint64 = 3

type Retryer interface {
	Retry(ctx context.Context, operation, exhaustedCallback func() error) error
	StopRetryWithErr(err error) error
}

type exponentialBackoff struct {
	ebCfg *config.ExponentialBackOffConfig
}

// NewExponentialBackOff inits a Retryer backed by exponential backoff.
func NewExponentialBackOff(ebCfg *config.ExponentialBackOffConfig) Retryer {
	if ebCfg.MaxBackoffTime < 0 {
		ebCfg.MaxBackoffTime = backoff.DefaultMaxElapsedTime
	}

	if ebCfg.BackoffMultiplier <= 0 {
		ebCfg.BackoffMultiplier = backoff.DefaultMultiplier
	}

	if ebCfg.MaxRetries <= 0 {
		ebCfg.MaxRetries = DefaultMaxRetries
	}

	return &exponentialBackoff{ebCfg: ebCfg}
}

// Retry keeps calling operation until it succeeds or retries are exhausted;
// exhaustedCallback then runs once and its error is returned.
func (r *exponentialBackoff) Retry(ctx context.Context, operation, exhaustedCallback func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = r.ebCfg.MaxBackoffTime
	eb.Multiplier = r.ebCfg.BackoffMultiplier

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(eb, r.ebCfg.MaxRetries), ctx))
	if err != nil {
		logging.Debugf(ctx, "retries exhausted with err: %v", err)
		if err := exhaustedCallback(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// StopRetryWithErr stops retrying and surfaces the error. Call it inside the
// operation func for permanent failures.
func (r *exponentialBackoff) StopRetryWithErr(err error) error {
	return backoff.Permanent(err)
}

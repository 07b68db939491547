package backend

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// WaitReady pings the backend with exponential backoff for up to maxWait.
// It only informs the operator; form submissions never retry.
func WaitReady(ctx context.Context, logger *zap.Logger, client Client, maxWait time.Duration) error {
	if maxWait <= 0 {
		return nil
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := client.Ping(ctx)
		if err != nil {
			logger.Debug("backend not ready", zap.Int("attempt", attempt), zap.Error(err))
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = maxWait
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return err
	}
	logger.Info("backend reachable", zap.Int("attempts", attempt))
	return nil
}

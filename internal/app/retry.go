package app

import (
	"context"
	"fmt"
	"time"

	"admissions-workers/internal/common/logger"
)

// Retry runs operation up to attempts times, doubling the delay after each failure.
func Retry(ctx context.Context, log logger.Logger, name string, attempts int, delay time.Duration, operation func(context.Context) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = operation(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		log.Warn(fmt.Sprintf("%s failed, retrying", name), map[string]interface{}{
			"error":       err.Error(),
			"attempt":     i + 1,
			"maxAttempts": attempts,
			"nextRetryIn": delay.String(),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", name, ctx.Err())
		}
		delay *= 2
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, err)
}

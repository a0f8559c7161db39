package aura

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// WaitForInstanceRunning polls the instance until it reaches RUNNING,
// checking every PollInterval and giving up after WaitTimeout of elapsed
// time. It returns true when the instance is RUNNING, and false when the
// instance is gone, is DELETING, or the timeout is reached. A timeout is
// not an error; cancellation of ctx is.
func (c *Client) WaitForInstanceRunning(ctx context.Context, instanceID string) (bool, error) {
	start := time.Now()
	for {
		instance, err := c.GetInstance(ctx, instanceID)
		if err != nil {
			return false, err
		}
		if instance == nil || instance.Status == StatusDeleting {
			return false, nil
		}
		if instance.Status == StatusRunning {
			return true, nil
		}

		if time.Since(start) >= c.WaitTimeout {
			return false, nil
		}

		c.logger().Debug("instance not running yet",
			zap.String("instance_id", instanceID),
			zap.String("status", instance.Status),
			zap.Duration("retry_in", c.PollInterval))

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(c.PollInterval):
		}
	}
}

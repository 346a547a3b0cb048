package job

import (
	"log/slog"
	"time"
)

const DefaultInterval = time.Second

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithInterval sets the delay between two status queries.
func WithInterval(interval time.Duration) Option {
	return func(c *Controller) {
		c.interval = interval
	}
}

// WithMaxWait bounds the total time spent polling. Zero leaves the
// bound to the context deadline.
func WithMaxWait(wait time.Duration) Option {
	return func(c *Controller) {
		c.maxWait = wait
	}
}

func WithPageSize(size int) Option {
	return func(c *Controller) {
		c.pageSize = size
	}
}

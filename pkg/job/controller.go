package job

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/adrianliechti/docscan/pkg/detector"
	"github.com/adrianliechti/docscan/pkg/sink"
	"github.com/adrianliechti/docscan/pkg/trigger"
)

type Controller struct {
	detector detector.Provider
	logger   *slog.Logger

	interval time.Duration
	maxWait  time.Duration
	pageSize int
}

func New(d detector.Provider, options ...Option) (*Controller, error) {
	if d == nil {
		return nil, errors.New("missing detector")
	}

	c := &Controller{
		detector: d,
		logger:   slog.Default(),

		interval: DefaultInterval,
	}

	for _, option := range options {
		option(c)
	}

	if c.interval <= 0 {
		return nil, errors.New("invalid poll interval")
	}

	if c.maxWait < 0 {
		return nil, errors.New("invalid max wait")
	}

	return c, nil
}

// Run submits a job for the object, waits for it to finish and emits every
// detected block. A job the service reports as failed is logged and
// returned without error.
func (c *Controller) Run(ctx context.Context, obj trigger.Object, emitter sink.Emitter) (*Job, error) {
	job, err := c.Submit(ctx, obj)

	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "text detection submitted", "job", job.ID, "bucket", obj.Bucket, "key", obj.Key)

	if err := c.Wait(ctx, job); err != nil {
		return job, err
	}

	if !job.Status.Succeeded() {
		c.logger.ErrorContext(ctx, "text detection failed: "+job.StatusMessage,
			"job", job.ID,
			"status", job.Status,
			"bucket", obj.Bucket,
			"key", obj.Key,
		)

		return job, nil
	}

	for block, err := range c.Drain(ctx, job) {
		if err != nil {
			return job, err
		}

		emitter.Emit(ctx, block)
	}

	c.logger.InfoContext(ctx, "text detection completed",
		"job", job.ID,
		"polls", job.Polls,
		"pages", job.Pages,
		"blocks", job.Blocks,
		"duration", job.Completed.Sub(job.Submitted),
	)

	return job, nil
}

func (c *Controller) Submit(ctx context.Context, obj trigger.Object) (*Job, error) {
	id, err := c.detector.Start(ctx, detector.Document{
		Bucket:  obj.Bucket,
		Key:     obj.Key,
		Version: obj.Version,
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}

	return &Job{
		ID:     id,
		Object: obj,

		Status:    detector.StatusSubmitted,
		Submitted: time.Now(),
	}, nil
}

// Poll queries the current status once and records it on the job.
func (c *Controller) Poll(ctx context.Context, job *Job) (detector.Status, error) {
	if job.Status.Terminal() {
		return job.Status, nil
	}

	result, err := c.detector.Get(ctx, job.ID, &detector.GetOptions{
		MaxResults: 1,
	})

	if err != nil {
		return job.Status, err
	}

	job.Polls++

	job.Status = result.Status
	job.StatusMessage = result.StatusMessage

	if job.Status.Terminal() {
		job.Completed = time.Now()
	}

	return job.Status, nil
}

// Wait polls until the job reaches a terminal state. Each round is a status
// query, a terminal check and then the fixed delay.
func (c *Controller) Wait(ctx context.Context, job *Job) error {
	var deadline <-chan time.Time

	if c.maxWait > 0 {
		t := time.NewTimer(c.maxWait)
		defer t.Stop()

		deadline = t.C
	}

	for {
		if err := ctx.Err(); err != nil {
			return timeoutError(ctx, job, err)
		}

		status, err := c.Poll(ctx, job)

		if err != nil {
			return timeoutError(ctx, job, err)
		}

		if status.Terminal() {
			return nil
		}

		c.logger.DebugContext(ctx, "text detection in progress", "job", job.ID, "polls", job.Polls)

		timer := time.NewTimer(c.interval)

		select {
		case <-ctx.Done():
			timer.Stop()
			return timeoutError(ctx, job, ctx.Err())

		case <-deadline:
			timer.Stop()
			return fmt.Errorf("%w: %s after %s", ErrTimeout, job.ID, c.maxWait)

		case <-timer.C:
		}
	}
}

// timeoutError reports err as ErrTimeout when the deadline caused it.
func timeoutError(ctx context.Context, job *Job, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", ErrTimeout, job.ID, err)
	}

	return err
}

// FetchPage returns the result page addressed by token. An empty token
// addresses the first page.
func (c *Controller) FetchPage(ctx context.Context, job *Job, token string) (*Page, error) {
	if !job.Status.Succeeded() {
		return nil, ErrNotSucceeded
	}

	result, err := c.detector.Get(ctx, job.ID, &detector.GetOptions{
		NextToken:  token,
		MaxResults: c.pageSize,
	})

	if err != nil {
		return nil, err
	}

	job.Pages++
	job.Blocks += len(result.Blocks)

	return &Page{
		Blocks:    result.Blocks,
		NextToken: result.NextToken,
	}, nil
}

// Drain yields the blocks of all result pages in service order. The
// sequence can be ranged over once.
func (c *Controller) Drain(ctx context.Context, job *Job) iter.Seq2[detector.Block, error] {
	return func(yield func(detector.Block, error) bool) {
		if job.drained {
			yield(detector.Block{}, ErrDrained)
			return
		}

		job.drained = true

		var token string

		for {
			page, err := c.FetchPage(ctx, job, token)

			if err != nil {
				yield(detector.Block{}, err)
				return
			}

			for _, block := range page.Blocks {
				if !yield(block, nil) {
					return
				}
			}

			if page.NextToken == "" {
				return
			}

			token = page.NextToken
		}
	}
}

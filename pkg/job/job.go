package job

import (
	"errors"
	"time"

	"github.com/adrianliechti/docscan/pkg/detector"
	"github.com/adrianliechti/docscan/pkg/trigger"
)

var (
	ErrSubmit       = errors.New("job submission failed")
	ErrTimeout      = errors.New("job did not complete in time")
	ErrNotSucceeded = errors.New("job has not succeeded")
	ErrDrained      = errors.New("job results already drained")
)

// Job tracks a single text detection job. It is owned by one invocation.
type Job struct {
	ID     string
	Object trigger.Object

	Status        detector.Status
	StatusMessage string

	Submitted time.Time
	Completed time.Time

	Polls  int
	Pages  int
	Blocks int

	drained bool
}

type Page struct {
	Blocks    []detector.Block
	NextToken string
}

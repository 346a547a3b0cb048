package processor

import (
	"fmt"
)

// ProcessError is returned for every failure that aborts an invocation.
type ProcessError struct {
	Op     string
	Bucket string
	Key    string

	Err error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s s3://%s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

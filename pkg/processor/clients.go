package processor

import (
	"context"
	"errors"
	"io"

	"github.com/adrianliechti/docscan/pkg/detector"
	"github.com/adrianliechti/docscan/pkg/storage"
)

// Clients are the service handles of one invocation.
type Clients struct {
	Storage  storage.Provider
	Detector detector.Provider
}

// Factory acquires fresh clients for an invocation.
type Factory func(ctx context.Context) (*Clients, error)

func (c *Clients) Close() error {
	var errs []error

	for _, p := range []any{c.Detector, c.Storage} {
		if closer, ok := p.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	}

	return errors.Join(errs...)
}

package limiter

import (
	"context"
	"fmt"

	"github.com/adrianliechti/docscan/pkg/detector"

	"golang.org/x/time/rate"
)

type Detector interface {
	Limiter
	detector.Provider
}

type limitedDetector struct {
	limiter  *rate.Limiter
	provider detector.Provider
}

// NewDetector paces status and result queries. Submissions pass through.
func NewDetector(l *rate.Limiter, p detector.Provider) Detector {
	return &limitedDetector{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedDetector) limiterSetup() {
}

func (p *limitedDetector) Start(ctx context.Context, input detector.Document) (string, error) {
	return p.provider.Start(ctx, input)
}

func (p *limitedDetector) Get(ctx context.Context, id string, options *detector.GetOptions) (*detector.Result, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, waitError(ctx, err)
		}
	}

	return p.provider.Get(ctx, id, options)
}

func (p *limitedDetector) Close() error {
	return closeProvider(p.provider)
}

// waitError marks a wait refused because the next token arrives after the
// deadline as a deadline error.
func waitError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return err
	}

	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}

	return err
}

package sink

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adrianliechti/docscan/pkg/detector"
)

type Emitter interface {
	Emit(ctx context.Context, block detector.Block)
}

var _ Emitter = &Logger{}

// Logger writes one record per block to a slog logger.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}

	return &Logger{
		logger: logger,
	}
}

func (l *Logger) Emit(ctx context.Context, block detector.Block) {
	attrs := []any{
		"type", block.Type,
		"text", block.Text,
		"page", block.Page,
	}

	if block.Confidence > 0 {
		attrs = append(attrs, "confidence", block.Confidence)
	}

	l.logger.InfoContext(ctx, string(block.Type)+": "+block.Text, attrs...)
}

var _ Emitter = &Counter{}

// Counter tallies blocks per type before handing them on.
type Counter struct {
	emitter Emitter

	mu     sync.Mutex
	counts map[detector.BlockType]int
}

func NewCounter(emitter Emitter) *Counter {
	return &Counter{
		emitter: emitter,
		counts:  make(map[detector.BlockType]int),
	}
}

func (c *Counter) Emit(ctx context.Context, block detector.Block) {
	c.mu.Lock()
	c.counts[block.Type]++
	c.mu.Unlock()

	c.emitter.Emit(ctx, block)
}

func (c *Counter) Count(t detector.BlockType) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counts[t]
}

func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int

	for _, n := range c.counts {
		total += n
	}

	return total
}

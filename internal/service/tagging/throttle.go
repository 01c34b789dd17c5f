package tagging

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out model calls within one batch.
type Pacer interface {
	Wait(ctx context.Context) error
}

// PacerFactory builds a fresh pacer per batch so batches never share a budget.
type PacerFactory func() Pacer

type ratePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer allows one call per interval. The initial token is spent at
// construction, so the k-th Wait returns no earlier than k intervals later.
func NewRatePacer(interval time.Duration) Pacer {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	limiter.Allow()
	return &ratePacer{limiter: limiter}
}

func (p *ratePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type noopPacer struct{}

func (noopPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}

func NoopPacer() Pacer {
	return noopPacer{}
}

// NewPacerFactory returns rate pacers, or no-op pacers for a non-positive interval.
func NewPacerFactory(interval time.Duration) PacerFactory {
	if interval <= 0 {
		return NoopPacer
	}
	return func() Pacer {
		return NewRatePacer(interval)
	}
}

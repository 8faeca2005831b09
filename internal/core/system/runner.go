package system

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner calls System.Update at a fixed tick rate until the System signals
// stop, the frame limit is reached, or the context is cancelled.
type Runner struct {
	sys       *System
	tickRate  time.Duration
	maxFrames uint64
	log       *zap.Logger
}

// NewRunner builds a Runner. maxFrames of zero means no limit.
func NewRunner(sys *System, tickRate time.Duration, maxFrames uint64, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		sys:       sys,
		tickRate:  tickRate,
		maxFrames: maxFrames,
		log:       log,
	}
}

// Run blocks until the loop ends. It returns ctx.Err() on cancellation and
// nil otherwise.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("frame loop cancelled", zap.Uint64("frames", r.sys.Frame()))
			return ctx.Err()
		case <-ticker.C:
			if !r.sys.Update() {
				r.log.Info("frame loop stopped", zap.Uint64("frames", r.sys.Frame()))
				return nil
			}
			if r.maxFrames > 0 && r.sys.Frame() >= r.maxFrames {
				r.log.Info("frame limit reached", zap.Uint64("frames", r.sys.Frame()))
				return nil
			}
		}
	}
}

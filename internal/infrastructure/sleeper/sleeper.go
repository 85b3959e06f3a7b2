// Package sleeper implements latency.Delayer with wall-clock timers.
package sleeper

import (
	"context"
	"time"

	"github.com/hsbu/gopay-api-demo/internal/domain/latency"
)

type Delayer struct {
	durations map[latency.Stage]time.Duration
}

func New(durations map[latency.Stage]time.Duration) *Delayer {
	d := make(map[latency.Stage]time.Duration, len(durations))
	for stage, dur := range durations {
		d[stage] = dur
	}
	return &Delayer{durations: d}
}

// None returns a Delayer that never waits.
func None() *Delayer {
	return &Delayer{}
}

func (d *Delayer) Delay(ctx context.Context, stage latency.Stage) error {
	dur := d.durations[stage]
	if dur <= 0 {
		return nil
	}

	timer := time.NewTimer(dur)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

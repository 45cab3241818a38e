package worker

import (
	"context"
	"time"

	logx "dashboard/pkg/logger"
)

// Sweeper drops workspaces idle for longer than idle and returns how many.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// Purger removes expired sessions and returns how many.
type Purger interface {
	Purge() int
}

// SweepWorker periodically drops the table state of sessions whose pages
// were left, and expired sessions of stores that need purging.
type SweepWorker struct {
	spaces   Sweeper
	sessions Purger
	idle     time.Duration
	interval time.Duration
}

func NewSweepWorker(spaces Sweeper, idle, interval time.Duration) *SweepWorker {
	return &SweepWorker{
		spaces:   spaces,
		idle:     idle,
		interval: interval,
	}
}

// PurgeSessions makes every tick also purge expired sessions from p.
func (w *SweepWorker) PurgeSessions(p Purger) *SweepWorker {
	w.sessions = p
	return w
}

// Start blocks until ctx is done.
func (w *SweepWorker) Start(ctx context.Context) {
	if w.interval <= 0 || (w.idle <= 0 && w.sessions == nil) {
		logx.Info().Msg("workspace sweep disabled")
		return
	}

	logx.Info().Dur("interval", w.interval).Dur("idle", w.idle).Msg("starting workspace sweep worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logx.Info().Msg("workspace sweep worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SweepWorker) sweep() {
	if w.idle > 0 {
		if n := w.spaces.Sweep(w.idle); n > 0 {
			logx.Debug().Int("dropped", n).Msg("idle workspaces dropped")
		}
	}
	if w.sessions != nil {
		if n := w.sessions.Purge(); n > 0 {
			logx.Debug().Int("purged", n).Msg("expired sessions purged")
		}
	}
}

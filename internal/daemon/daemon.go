// Package daemon runs the poll loop that keeps the display layout
// reconciled with the declared setups.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/monset/monset/internal/monitor"
	"github.com/monset/monset/internal/setup"
)

// Loop polls the display on a fixed interval, discovering the connected
// monitors and reconciling them against the setup library. Failures inside
// a pass are logged and retried next tick; a dead connection is fatal and
// ends the loop.
type Loop struct {
	Display  monitor.Display
	Setups   []setup.Setup
	Interval time.Duration
	Logger   *slog.Logger

	// Ping distinguishes a dead connection from an ordinary failure. When
	// nil every pass error is treated as transient.
	Ping func() error
}

// Run polls until ctx is cancelled or the connection dies. The first pass
// happens immediately; subsequent passes every Interval.
func (l *Loop) Run(ctx context.Context) error {
	l.Logger.Info("poll loop started", "interval", l.Interval, "setups", len(l.Setups))

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	for {
		if err := l.tick(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			l.Logger.Info("poll loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// tick performs one discovery+reconcile pass. A nil return means the loop
// should continue; a non-nil return is fatal.
func (l *Loop) tick() error {
	monitors, err := monitor.Discover(l.Display)
	if err != nil {
		return l.transient("discovery failed", err)
	}

	changed, err := monitor.Reconcile(l.Display, monitors, l.Setups)
	if err != nil {
		return l.transient("reconcile failed", err)
	}

	if changed {
		l.Logger.Info("layout applied", "monitors", len(monitors))
	} else {
		l.Logger.Debug("no change", "monitors", len(monitors))
	}
	return nil
}

// transient logs err and returns nil so the loop retries next tick, unless
// the connection itself is dead, in which case the ping error is returned
// as fatal. Geometry possibly left half-applied by a failed pass is
// self-corrected by the next successful one.
func (l *Loop) transient(msg string, err error) error {
	if l.Ping != nil {
		if perr := l.Ping(); perr != nil {
			return fmt.Errorf("%s: %w", msg, perr)
		}
	}
	l.Logger.Error(msg, "error", err)
	return nil
}

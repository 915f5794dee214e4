package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"
	"github.com/charmbracelet/log"
)

// DefaultSchedule sweeps once an hour
const DefaultSchedule = "@hourly"

// ValidateSchedule checks a cron expression
func ValidateSchedule(expr string) error {
	g := gronx.New()
	if !g.IsValid(expr) {
		return fmt.Errorf("invalid cron expression: %q", expr)
	}
	return nil
}

// NextRun returns the first tick of expr after ref
func NextRun(expr string, ref time.Time) (time.Time, error) {
	if err := ValidateSchedule(expr); err != nil {
		return time.Time{}, err
	}
	return gronx.NextTickAfter(expr, ref, false)
}

// Schedule runs sweeper on every tick of the cron expression until ctx is
// done. The callback, when set, receives each report.
func Schedule(ctx context.Context, expr string, sweeper *Sweeper, onSweep func(Report)) error {
	if err := ValidateSchedule(expr); err != nil {
		return err
	}

	for {
		next, err := NextRun(expr, time.Now())
		if err != nil {
			return fmt.Errorf("failed to compute next sweep: %w", err)
		}
		log.Debug("next sweep scheduled", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		report, err := sweeper.Sweep()
		if err != nil {
			log.Error("scheduled sweep failed", "dir", sweeper.Dir, "err", err)
			continue
		}
		log.Info("scheduled sweep finished", "dir", sweeper.Dir, "summary", report.Summary())
		if onSweep != nil {
			onSweep(report)
		}
	}
}

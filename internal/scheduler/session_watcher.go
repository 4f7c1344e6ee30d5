package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/robfig/cron/v3"
)

// ErrScheduleNeverFires is returned for a schedule with no future
// activation, such as February 30th.
var ErrScheduleNeverFires = errors.New("schedule never fires")

// sessionChecker is the subset of SessionUsecase the watcher needs.
type sessionChecker interface {
	CheckValidity(ctx context.Context) error
	Logout(ctx context.Context)
}

// SessionWatcher re-checks the stored credential on a cron schedule and
// logs out as soon as the server stops accepting it.
type SessionWatcher struct {
	session  sessionChecker
	schedule cron.Schedule
	logger   *slog.Logger
}

// ParseSchedule accepts standard five-field cron expressions and
// descriptors such as "@every 5m".
func ParseSchedule(expr string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse session check schedule %q: %w", expr, err)
	}
	if sched.Next(time.Now()).IsZero() {
		return nil, fmt.Errorf("session check schedule %q: %w", expr, ErrScheduleNeverFires)
	}
	return sched, nil
}

func NewSessionWatcher(session sessionChecker, schedule cron.Schedule, logger *slog.Logger) *SessionWatcher {
	return &SessionWatcher{
		session:  session,
		schedule: schedule,
		logger:   logger.With("component", "session_watcher"),
	}
}

// Start checks once immediately and then on every scheduled tick. It
// returns nil when ctx is cancelled, the check error after logging out
// because the session ended, or ErrScheduleNeverFires.
func (w *SessionWatcher) Start(ctx context.Context) error {
	w.logger.Info("session watcher started")

	if ended, err := w.check(ctx); ended {
		return err
	}

	for {
		next := w.schedule.Next(time.Now())
		if next.IsZero() {
			return ErrScheduleNeverFires
		}
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Info("session watcher shut down")
			return nil
		case <-timer.C:
			if ended, err := w.check(ctx); ended {
				return err
			}
		}
	}
}

// check reports whether the session is over.
func (w *SessionWatcher) check(ctx context.Context) (bool, error) {
	err := w.session.CheckValidity(ctx)
	switch {
	case err == nil:
		w.logger.Debug("session still valid")
		return false, nil
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNoCredential):
		w.logger.Info("session ended, logging out", "error", err)
		w.session.Logout(ctx)
		return true, err
	case ctx.Err() != nil:
		return false, nil
	default:
		w.logger.Warn("session check failed, will retry at next tick", "error", err)
		return false, nil
	}
}

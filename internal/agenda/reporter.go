package agenda

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/robfig/cron/v3"

	"monthcal/internal/calendar"
	appLog "monthcal/internal/log"
)

// Reporter owns a calendar and periodically writes its agenda to w.
//
// All access to the calendar goes through the reporter's lock, so callers
// may keep mutating it with Do while Run is reporting in the background.
type Reporter struct {
	mu  sync.Mutex
	cal *calendar.MonthCalendar
	w   io.Writer

	sched *cron.Cron
}

// NewReporter validates spec (standard 5-field cron syntax) and schedules a
// report on every tick. Nothing runs until Run is called.
func NewReporter(cal *calendar.MonthCalendar, w io.Writer, spec string) (*Reporter, error) {
	if cal == nil {
		return nil, errors.New("agenda: calendar is nil")
	}

	r := &Reporter{
		cal:   cal,
		w:     w,
		sched: cron.New(),
	}
	if _, err := r.sched.AddFunc(spec, r.tick); err != nil {
		return nil, fmt.Errorf("agenda: schedule %q: %w", spec, err)
	}
	return r, nil
}

// Do runs fn with exclusive access to the calendar.
func (r *Reporter) Do(fn func(*calendar.MonthCalendar) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.cal)
}

// Report writes the current agenda once.
func (r *Reporter) Report() error {
	r.mu.Lock()
	text := Render(r.cal)
	r.mu.Unlock()

	_, err := io.WriteString(r.w, text)
	return err
}

func (r *Reporter) tick() {
	if err := r.Report(); err != nil {
		appLog.Error("agenda: report failed", err)
	}
}

// Run reports on schedule until ctx is cancelled, then waits for a running
// report to finish.
func (r *Reporter) Run(ctx context.Context) {
	appLog.Info("agenda: scheduler started", "entries", len(r.sched.Entries()))
	r.sched.Start()

	<-ctx.Done()

	<-r.sched.Stop().Done()
	appLog.Info("agenda: scheduler stopped")
}

// Render formats the month header, the scheduled events and, if any, the
// completed events of cal.
func Render(cal *calendar.MonthCalendar) string {
	header := fmt.Sprintf("%s %d", cal.MonthName(), cal.Year())

	scheduled := cal.String()
	if scheduled == "" {
		scheduled = "No events scheduled."
	}

	out := header + "\n" + scheduled + "\n"
	if completed := cal.CompletedEventsString(); completed != "" {
		out += "Completed:\n" + completed + "\n"
	}
	return out
}

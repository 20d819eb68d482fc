package ics

import (
	"time"

	"monthcal/internal/calendar"
	appLog "monthcal/internal/log"
)

// ImportResult counts what happened to each parsed event.
type ImportResult struct {
	Added      int
	Rejected   int
	Recurring  int
	OutOfRange int
}

// Import schedules every single (non-recurring) event that starts inside the
// calendar's month. All-day events are scheduled at 00:00. Start times are
// taken as parsed; no timezone conversion is applied.
func Import(cal *calendar.MonthCalendar, events []ParsedEvent) ImportResult {
	var res ImportResult

	for _, ev := range events {
		if ev.RawRRule != "" {
			res.Recurring++
			appLog.Debug("ics import: recurring event skipped", "uid", ev.UID)
			continue
		}
		if !inMonth(ev.Start, cal.Year(), time.Month(cal.MonthNumber())) {
			res.OutOfRange++
			continue
		}

		hour, minute := ev.Start.Hour(), ev.Start.Minute()
		if ev.AllDay {
			hour, minute = 0, 0
		}

		ok, err := cal.AddEvent(ev.Start.Day(), ev.Summary, hour, minute)
		if err != nil {
			// inMonth guarantees the day is in range.
			appLog.Error("ics import: add failed", err, "uid", ev.UID)
			res.OutOfRange++
			continue
		}
		if !ok {
			// Duplicate on that day, or a blank summary.
			res.Rejected++
			continue
		}
		res.Added++
	}

	appLog.Info("ics import completed",
		"added", res.Added,
		"rejected", res.Rejected,
		"recurring", res.Recurring,
		"out_of_range", res.OutOfRange,
	)
	return res
}

func inMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

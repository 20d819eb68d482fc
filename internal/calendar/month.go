package calendar

import (
	"fmt"
	"slices"
	"strings"
	"time"

	appLog "monthcal/internal/log"
	"monthcal/internal/model"
)

const (
	minYear = -999_999_999
	maxYear = 999_999_999
)

// MonthCalendar stores the scheduled events of a single month, one slot per
// day, plus the events that have been completed.
//
// Each day slot is kept sorted by start time and never holds two Equal
// events. A new event goes ahead of existing events with the same start
// time. MonthCalendar is not safe for concurrent use; callers sharing an
// instance must serialize all access to it.
type MonthCalendar struct {
	year  int
	month time.Month

	// days[d-1] holds the scheduled events of day d.
	days [][]*model.Event
	// completed is ordered most recently completed first.
	completed []*model.Event
}

// New returns an empty calendar for the given year and month (1-12).
func New(year, month int) (*MonthCalendar, error) {
	if month < 1 || month > 12 || year < minYear || year > maxYear {
		return nil, fmt.Errorf("%w: %d-%02d", ErrInvalidDate, year, month)
	}

	m := time.Month(month)
	n := daysIn(year, m)
	days := make([][]*model.Event, n)
	for i := range days {
		days[i] = []*model.Event{}
	}

	return &MonthCalendar{
		year:      year,
		month:     m,
		days:      days,
		completed: []*model.Event{},
	}, nil
}

// daysIn returns the Gregorian length of the month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (c *MonthCalendar) Year() int { return c.year }

// MonthName returns the English name of the month, e.g. "February".
func (c *MonthCalendar) MonthName() string { return c.month.String() }

// MonthNumber returns the month as 1-12.
func (c *MonthCalendar) MonthNumber() int { return int(c.month) }

// DaysCount returns the number of days in the month.
func (c *MonthCalendar) DaysCount() int { return len(c.days) }

func (c *MonthCalendar) checkDay(day int) error {
	if day < 1 || day > len(c.days) {
		return fmt.Errorf("%w: day %d not in [1, %d] for %s %d",
			ErrInvalidArgument, day, len(c.days), c.month, c.year)
	}
	return nil
}

// AddEvent schedules a new event on day.
//
// A day outside the month is an error. An event that cannot be built from
// description, startHour and startMin, or that duplicates an event already
// scheduled on that day, is rejected by returning false with a nil error
// and leaves the calendar unchanged.
func (c *MonthCalendar) AddEvent(day int, description string, startHour, startMin int) (bool, error) {
	if err := c.checkDay(day); err != nil {
		return false, err
	}

	ev, err := model.NewEvent(description, day, startHour, startMin)
	if err != nil {
		appLog.Debug("calendar: event rejected", "day", day, "reason", err.Error())
		return false, nil
	}

	slot := c.days[day-1]
	for _, existing := range slot {
		if existing.Equal(ev) {
			appLog.Debug("calendar: duplicate event", "day", day, "event", ev.String())
			return false, nil
		}
	}

	// Insert before the first event that does not start earlier.
	idx := 0
	for idx < len(slot) && slot[idx].Compare(ev) < 0 {
		idx++
	}
	c.days[day-1] = slices.Insert(slot, idx, ev)

	return true, nil
}

// CancelEvent removes the first event on day whose description and "HH:MM"
// start time match exactly. Arguments are validated in order: description,
// day, hour, minute.
func (c *MonthCalendar) CancelEvent(description string, day, startHour, startMin int) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description cannot be blank", ErrInvalidArgument)
	}
	if err := c.checkDay(day); err != nil {
		return err
	}
	if err := model.ValidateTime(startHour, startMin); err != nil {
		return err
	}

	start := model.FormatTime(startHour, startMin)
	slot := c.days[day-1]
	for i, ev := range slot {
		if ev.Description() == description && ev.StartTimeString() == start {
			c.days[day-1] = slices.Delete(slot, i, i+1)
			return nil
		}
	}

	return fmt.Errorf("%w: %q at %s on day %d", ErrNotFound, description, start, day)
}

// MarkEventComplete moves the scheduled event Equal to e from its day slot to
// the front of the completed list and marks it complete. e itself is left
// untouched.
func (c *MonthCalendar) MarkEventComplete(e *model.Event) error {
	if e == nil {
		return fmt.Errorf("%w: event cannot be nil", ErrInvalidArgument)
	}
	if err := c.checkDay(e.Day()); err != nil {
		return err
	}

	slot := c.days[e.Day()-1]
	for i, ev := range slot {
		if !ev.Equal(e) {
			continue
		}
		c.days[e.Day()-1] = slices.Delete(slot, i, i+1)
		ev.MarkComplete()
		c.completed = slices.Insert(c.completed, 0, ev)
		appLog.Debug("calendar: event completed", "day", ev.Day(), "event", ev.Description())
		return nil
	}

	return fmt.Errorf("%w: %q at %s on day %d", ErrNotFound, e.Description(), e.StartTimeString(), e.Day())
}

// ClearCompletedEvents empties the completed list.
func (c *MonthCalendar) ClearCompletedEvents() {
	c.completed = []*model.Event{}
}

// CompletedEvents returns a deep copy of the completed list, most recent first.
func (c *MonthCalendar) CompletedEvents() []*model.Event {
	return copyEvents(c.completed)
}

// Events returns a deep copy of every day slot, indexed by day-1.
func (c *MonthCalendar) Events() [][]*model.Event {
	out := make([][]*model.Event, len(c.days))
	for i, slot := range c.days {
		out[i] = copyEvents(slot)
	}
	return out
}

// EventsOn returns a deep copy of the events scheduled on day.
func (c *MonthCalendar) EventsOn(day int) ([]*model.Event, error) {
	if err := c.checkDay(day); err != nil {
		return nil, err
	}
	return copyEvents(c.days[day-1]), nil
}

func copyEvents(events []*model.Event) []*model.Event {
	out := make([]*model.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Copy())
	}
	return out
}

// CompletedEventsString renders one completed event per line, or "" when
// nothing has been completed.
func (c *MonthCalendar) CompletedEventsString() string {
	var b strings.Builder
	for _, ev := range c.completed {
		b.WriteString(ev.String())
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

// String renders every day that has scheduled events as an
// "Events for Day N:" header followed by one event per line.
func (c *MonthCalendar) String() string {
	var b strings.Builder
	for i, slot := range c.days {
		if len(slot) == 0 {
			continue
		}
		fmt.Fprintf(&b, "Events for Day %d:\n", i+1)
		for _, ev := range slot {
			b.WriteString(ev.String())
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}

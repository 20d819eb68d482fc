package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidArgument is returned when an event field is malformed or out of range.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	minDay  = 1
	maxDay  = 31
	maxHour = 23
	maxMin  = 59
)

// Event is a single scheduled entry on one day of a month calendar.
//
// Apart from MarkComplete, an Event does not change after construction.
// Two events are Equal when day, start time and description match; the
// completion flag is not part of an event's identity.
type Event struct {
	description string
	day         int
	startHour   int
	startMin    int
	complete    bool
}

// NewEvent validates its arguments and returns an uncompleted event.
func NewEvent(description string, day, startHour, startMin int) (*Event, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description cannot be blank", ErrInvalidArgument)
	}
	if day < minDay || day > maxDay {
		return nil, fmt.Errorf("%w: day %d not in [%d, %d]", ErrInvalidArgument, day, minDay, maxDay)
	}
	if err := ValidateTime(startHour, startMin); err != nil {
		return nil, err
	}

	return &Event{
		description: description,
		day:         day,
		startHour:   startHour,
		startMin:    startMin,
	}, nil
}

// ValidateTime reports whether hour:minute is a valid time of day.
func ValidateTime(hour, minute int) error {
	if hour < 0 || hour > maxHour {
		return fmt.Errorf("%w: hour %d not in [0, %d]", ErrInvalidArgument, hour, maxHour)
	}
	if minute < 0 || minute > maxMin {
		return fmt.Errorf("%w: minute %d not in [0, %d]", ErrInvalidArgument, minute, maxMin)
	}
	return nil
}

// FormatTime renders hour and minute as zero-padded "HH:MM".
func FormatTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func (e *Event) Description() string { return e.description }

func (e *Event) Day() int { return e.day }

// StartTime returns the start time encoded as hour*100 + minute.
func (e *Event) StartTime() int { return e.startHour*100 + e.startMin }

// StartTimeString returns the start time as "HH:MM".
func (e *Event) StartTimeString() string {
	return FormatTime(e.startHour, e.startMin)
}

// MarkComplete flags the event as completed. Calling it again is a no-op.
func (e *Event) MarkComplete() { e.complete = true }

func (e *Event) Complete() bool { return e.complete }

// Copy returns an independent event with the same fields, completion included.
func (e *Event) Copy() *Event {
	c := *e
	return &c
}

// Compare orders events by start time only. It returns -1, 0 or +1.
func (e *Event) Compare(other *Event) int {
	a, b := e.StartTime(), other.StartTime()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether other has the same day, start time and description.
func (e *Event) Equal(other *Event) bool {
	if other == nil {
		return false
	}
	if e == other {
		return true
	}
	return e.day == other.day &&
		e.startHour == other.startHour &&
		e.startMin == other.startMin &&
		e.description == other.description
}

// String renders "<description> at H:M", hour and minute unpadded, with a
// " completed on Day N" suffix once the event is complete.
func (e *Event) String() string {
	var b strings.Builder
	b.WriteString(e.description)
	b.WriteString(" at ")
	b.WriteString(strconv.Itoa(e.startHour))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(e.startMin))
	if e.complete {
		b.WriteString(" completed on Day ")
		b.WriteString(strconv.Itoa(e.day))
	}
	return b.String()
}

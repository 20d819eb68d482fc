package calendar

import (
	"errors"
	"testing"

	"monthcal/internal/model"
)

func newCalendar(t *testing.T, year, month int) *MonthCalendar {
	t.Helper()
	c, err := New(year, month)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", year, month, err)
	}
	return c
}

func mustAdd(t *testing.T, c *MonthCalendar, day int, description string, hour, minute int) {
	t.Helper()
	ok, err := c.AddEvent(day, description, hour, minute)
	if err != nil || !ok {
		t.Fatalf("AddEvent(%d, %q, %d, %d) = %v, %v; want true, nil", day, description, hour, minute, ok, err)
	}
}

func mustEvent(t *testing.T, description string, day, hour, minute int) *model.Event {
	t.Helper()
	ev, err := model.NewEvent(description, day, hour, minute)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	return ev
}

func TestNewDaysCount(t *testing.T) {
	cases := []struct {
		year, month int
		days        int
		name        string
	}{
		{2025, 1, 31, "January"},
		{2025, 2, 28, "February"},
		{2024, 2, 29, "February"},
		{2000, 2, 29, "February"},
		{1900, 2, 28, "February"},
		{0, 2, 29, "February"},
		{2025, 4, 30, "April"},
		{2025, 12, 31, "December"},
	}

	for _, tc := range cases {
		c := newCalendar(t, tc.year, tc.month)
		if c.DaysCount() != tc.days {
			t.Errorf("%d-%02d: DaysCount() = %d, want %d", tc.year, tc.month, c.DaysCount(), tc.days)
		}
		if c.MonthName() != tc.name {
			t.Errorf("%d-%02d: MonthName() = %q, want %q", tc.year, tc.month, c.MonthName(), tc.name)
		}
		if c.MonthNumber() != tc.month || c.Year() != tc.year {
			t.Errorf("%d-%02d: got %d-%02d", tc.year, tc.month, c.Year(), c.MonthNumber())
		}
		if got := len(c.Events()); got != tc.days {
			t.Errorf("%d-%02d: len(Events()) = %d, want %d", tc.year, tc.month, got, tc.days)
		}
		if c.String() != "" {
			t.Errorf("new calendar String() = %q, want empty", c.String())
		}
	}
}

func TestNewInvalidDate(t *testing.T) {
	for _, tc := range [][2]int{{2025, 0}, {2025, 13}, {2025, -1}, {1_000_000_000, 1}} {
		_, err := New(tc[0], tc[1])
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("New(%d, %d): expected ErrInvalidDate, got %v", tc[0], tc[1], err)
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("New(%d, %d): ErrInvalidDate should match ErrInvalidArgument", tc[0], tc[1])
		}
	}
}

func TestAddEventDayOutOfRange(t *testing.T) {
	c := newCalendar(t, 2025, 2)
	for _, day := range []int{0, -3, 29, 31} {
		ok, err := c.AddEvent(day, "Meeting", 10, 0)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("AddEvent(day=%d): expected ErrInvalidArgument, got %v", day, err)
		}
		if ok {
			t.Errorf("AddEvent(day=%d) returned true", day)
		}
	}
}

func TestAddEventSoftFailures(t *testing.T) {
	c := newCalendar(t, 2025, 3)

	cases := []struct {
		name        string
		description string
		hour        int
		minute      int
	}{
		{"blank description", "  ", 10, 0},
		{"hour out of range", "Meeting", 24, 0},
		{"minute out of range", "Meeting", 10, 60},
	}
	for _, tc := range cases {
		ok, err := c.AddEvent(5, tc.description, tc.hour, tc.minute)
		if err != nil {
			t.Errorf("%s: expected nil error, got %v", tc.name, err)
		}
		if ok {
			t.Errorf("%s: expected false", tc.name)
		}
	}
	if c.String() != "" {
		t.Fatalf("rejected adds mutated the calendar:\n%s", c.String())
	}
}

func TestAddEventDuplicate(t *testing.T) {
	c := newCalendar(t, 2025, 3)

	mustAdd(t, c, 15, "Meeting", 10, 30)
	ok, err := c.AddEvent(15, "Meeting", 10, 30)
	if err != nil || ok {
		t.Fatalf("duplicate AddEvent = %v, %v; want false, nil", ok, err)
	}

	day, err := c.EventsOn(15)
	if err != nil {
		t.Fatalf("EventsOn: %v", err)
	}
	if len(day) != 1 {
		t.Fatalf("expected one event on day 15, got %d", len(day))
	}

	// Same key on another day, or another description at the same time, is fine.
	mustAdd(t, c, 16, "Meeting", 10, 30)
	mustAdd(t, c, 15, "Other", 10, 30)
}

func TestAddEventKeepsOrder(t *testing.T) {
	c := newCalendar(t, 2025, 3)

	mustAdd(t, c, 10, "Lunch", 14, 0)
	mustAdd(t, c, 10, "Meeting", 10, 30)
	mustAdd(t, c, 10, "Breakfast", 7, 15)
	mustAdd(t, c, 10, "Late", 23, 59)
	// A later add at the same time goes ahead of the earlier one.
	mustAdd(t, c, 10, "Second Meeting", 10, 30)

	day, _ := c.EventsOn(10)
	want := []string{"Breakfast", "Second Meeting", "Meeting", "Lunch", "Late"}
	if len(day) != len(want) {
		t.Fatalf("got %d events, want %d", len(day), len(want))
	}
	for i, ev := range day {
		if ev.Description() != want[i] {
			t.Errorf("position %d: got %q, want %q", i, ev.Description(), want[i])
		}
	}
}

func TestCancelEventValidation(t *testing.T) {
	c := newCalendar(t, 2025, 2)
	mustAdd(t, c, 15, "Test Event", 10, 30)

	cases := []struct {
		name        string
		description string
		day         int
		hour        int
		minute      int
	}{
		{"blank description", " ", 15, 10, 30},
		{"day zero", "Test Event", 0, 10, 30},
		{"day past month", "Test Event", 29, 10, 30},
		{"hour 24", "Test Event", 15, 24, 30},
		{"negative hour", "Test Event", 15, -1, 30},
		{"minute 60", "Test Event", 15, 10, 60},
		{"blank wins over bad day", "", 99, 99, 99},
	}
	for _, tc := range cases {
		err := c.CancelEvent(tc.description, tc.day, tc.hour, tc.minute)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", tc.name, err)
		}
	}

	day, _ := c.EventsOn(15)
	if len(day) != 1 {
		t.Fatalf("invalid cancels removed events: %v", day)
	}
}

func TestCancelEvent(t *testing.T) {
	c := newCalendar(t, 2025, 2)
	mustAdd(t, c, 15, "Test Event", 10, 30)
	mustAdd(t, c, 15, "Other Event", 10, 30)

	for _, tc := range []struct {
		description  string
		hour, minute int
	}{
		{"Missing", 10, 30},
		{"Test Event", 10, 31},
		{"test event", 10, 30},
	} {
		err := c.CancelEvent(tc.description, 15, tc.hour, tc.minute)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("CancelEvent(%q, %d:%d): expected ErrNotFound, got %v", tc.description, tc.hour, tc.minute, err)
		}
	}
	if err := c.CancelEvent("Test Event", 14, 10, 30); !errors.Is(err, ErrNotFound) {
		t.Errorf("cancel on wrong day: expected ErrNotFound, got %v", err)
	}

	if err := c.CancelEvent("Test Event", 15, 10, 30); err != nil {
		t.Fatalf("CancelEvent: %v", err)
	}
	day, _ := c.EventsOn(15)
	if len(day) != 1 || day[0].Description() != "Other Event" {
		t.Fatalf("unexpected day 15 after cancel: %v", day)
	}
	if err := c.CancelEvent("Test Event", 15, 10, 30); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second cancel: expected ErrNotFound, got %v", err)
	}
}

func TestMarkEventComplete(t *testing.T) {
	c := newCalendar(t, 2025, 2)
	mustAdd(t, c, 15, "Meeting", 10, 30)
	mustAdd(t, c, 15, "Lunch", 12, 0)
	mustAdd(t, c, 20, "Review", 9, 0)

	target := mustEvent(t, "Meeting", 15, 10, 30)
	if err := c.MarkEventComplete(target); err != nil {
		t.Fatalf("MarkEventComplete: %v", err)
	}
	if target.Complete() {
		t.Error("argument event should not be mutated")
	}

	day, _ := c.EventsOn(15)
	if len(day) != 1 || day[0].Description() != "Lunch" {
		t.Fatalf("event not removed from day slot: %v", day)
	}

	completed := c.CompletedEvents()
	if len(completed) != 1 || !completed[0].Equal(target) || !completed[0].Complete() {
		t.Fatalf("unexpected completed list: %v", completed)
	}

	// Most recently completed goes first.
	if err := c.MarkEventComplete(mustEvent(t, "Review", 20, 9, 0)); err != nil {
		t.Fatalf("MarkEventComplete: %v", err)
	}
	completed = c.CompletedEvents()
	if len(completed) != 2 || completed[0].Description() != "Review" || completed[1].Description() != "Meeting" {
		t.Fatalf("unexpected completed order: %v", completed)
	}

	// Reconstructed key of an already completed event is no longer scheduled.
	err := c.MarkEventComplete(mustEvent(t, "Meeting", 15, 10, 30))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkEventCompleteInvalid(t *testing.T) {
	c := newCalendar(t, 2025, 2)
	mustAdd(t, c, 10, "Meeting", 10, 30)

	if err := c.MarkEventComplete(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil event: expected ErrInvalidArgument, got %v", err)
	}
	// Day 30 is a valid event day but not a day of February.
	if err := c.MarkEventComplete(mustEvent(t, "Meeting", 30, 10, 30)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("day 30: expected ErrInvalidArgument, got %v", err)
	}
	if err := c.MarkEventComplete(mustEvent(t, "Meeting", 10, 11, 30)); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown event: expected ErrNotFound, got %v", err)
	}
}

func TestCompletedEventsString(t *testing.T) {
	c := newCalendar(t, 2025, 2)
	if got := c.CompletedEventsString(); got != "" {
		t.Fatalf("CompletedEventsString() = %q, want empty", got)
	}

	mustAdd(t, c, 4, "Lunch", 14, 0)
	mustAdd(t, c, 5, "Gym", 7, 30)
	if err := c.MarkEventComplete(mustEvent(t, "Lunch", 4, 14, 0)); err != nil {
		t.Fatal(err)
	}
	if got, want := c.CompletedEventsString(), "Lunch at 14:0 completed on Day 4"; got != want {
		t.Fatalf("CompletedEventsString() = %q, want %q", got, want)
	}

	if err := c.MarkEventComplete(mustEvent(t, "Gym", 5, 7, 30)); err != nil {
		t.Fatal(err)
	}
	want := "Gym at 7:30 completed on Day 5\nLunch at 14:0 completed on Day 4"
	if got := c.CompletedEventsString(); got != want {
		t.Fatalf("CompletedEventsString() = %q, want %q", got, want)
	}

	c.ClearCompletedEvents()
	if got := c.CompletedEventsString(); got != "" {
		t.Fatalf("after clear: %q", got)
	}
	if len(c.CompletedEvents()) != 0 {
		t.Fatal("CompletedEvents not empty after clear")
	}
}

func TestCopiesAreIndependent(t *testing.T) {
	c := newCalendar(t, 2025, 2)
	mustAdd(t, c, 1, "Standup", 9, 0)
	mustAdd(t, c, 2, "Retro", 16, 0)
	if err := c.MarkEventComplete(mustEvent(t, "Retro", 2, 16, 0)); err != nil {
		t.Fatal(err)
	}

	events := c.Events()
	events[0][0].MarkComplete()
	events[0] = append(events[0], mustEvent(t, "Injected", 1, 10, 0))
	events[1] = nil

	day, _ := c.EventsOn(1)
	if len(day) != 1 || day[0].Complete() {
		t.Fatalf("mutating Events() copy changed the calendar: %v", day)
	}
	if len(c.Events()[1]) != 0 {
		t.Fatal("day 2 should be empty")
	}

	completed := c.CompletedEvents()
	completed[0] = mustEvent(t, "Replaced", 3, 1, 0)
	if got := c.CompletedEvents(); len(got) != 1 || got[0].Description() != "Retro" {
		t.Fatalf("mutating CompletedEvents() copy changed the calendar: %v", got)
	}

	onDay, _ := c.EventsOn(1)
	onDay[0].MarkComplete()
	if again, _ := c.EventsOn(1); again[0].Complete() {
		t.Fatal("mutating EventsOn copy changed the calendar")
	}
}

func TestEventsOnOutOfRange(t *testing.T) {
	c := newCalendar(t, 2025, 4)
	if _, err := c.EventsOn(31); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestString(t *testing.T) {
	c := newCalendar(t, 2025, 2)
	mustAdd(t, c, 12, "Lunch", 14, 0)
	mustAdd(t, c, 3, "Dentist", 8, 45)
	mustAdd(t, c, 12, "Meeting", 10, 30)

	want := "Events for Day 3:\n" +
		"Dentist at 8:45\n" +
		"Events for Day 12:\n" +
		"Meeting at 10:30\n" +
		"Lunch at 14:0"
	if got := c.String(); got != want {
		t.Fatalf("String() =\n%s\nwant\n%s", got, want)
	}

	if err := c.MarkEventComplete(mustEvent(t, "Dentist", 3, 8, 45)); err != nil {
		t.Fatal(err)
	}
	want = "Events for Day 12:\nMeeting at 10:30\nLunch at 14:0"
	if got := c.String(); got != want {
		t.Fatalf("String() after completion =\n%s\nwant\n%s", got, want)
	}
}

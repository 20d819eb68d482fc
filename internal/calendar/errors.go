package calendar

import (
	"errors"
	"fmt"

	"monthcal/internal/model"
)

var (
	// ErrInvalidArgument indicates a malformed description, an out-of-range
	// day, hour or minute, or a nil event.
	ErrInvalidArgument = model.ErrInvalidArgument
	// ErrInvalidDate indicates a year/month pair that is not a calendar month.
	ErrInvalidDate = fmt.Errorf("%w: invalid year or month", ErrInvalidArgument)
	// ErrNotFound indicates that no scheduled event matches a cancel or
	// complete request.
	ErrNotFound = errors.New("event not found")
)

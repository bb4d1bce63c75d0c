package features

import (
	"fmt"

	"github.com/julianstephens/datefeatures/internal/calendar"
)

// InvalidRangeError is returned when the end of a date range precedes its start.
type InvalidRangeError struct {
	Start calendar.Date
	End   calendar.Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s is before start %s", e.End, e.Start)
}

// PreconditionError reports input the freeday derivation cannot handle, such as
// rows that are not in strictly ascending date order.
type PreconditionError struct {
	Reason string
	Index  int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed at row %d: %s", e.Index, e.Reason)
}

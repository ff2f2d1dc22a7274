package attendance

import (
	"time"

	"github.com/talenttrack/talenttrack-backend-go/internal/domain/attendance"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/catalog"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/schedule"
)

// Button labels and style hints rendered by the attendance widget.
const (
	labelCheckIn      = "Register check-in"
	labelCheckOut     = "Register check-out"
	labelDayComplete  = "Day complete"
	labelNotAvailable = "Not available"

	btnClassIn   = "bg-gradient-danger"
	btnClassOut  = "bg-gradient-success"
	btnClassDone = "bg-gradient-secondary"
)

// dayState is the computed answer to "what can this employee do next today".
type dayState struct {
	NextCode      string // catalog.CodeCheckIn, catalog.CodeCheckOut, or ""
	NextLabel     string
	Done          bool
	Reason        string
	BtnClass      string
	RequiresGPS   bool
	RequiresPhoto bool
	FirstIn       *time.Time
}

// computeState derives the day state from today's events, ordered by
// registrado_el ascending. The strict day model expects exactly one check-in
// followed by one check-out:
//
//	0 events            -> offer check-in
//	1 event (check-in)  -> offer check-out
//	1 event (other)     -> inconsistent, terminal until corrected by HR
//	2+ events           -> day complete, terminal
//
// With strict disabled the two terminal rows relax and the next action keeps
// alternating off the last recorded type.
func computeState(events []attendance.Event, checkInTypeID string, shift *schedule.Shift, strict bool) dayState {
	st := dayState{
		NextCode:      catalog.CodeCheckIn,
		NextLabel:     labelCheckIn,
		BtnClass:      btnClassIn,
		RequiresGPS:   shift.GPSRequired(),
		RequiresPhoto: shift.PhotoRequired(),
	}

	for i := range events {
		if events[i].TypeID == checkInTypeID {
			t := events[i].RecordedAt
			st.FirstIn = &t
			break
		}
	}

	if strict && len(events) >= 2 {
		st.NextCode = ""
		st.NextLabel = labelDayComplete
		st.Done = true
		st.Reason = attendance.MsgDayComplete
		st.BtnClass = btnClassDone
		if st.FirstIn == nil {
			t := events[0].RecordedAt
			st.FirstIn = &t
		}
		return st
	}

	switch {
	case len(events) == 0:
		// defaults already offer check-in

	case events[len(events)-1].TypeID == checkInTypeID:
		st.NextCode = catalog.CodeCheckOut
		st.NextLabel = labelCheckOut
		st.BtnClass = btnClassOut

	case strict && len(events) == 1:
		// a lone non-check-in event cannot be paired
		st.NextCode = ""
		st.NextLabel = labelNotAvailable
		st.Done = true
		st.Reason = attendance.MsgInconsistentDay
		st.BtnClass = btnClassDone
	}

	return st
}

// Business windows around the shift boundaries, in minutes.
const (
	checkInEarlyMin  = 180
	checkInLateMin   = 180
	checkOutEarlyMin = 240
	checkOutLateMin  = 480
)

// validateTimeWindow rejects marks outside the business window around the
// shift boundary. Shifts without a configured boundary accept any time.
// Boundaries are inclusive.
func validateTimeWindow(shift *schedule.Shift, nextCode string, now time.Time) *attendance.Error {
	if shift == nil {
		return nil
	}

	switch nextCode {
	case catalog.CodeCheckIn:
		if shift.StartTime == nil {
			return nil
		}
		start := combineDayTime(now, *shift.StartTime)
		if now.Before(start.Add(-checkInEarlyMin*time.Minute)) || now.After(start.Add(checkInLateMin*time.Minute)) {
			return attendance.NewError(attendance.MsgOutsideInWindow)
		}

	case catalog.CodeCheckOut:
		if shift.EndTime == nil {
			return nil
		}
		end := combineDayTime(now, *shift.EndTime)
		if now.Before(end.Add(-checkOutEarlyMin*time.Minute)) || now.After(end.Add(checkOutLateMin*time.Minute)) {
			return attendance.NewError(attendance.MsgOutsideOutWindow)
		}
	}

	return nil
}

// combineDayTime anchors a time-of-day value onto day's calendar date, in
// day's location.
func combineDayTime(day time.Time, tod time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, day.Location())
}

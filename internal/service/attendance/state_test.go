package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/attendance"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/catalog"
)

func eventAt(typeID string, at time.Time) attendance.Event {
	return attendance.Event{
		ID:         "e-" + at.Format("150405"),
		CompanyID:  testCompanyID,
		EmployeeID: testEmployeeID,
		TypeID:     typeID,
		RecordedAt: at,
	}
}

func TestComputeState_NoEvents(t *testing.T) {
	st := computeState(nil, typeCheckInID, shiftNineToSix(), true)

	assert.Equal(t, catalog.CodeCheckIn, st.NextCode)
	assert.Equal(t, labelCheckIn, st.NextLabel)
	assert.Equal(t, "bg-gradient-danger", st.BtnClass)
	assert.False(t, st.Done)
	assert.Nil(t, st.FirstIn)
}

func TestComputeState_AfterCheckIn(t *testing.T) {
	in := time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC)
	st := computeState([]attendance.Event{eventAt(typeCheckInID, in)}, typeCheckInID, shiftNineToSix(), true)

	assert.Equal(t, catalog.CodeCheckOut, st.NextCode)
	assert.Equal(t, "bg-gradient-success", st.BtnClass)
	assert.False(t, st.Done)
	require.NotNil(t, st.FirstIn)
	assert.True(t, st.FirstIn.Equal(in))
}

func TestComputeState_LoneCheckOutIsInconsistent(t *testing.T) {
	out := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	st := computeState([]attendance.Event{eventAt(typeCheckOutID, out)}, typeCheckInID, shiftNineToSix(), true)

	assert.Empty(t, st.NextCode)
	assert.True(t, st.Done)
	assert.Equal(t, attendance.MsgInconsistentDay, st.Reason)
	assert.Nil(t, st.FirstIn)
}

func TestComputeState_TwoEventsDayComplete(t *testing.T) {
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	out := in.Add(9 * time.Hour)
	events := []attendance.Event{eventAt(typeCheckInID, in), eventAt(typeCheckOutID, out)}

	st := computeState(events, typeCheckInID, shiftNineToSix(), true)

	assert.Empty(t, st.NextCode)
	assert.True(t, st.Done)
	assert.Equal(t, btnClassDone, st.BtnClass)
	assert.Equal(t, attendance.MsgDayComplete, st.Reason)
	require.NotNil(t, st.FirstIn)
	assert.True(t, st.FirstIn.Equal(in))
}

func TestComputeState_ExtraEventsStillTerminal(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		eventAt(typeCheckInID, base),
		eventAt(typeCheckOutID, base.Add(4*time.Hour)),
		eventAt(typeCheckInID, base.Add(5*time.Hour)),
	}

	st := computeState(events, typeCheckInID, shiftNineToSix(), true)

	assert.True(t, st.Done)
	assert.Empty(t, st.NextCode)
}

func TestComputeState_NonStrictAlternates(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		eventAt(typeCheckInID, base),
		eventAt(typeCheckOutID, base.Add(4*time.Hour)),
		eventAt(typeCheckInID, base.Add(5*time.Hour)),
	}

	st := computeState(events, typeCheckInID, shiftNineToSix(), false)

	assert.False(t, st.Done)
	assert.Equal(t, catalog.CodeCheckOut, st.NextCode)
}

func TestComputeState_NilShiftHasNoRequirements(t *testing.T) {
	st := computeState(nil, typeCheckInID, nil, true)

	assert.False(t, st.RequiresGPS)
	assert.False(t, st.RequiresPhoto)
}

func TestComputeState_ShiftRequirementsPropagate(t *testing.T) {
	shift := shiftNineToSix()
	shift.RequiresGPS = boolPtr(true)
	shift.RequiresPhoto = boolPtr(true)

	st := computeState(nil, typeCheckInID, shift, true)

	assert.True(t, st.RequiresGPS)
	assert.True(t, st.RequiresPhoto)
}

func TestValidateTimeWindow_CheckInBoundaries(t *testing.T) {
	shift := shiftNineToSix() // window 06:00 - 12:00
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		at   time.Time
		ok   bool
	}{
		{"one minute early", day.Add(5*time.Hour + 59*time.Minute), false},
		{"lower boundary", day.Add(6 * time.Hour), true},
		{"on time", day.Add(9 * time.Hour), true},
		{"upper boundary", day.Add(12 * time.Hour), true},
		{"one minute late", day.Add(12*time.Hour + time.Minute), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validateTimeWindow(shift, catalog.CodeCheckIn, c.at)
			if c.ok {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, attendance.MsgOutsideInWindow, err.Message)
			}
		})
	}
}

func TestValidateTimeWindow_CheckOutBoundaries(t *testing.T) {
	shift := shiftNineToSix() // window opens 14:00, same-day
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		at   time.Time
		ok   bool
	}{
		{"one minute early", day.Add(13*time.Hour + 59*time.Minute), false},
		{"lower boundary", day.Add(14 * time.Hour), true},
		{"at shift end", day.Add(18 * time.Hour), true},
		{"late evening", day.Add(23*time.Hour + 59*time.Minute), true},
		// past midnight the window re-anchors to the new day's shift end
		{"next day early morning", day.Add(26 * time.Hour), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validateTimeWindow(shift, catalog.CodeCheckOut, c.at)
			if c.ok {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, attendance.MsgOutsideOutWindow, err.Message)
			}
		})
	}
}

func TestValidateTimeWindow_NoShiftOrNoBoundary(t *testing.T) {
	anyTime := time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC)

	assert.Nil(t, validateTimeWindow(nil, catalog.CodeCheckIn, anyTime))

	open := shiftNineToSix()
	open.StartTime = nil
	assert.Nil(t, validateTimeWindow(open, catalog.CodeCheckIn, anyTime))

	open.EndTime = nil
	assert.Nil(t, validateTimeWindow(open, catalog.CodeCheckOut, anyTime))
}

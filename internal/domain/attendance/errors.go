package attendance

import "net/http"

// Error is the single typed rejection of the mark pipeline: a user-facing
// message plus the HTTP status it translates to.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a validation-class rejection (400).
func NewError(message string) *Error {
	return &Error{Message: message, Status: http.StatusBadRequest}
}

// NewForbidden builds an authorization rejection (403).
func NewForbidden(message string) *Error {
	return &Error{Message: message, Status: http.StatusForbidden}
}

// Fixed user-facing messages. Tests assert on these, so treat them as part
// of the contract.
const (
	MsgNoLinkedEmployee  = "Your user has no linked employee."
	MsgMarkForOther      = "You do not have permission to mark attendance for another employee."
	MsgMarkCrossCompany  = "You cannot mark attendance for employees of another company."
	MsgEmployeeNotFound  = "Employee not found."
	MsgIPNotAllowed      = "Your network is not authorized to mark attendance from here."
	MsgDayComplete       = "You already registered check-in and check-out today."
	MsgInconsistentDay   = "An inconsistent mark was detected. Contact HR."
	MsgCannotMarkNow     = "You cannot mark attendance right now."
	MsgDoubleSubmit      = "Wait a few seconds before marking again."
	MsgGPSRequired       = "This shift requires GPS to register attendance."
	MsgPhotoRequired     = "This shift requires a photo to register attendance."
	MsgOutsideInWindow   = "Outside the allowed window for CHECK-IN."
	MsgOutsideOutWindow  = "Outside the allowed window for CHECK-OUT."
	MsgInvalidCoords     = "Invalid coordinates. Try again with location enabled."
	MsgOutsideGeofence   = "You are outside the authorized geofence."
	MsgPhotoSaveFailed   = "Could not save the photo. Try again."
)

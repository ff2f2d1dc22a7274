package response

import (
	"errors"
	"net/http"

	"github.com/talenttrack/talenttrack-backend-go/internal/domain/attendance"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/auth"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/employee"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance rejections carry their own status and wire shape.
	var attErr *attendance.Error
	if errors.As(err, &attErr) {
		MarkRejection(w, attErr.Status, attErr.Message)
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/talenttrack/talenttrack-backend-go/internal/domain/attendance"
	"github.com/talenttrack/talenttrack-backend-go/internal/handler/http/response"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/ipfilter"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/validator"
)

// userAgentMaxLen bounds what gets copied into event metadata.
const userAgentMaxLen = 300

type AttendanceHandler interface {
	State(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
	ListJournal(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// writeRaw emits an unwrapped JSON body. The attendance widget consumes the
// state and mark payloads directly, without the success envelope.
func writeRaw(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// State implements AttendanceHandler.
func (h *AttendanceHandlerImpl) State(w http.ResponseWriter, r *http.Request) {
	override := r.URL.Query().Get("empleado_id")
	if override != "" && !validator.IsValidUUID(override) {
		response.BadRequest(w, "Invalid empleado_id", nil)
		return
	}

	state, err := h.attendanceService.State(r.Context(), override)
	if err != nil {
		slog.Error("attendance state error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeRaw(w, http.StatusOK, state)
}

// Mark implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var markReq attendance.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&markReq); err != nil {
		response.MarkRejection(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	markReq.ClientIP = ipfilter.ClientIP(r)
	markReq.UserAgent = r.UserAgent()
	if len(markReq.UserAgent) > userAgentMaxLen {
		markReq.UserAgent = markReq.UserAgent[:userAgentMaxLen]
	}

	result, err := h.attendanceService.Mark(r.Context(), markReq)
	if err != nil {
		slog.Error("attendance mark error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeRaw(w, http.StatusOK, result)
}

// ListEvents implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, errDetails := parseEventFilter(r)
	if len(errDetails) > 0 {
		response.BadRequest(w, "Invalid filter", errDetails)
		return
	}

	result, err := h.attendanceService.ListEvents(r.Context(), filter)
	if err != nil {
		slog.Error("attendance list events error", "error", err)
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	response.SuccessWithMeta(w, result.Events, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

// ListJournal implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListJournal(w http.ResponseWriter, r *http.Request) {
	filter, errDetails := parseJournalFilter(r)
	if len(errDetails) > 0 {
		response.BadRequest(w, "Invalid filter", errDetails)
		return
	}

	result, err := h.attendanceService.ListJournal(r.Context(), filter)
	if err != nil {
		slog.Error("attendance list journal error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Recompute implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	var recomputeReq attendance.RecomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&recomputeReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var details validator.ValidationErrors
	if !validator.IsValidUUID(recomputeReq.EmployeeID) {
		details = append(details, validator.ValidationError{Field: "empleado_id", Message: "must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(recomputeReq.Date); !ok {
		details = append(details, validator.ValidationError{Field: "fecha", Message: "must be YYYY-MM-DD"})
	}
	if len(details) > 0 {
		response.HandleError(w, details)
		return
	}

	if err := h.attendanceService.Recompute(r.Context(), recomputeReq); err != nil {
		slog.Error("attendance recompute error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Journal recomputed", nil)
}

func parseEventFilter(r *http.Request) (attendance.EventFilter, map[string]string) {
	q := r.URL.Query()
	details := make(map[string]string)

	var filter attendance.EventFilter
	if v := q.Get("empleado_id"); v != "" {
		if !validator.IsValidUUID(v) {
			details["empleado_id"] = "must be a valid UUID"
		} else {
			filter.EmployeeID = &v
		}
	}
	if v := q.Get("desde"); v != "" {
		if _, ok := validator.IsValidDate(v); !ok {
			details["desde"] = "must be YYYY-MM-DD"
		} else {
			filter.StartDate = &v
		}
	}
	if v := q.Get("hasta"); v != "" {
		if _, ok := validator.IsValidDate(v); !ok {
			details["hasta"] = "must be YYYY-MM-DD"
		} else {
			filter.EndDate = &v
		}
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			filter.Limit = n
		}
	}

	return filter, details
}

func parseJournalFilter(r *http.Request) (attendance.JournalFilter, map[string]string) {
	q := r.URL.Query()
	details := make(map[string]string)

	var filter attendance.JournalFilter
	if v := q.Get("empleado_id"); v != "" {
		if !validator.IsValidUUID(v) {
			details["empleado_id"] = "must be a valid UUID"
		} else {
			filter.EmployeeID = &v
		}
	}
	if v := q.Get("desde"); v != "" {
		if _, ok := validator.IsValidDate(v); !ok {
			details["desde"] = "must be YYYY-MM-DD"
		} else {
			filter.StartDate = &v
		}
	}
	if v := q.Get("hasta"); v != "" {
		if _, ok := validator.IsValidDate(v); !ok {
			details["hasta"] = "must be YYYY-MM-DD"
		} else {
			filter.EndDate = &v
		}
	}

	return filter, details
}

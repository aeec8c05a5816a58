package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"attendancetracker/internal/delivery/http/helpers"
	"attendancetracker/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type AttendanceController struct {
	Logger  *slog.Logger
	Service domain.AttendanceService
}

func NewAttendanceController(logger *slog.Logger, svc domain.AttendanceService) *AttendanceController {
	return &AttendanceController{
		Logger:  logger,
		Service: svc,
	}
}

// AttendanceRecordResponse is the success envelope for check-in/check-out.
type AttendanceRecordResponse struct {
	Data  *domain.AttendanceRecord `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// CheckIn godoc
// @Summary Check an employee in for today
// @Description Creates today's attendance record for the employee and queues a check-in notification. Fails if the employee is unknown or already checked in today.
// @Tags attendance
// @Produce json
// @Param employeeID path string true "Employee ID (UUID)"
// @Success 201 {object} controllers.AttendanceRecordResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /attendance/{employeeID}/check-in [post]
func (c *AttendanceController) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := c.employeeID(w, r)
	if !ok {
		return
	}
	rec, err := c.Service.CheckIn(r.Context(), employeeID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rec)
}

// CheckOut godoc
// @Summary Check an employee out for today
// @Description Sets the check-out time on today's attendance record and queues a check-out notification. Fails if there is no check-in today or the employee already checked out.
// @Tags attendance
// @Produce json
// @Param employeeID path string true "Employee ID (UUID)"
// @Success 200 {object} controllers.AttendanceRecordResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /attendance/{employeeID}/check-out [post]
func (c *AttendanceController) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := c.employeeID(w, r)
	if !ok {
		return
	}
	rec, err := c.Service.CheckOut(r.Context(), employeeID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rec)
}

// GetByDate godoc
// @Summary List attendance records for a date
// @Description Returns the attendance records for the given date (YYYY-MM-DD), each joined with its employee, paginated.
// @Tags attendance
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} helpers.PaginatedResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /attendance/{date} [get]
func (c *AttendanceController) GetByDate(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be YYYY-MM-DD")
		return
	}
	params := helpers.ParsePagination(r)
	records, total, err := c.Service.GetByDate(r.Context(), date, params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.PaginatedResponse{
		Items:      records,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

func (c *AttendanceController) employeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	employeeID := r.PathValue("employeeID")
	if employeeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing employeeID")
		return "", false
	}
	if !uuidRegex.MatchString(employeeID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid employeeID")
		return "", false
	}
	return employeeID, true
}

// writeServiceError maps domain errors to HTTP statuses. InvalidState means
// the attendance rules rejected the transition; it is the caller's business
// outcome, not a server fault, so it maps to 409 without retry semantics.
func (c *AttendanceController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "employee not found")
	case errors.Is(err, domain.ErrInvalidState):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeInvalidState, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.Logger.ErrorContext(r.Context(), "store unavailable", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "temporarily unavailable, retry later")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/response"
)

// AttendanceHandler serves the attendance endpoints.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates the AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// GenerateWeek regenerates the current week's sessions and entries.
// POST /api/v1/attendance/generate-week
func (h *AttendanceHandler) GenerateWeek(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.GenerateWeek(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpsertSession replaces every entry of one session.
// POST /api/v1/attendance/sessions
func (h *AttendanceHandler) UpsertSession(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.attendanceSvc.UpsertSession(c.Request.Context(), &req, userID)
	if err != nil {
		if respondSubjectErr(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, 13001, "session not found")
		case errors.Is(err, service.ErrSessionRefRequired):
			response.BadRequest(c, 13002, "session_id or (subject + date + period) required")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 13003, "date must be YYYY-MM-DD")
		case errors.Is(err, service.ErrInvalidPeriod):
			response.BadRequest(c, 13004, "unknown period")
		case errors.Is(err, service.ErrNoEntries):
			response.BadRequest(c, 13005, "entries must not be empty")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// SessionEntries lists every entry of one session.
// GET /api/v1/attendance/sessions/:id/entries
func (h *AttendanceHandler) SessionEntries(c *gin.Context) {
	entries, err := h.attendanceSvc.SessionEntries(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, 13001, "session not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, entries)
}

// SearchSessions lists a subject's sessions with completion state.
// GET /api/v1/attendance/sessions?subject_id=...&date=...
func (h *AttendanceHandler) SearchSessions(c *gin.Context) {
	var req dto.SessionSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	sessions, err := h.attendanceSvc.SearchSessions(c.Request.Context(), &req)
	if err != nil {
		if respondSubjectErr(c, err) {
			return
		}
		if errors.Is(err, service.ErrInvalidDate) {
			response.BadRequest(c, 13003, "date must be YYYY-MM-DD")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, sessions)
}

// MyTimetable returns the calling staff member's timetable.
// GET /api/v1/attendance/timetable
func (h *AttendanceHandler) MyTimetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.TimetableRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	timetable, err := h.attendanceSvc.StaffTimetable(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11003, "user not found")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 13003, "date must be YYYY-MM-DD")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, timetable)
}

// StudentEntries lists one student's attendance history.
// Students may only read their own; staff and admin may read anyone's.
// GET /api/v1/attendance/students/:id/entries
func (h *AttendanceHandler) StudentEntries(c *gin.Context) {
	studentID, ok := h.authorizeStudentRead(c)
	if !ok {
		return
	}

	entries, err := h.attendanceSvc.StudentEntries(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, entries)
}

// StudentSummary tallies one student's present/absent counts.
// Unlike the entry history, the tally is readable by any
// authenticated caller.
// GET /api/v1/attendance/students/:id/summary
func (h *AttendanceHandler) StudentSummary(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	studentID := c.Param("id")
	if studentID == "" || studentID == "me" {
		studentID = userID
	}

	summary, err := h.attendanceSvc.StudentSummary(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, summary)
}

// StudentByRoll resolves a roll number to its student and history.
// GET /api/v1/attendance/roll/:roll_no
func (h *AttendanceHandler) StudentByRoll(c *gin.Context) {
	result, err := h.attendanceSvc.StudentByRoll(c.Request.Context(), c.Param("roll_no"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 13006, "student not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Overview returns the newest entries system-wide.
// GET /api/v1/attendance/overview?roll_no=...&limit=...
func (h *AttendanceHandler) Overview(c *gin.Context) {
	var req dto.OverviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	entries, err := h.attendanceSvc.Overview(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 13006, "student not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, entries)
}

// authorizeStudentRead enforces the self-or-staff rule on the :id
// path parameter and returns the effective student ID.
func (h *AttendanceHandler) authorizeStudentRead(c *gin.Context) (string, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return "", false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return "", false
	}

	studentID := c.Param("id")
	if studentID == "" || studentID == "me" {
		studentID = userID
	}

	if role == model.RoleStudent && studentID != userID {
		response.Forbidden(c, 10003, "students may only read their own attendance")
		return "", false
	}
	return studentID, true
}

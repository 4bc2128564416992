package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/response"
)

// SubjectHandler serves the subject endpoints.
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler creates the SubjectHandler.
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// respondSubjectErr maps the shared subject-resolution errors.
// Returns true when it wrote a response.
func respondSubjectErr(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrSubjectRefRequired):
		response.BadRequest(c, 12001, "subject_id or subject_code required")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 12002, "subject not found")
	default:
		return false
	}
	return true
}

// Create creates a subject.
// POST /api/v1/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	subject, err := h.subjectSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSubjectExists) {
			response.Error(c, http.StatusConflict, 12003, "subject code already exists")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, subject)
}

// List lists every subject.
// GET /api/v1/subjects
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjectSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, subjects)
}

// AssignStaff links a staff member to a subject.
// POST /api/v1/subjects/assign-staff
func (h *SubjectHandler) AssignStaff(c *gin.Context) {
	var req struct {
		dto.SubjectRef
		dto.AssignStaffRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	err := h.subjectSvc.AssignStaff(c.Request.Context(), req.SubjectRef, req.StaffID)
	if err != nil {
		if respondSubjectErr(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12004, "staff member not found")
		case errors.Is(err, service.ErrNotStaff):
			response.BadRequest(c, 12005, "user is not a staff member")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Enroll adds a student to a subject's roster.
// POST /api/v1/subjects/enroll
func (h *SubjectHandler) Enroll(c *gin.Context) {
	var req struct {
		dto.SubjectRef
		dto.EnrollStudentRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	err := h.subjectSvc.Enroll(c.Request.Context(), req.SubjectRef, req.StudentID)
	if err != nil {
		if respondSubjectErr(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12006, "student not found")
		case errors.Is(err, service.ErrNotStudent):
			response.BadRequest(c, 12007, "user is not a student")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Students returns a subject's roster sorted by roll number.
// GET /api/v1/subjects/students?subject_id=...|subject_code=...
func (h *SubjectHandler) Students(c *gin.Context) {
	var ref dto.SubjectRef
	if err := c.ShouldBindQuery(&ref); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	students, err := h.subjectSvc.Students(c.Request.Context(), ref)
	if err != nil {
		if respondSubjectErr(c, err) {
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, students)
}

// MySubjects returns the caller's subjects: enrollments for students,
// teaching assignments for staff.
// GET /api/v1/subjects/my
func (h *SubjectHandler) MySubjects(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var (
		subjects []dto.SubjectResponse
		err      error
	)
	if role == model.RoleStudent {
		subjects, err = h.subjectSvc.StudentSubjects(c.Request.Context(), userID)
	} else {
		subjects, err = h.subjectSvc.StaffSubjects(c.Request.Context(), userID)
	}
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, subjects)
}

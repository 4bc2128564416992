package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/response"
)

// MarkHandler serves the internal-marks endpoints.
type MarkHandler struct {
	markSvc service.MarkService
}

// NewMarkHandler creates the MarkHandler.
func NewMarkHandler(markSvc service.MarkService) *MarkHandler {
	return &MarkHandler{markSvc: markSvc}
}

// Post records one exam's marks for a subject.
// POST /api/v1/marks
func (h *MarkHandler) Post(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PostMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	marks, err := h.markSvc.Post(c.Request.Context(), &req, userID)
	if err != nil {
		if respondSubjectErr(c, err) {
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, marks)
}

// StudentMarks lists one student's marks, self-or-staff gated.
// GET /api/v1/marks/students/:id
func (h *MarkHandler) StudentMarks(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	studentID := c.Param("id")
	if studentID == "" || studentID == "me" {
		studentID = userID
	}
	if role == model.RoleStudent && studentID != userID {
		response.Forbidden(c, 10003, "students may only read their own marks")
		return
	}

	marks, err := h.markSvc.StudentMarks(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, marks)
}

// SubjectMarks lists a subject's marks, optionally for one exam.
// GET /api/v1/marks?subject_id=...&exam=...
func (h *MarkHandler) SubjectMarks(c *gin.Context) {
	var ref dto.SubjectRef
	if err := c.ShouldBindQuery(&ref); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	marks, err := h.markSvc.SubjectMarks(c.Request.Context(), ref, c.Query("exam"))
	if err != nil {
		if respondSubjectErr(c, err) {
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, marks)
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/response"
)

// AssignmentHandler serves the assignment endpoints.
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler creates the AssignmentHandler.
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Create creates an assignment for a subject.
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	assignment, err := h.assignmentSvc.Create(c.Request.Context(), &req, userID)
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

	response.Created(c, assignment)
}

// List lists assignments: a subject's when a subject ref is given,
// otherwise the calling student's across enrolled subjects.
// GET /api/v1/assignments?subject_id=...
func (h *AssignmentHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var ref dto.SubjectRef
	if err := c.ShouldBindQuery(&ref); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	var (
		assignments []dto.AssignmentResponse
		err         error
	)
	if ref.IsZero() && role == model.RoleStudent {
		assignments, err = h.assignmentSvc.StudentAssignments(c.Request.Context(), userID)
	} else {
		assignments, err = h.assignmentSvc.SubjectAssignments(c.Request.Context(), ref)
	}
	if err != nil {
		if respondSubjectErr(c, err) {
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, assignments)
}

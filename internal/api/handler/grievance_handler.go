package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
	pkgerrors "github.com/prasanthzodiac/College-connect-sub000/pkg/errors"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/response"
)

// GrievanceHandler serves the grievance endpoints.
type GrievanceHandler struct {
	grievanceSvc service.GrievanceService
}

// NewGrievanceHandler creates the GrievanceHandler.
func NewGrievanceHandler(grievanceSvc service.GrievanceService) *GrievanceHandler {
	return &GrievanceHandler{grievanceSvc: grievanceSvc}
}

// Submit files a grievance for the caller.
// POST /api/v1/grievances
func (h *GrievanceHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	grievance, err := h.grievanceSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, grievance)
}

// MyGrievances lists the caller's grievances.
// GET /api/v1/grievances/my
func (h *GrievanceHandler) MyGrievances(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	grievances, err := h.grievanceSvc.MyGrievances(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, grievances)
}

// List lists grievances, optionally by status.
// GET /api/v1/grievances?status=open&page=1&page_size=20
func (h *GrievanceHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	grievances, total, err := h.grievanceSvc.ListByStatus(c.Request.Context(), c.Query("status"), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, grievances, total, page.GetPage(), page.GetPageSize())
}

// Resolve closes an open grievance with a response.
// PUT /api/v1/grievances/:id/resolution
func (h *GrievanceHandler) Resolve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ResolveGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	grievance, err := h.grievanceSvc.Resolve(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGrievanceNotFound):
			response.NotFound(c, 15001, "grievance not found")
		case errors.Is(err, service.ErrAlreadyResolved):
			response.Error(c, http.StatusConflict, 15002, "grievance already resolved")
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			response.Error(c, http.StatusConflict, 15003, "grievance was modified concurrently")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, grievance)
}

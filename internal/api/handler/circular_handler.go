package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/response"
)

// CircularHandler serves the circular endpoints.
type CircularHandler struct {
	circularSvc service.CircularService
}

// NewCircularHandler creates the CircularHandler.
func NewCircularHandler(circularSvc service.CircularService) *CircularHandler {
	return &CircularHandler{circularSvc: circularSvc}
}

// Create publishes a circular.
// POST /api/v1/circulars
func (h *CircularHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCircularRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	circular, err := h.circularSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, circular)
}

// List lists circulars visible to the caller's role, newest first.
// GET /api/v1/circulars?page=1&page_size=20
func (h *CircularHandler) List(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	circulars, total, err := h.circularSvc.ListForRole(c.Request.Context(), role, &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, circulars, total, page.GetPage(), page.GetPageSize())
}

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

// LeaveHandler serves the leave endpoints.
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler creates the LeaveHandler.
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// Apply files a leave application for the caller.
// POST /api/v1/leaves
func (h *LeaveHandler) Apply(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	leave, err := h.leaveSvc.Apply(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 13003, "date must be YYYY-MM-DD")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 14001, "from_date must not be after to_date")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, leave)
}

// MyLeaves lists the caller's leave requests.
// GET /api/v1/leaves/my
func (h *LeaveHandler) MyLeaves(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	leaves, err := h.leaveSvc.MyLeaves(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leaves)
}

// List lists leave requests, optionally by status.
// GET /api/v1/leaves?status=pending&page=1&page_size=20
func (h *LeaveHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	leaves, total, err := h.leaveSvc.ListByStatus(c.Request.Context(), c.Query("status"), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, leaves, total, page.GetPage(), page.GetPageSize())
}

// Decide approves or rejects a pending leave request.
// PUT /api/v1/leaves/:id/decision
func (h *LeaveHandler) Decide(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	leave, err := h.leaveSvc.Decide(c.Request.Context(), c.Param("id"), userID, req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeaveNotFound):
			response.NotFound(c, 14002, "leave request not found")
		case errors.Is(err, service.ErrAlreadyDecided):
			response.Error(c, http.StatusConflict, 14003, "request already decided")
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			response.Error(c, http.StatusConflict, 14004, "request was modified concurrently")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, leave)
}

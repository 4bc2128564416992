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

// CertificateHandler serves the certificate-request endpoints.
type CertificateHandler struct {
	certSvc service.CertificateService
}

// NewCertificateHandler creates the CertificateHandler.
func NewCertificateHandler(certSvc service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certSvc: certSvc}
}

// Request asks for a certificate for the caller.
// POST /api/v1/certificates
func (h *CertificateHandler) Request(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RequestCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	cert, err := h.certSvc.Request(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, cert)
}

// MyRequests lists the caller's certificate requests.
// GET /api/v1/certificates/my
func (h *CertificateHandler) MyRequests(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	certs, err := h.certSvc.MyRequests(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, certs)
}

// List lists certificate requests, optionally by status.
// GET /api/v1/certificates?status=pending&page=1&page_size=20
func (h *CertificateHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	certs, total, err := h.certSvc.ListByStatus(c.Request.Context(), c.Query("status"), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, certs, total, page.GetPage(), page.GetPageSize())
}

// Decide approves or rejects a pending certificate request.
// PUT /api/v1/certificates/:id/decision
func (h *CertificateHandler) Decide(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	cert, err := h.certSvc.Decide(c.Request.Context(), c.Param("id"), userID, req.Approve)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, cert)
}

// Issue marks an approved certificate request as handed out.
// PUT /api/v1/certificates/:id/issue
func (h *CertificateHandler) Issue(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cert, err := h.certSvc.Issue(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	response.OK(c, cert)
}

func (h *CertificateHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCertificateNotFound):
		response.NotFound(c, 16001, "certificate request not found")
	case errors.Is(err, service.ErrAlreadyDecided):
		response.Error(c, http.StatusConflict, 16002, "request already decided")
	case errors.Is(err, service.ErrNotApproved):
		response.Error(c, http.StatusConflict, 16003, "request is not approved")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Error(c, http.StatusConflict, 16004, "request was modified concurrently")
	default:
		response.InternalError(c)
	}
}

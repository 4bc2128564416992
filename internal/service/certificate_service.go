package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
)

var (
	ErrCertificateNotFound = errors.New("certificate request not found")
	ErrNotApproved         = errors.New("certificate request is not approved")
)

// CertificateService handles certificate requests and their lifecycle
// (pending → approved/rejected, approved → issued).
type CertificateService interface {
	Request(ctx context.Context, studentID string, req *dto.RequestCertificateRequest) (*dto.CertificateResponse, error)
	MyRequests(ctx context.Context, studentID string) ([]dto.CertificateResponse, error)
	ListByStatus(ctx context.Context, status string, page *dto.PaginationRequest) ([]dto.CertificateResponse, int64, error)
	Decide(ctx context.Context, certificateID, deciderID string, approve bool) (*dto.CertificateResponse, error)
	// Issue marks an approved request as handed out.
	Issue(ctx context.Context, certificateID, issuerID string) (*dto.CertificateResponse, error)
}

type certificateService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCertificateService creates the certificate service.
func NewCertificateService(repo *repository.Repository, logger *zap.Logger) CertificateService {
	return &certificateService{repo: repo, logger: logger}
}

func (s *certificateService) Request(ctx context.Context, studentID string, req *dto.RequestCertificateRequest) (*dto.CertificateResponse, error) {
	cert := &model.CertificateRequest{
		StudentID:      studentID,
		CertType:       req.CertType,
		Purpose:        req.Purpose,
		Status:         model.StatusPending,
		VersionedModel: model.VersionedModel{BaseModel: model.BaseModel{CreatedBy: &studentID}, Version: 1},
	}
	if err := s.repo.Certificate.Create(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info("certificate requested",
		zap.String("certificate_id", cert.CertificateID),
		zap.String("cert_type", cert.CertType))

	resp := certificateResponse(cert)
	return &resp, nil
}

func (s *certificateService) MyRequests(ctx context.Context, studentID string) ([]dto.CertificateResponse, error) {
	certs, err := s.repo.Certificate.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CertificateResponse, 0, len(certs))
	for i := range certs {
		out = append(out, certificateResponse(&certs[i]))
	}
	return out, nil
}

func (s *certificateService) ListByStatus(ctx context.Context, status string, page *dto.PaginationRequest) ([]dto.CertificateResponse, int64, error) {
	certs, total, err := s.repo.Certificate.ListByStatus(ctx, status, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.CertificateResponse, 0, len(certs))
	for i := range certs {
		out = append(out, certificateResponse(&certs[i]))
	}
	return out, total, nil
}

func (s *certificateService) Decide(ctx context.Context, certificateID, deciderID string, approve bool) (*dto.CertificateResponse, error) {
	cert, err := s.repo.Certificate.GetByID(ctx, certificateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	if cert.Status != model.StatusPending {
		return nil, ErrAlreadyDecided
	}

	if approve {
		cert.Status = model.StatusApproved
	} else {
		cert.Status = model.StatusRejected
	}
	cert.DecidedBy = &deciderID
	cert.UpdatedBy = &deciderID

	if err := s.repo.Certificate.UpdateDecision(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info("certificate decided",
		zap.String("certificate_id", cert.CertificateID),
		zap.String("status", cert.Status))

	resp := certificateResponse(cert)
	return &resp, nil
}

func (s *certificateService) Issue(ctx context.Context, certificateID, issuerID string) (*dto.CertificateResponse, error) {
	cert, err := s.repo.Certificate.GetByID(ctx, certificateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	if cert.Status != model.StatusApproved {
		return nil, ErrNotApproved
	}

	cert.Status = model.StatusIssued
	cert.UpdatedBy = &issuerID

	if err := s.repo.Certificate.UpdateDecision(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info("certificate issued",
		zap.String("certificate_id", cert.CertificateID))

	resp := certificateResponse(cert)
	return &resp, nil
}

func certificateResponse(cert *model.CertificateRequest) dto.CertificateResponse {
	return dto.CertificateResponse{
		ID:        cert.CertificateID,
		CertType:  cert.CertType,
		Purpose:   cert.Purpose,
		Status:    cert.Status,
		Student:   studentBrief(cert.Student),
		CreatedAt: cert.CreatedAt.Format(time.RFC3339),
	}
}

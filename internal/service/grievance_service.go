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
	ErrGrievanceNotFound = errors.New("grievance not found")
	ErrAlreadyResolved   = errors.New("grievance already resolved")
)

// GrievanceService handles grievance submission and resolution.
type GrievanceService interface {
	Submit(ctx context.Context, studentID string, req *dto.SubmitGrievanceRequest) (*dto.GrievanceResponse, error)
	MyGrievances(ctx context.Context, studentID string) ([]dto.GrievanceResponse, error)
	ListByStatus(ctx context.Context, status string, page *dto.PaginationRequest) ([]dto.GrievanceResponse, int64, error)
	Resolve(ctx context.Context, grievanceID, resolverID string, req *dto.ResolveGrievanceRequest) (*dto.GrievanceResponse, error)
}

type grievanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGrievanceService creates the grievance service.
func NewGrievanceService(repo *repository.Repository, logger *zap.Logger) GrievanceService {
	return &grievanceService{repo: repo, logger: logger}
}

func (s *grievanceService) Submit(ctx context.Context, studentID string, req *dto.SubmitGrievanceRequest) (*dto.GrievanceResponse, error) {
	grievance := &model.Grievance{
		StudentID:      studentID,
		Topic:          req.Topic,
		Description:    req.Description,
		Status:         model.StatusOpen,
		VersionedModel: model.VersionedModel{BaseModel: model.BaseModel{CreatedBy: &studentID}, Version: 1},
	}
	if err := s.repo.Grievance.Create(ctx, grievance); err != nil {
		return nil, err
	}

	s.logger.Info("grievance submitted",
		zap.String("grievance_id", grievance.GrievanceID),
		zap.String("student_id", studentID))

	resp := grievanceResponse(grievance)
	return &resp, nil
}

func (s *grievanceService) MyGrievances(ctx context.Context, studentID string) ([]dto.GrievanceResponse, error) {
	grievances, err := s.repo.Grievance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.GrievanceResponse, 0, len(grievances))
	for i := range grievances {
		out = append(out, grievanceResponse(&grievances[i]))
	}
	return out, nil
}

func (s *grievanceService) ListByStatus(ctx context.Context, status string, page *dto.PaginationRequest) ([]dto.GrievanceResponse, int64, error) {
	grievances, total, err := s.repo.Grievance.ListByStatus(ctx, status, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.GrievanceResponse, 0, len(grievances))
	for i := range grievances {
		out = append(out, grievanceResponse(&grievances[i]))
	}
	return out, total, nil
}

func (s *grievanceService) Resolve(ctx context.Context, grievanceID, resolverID string, req *dto.ResolveGrievanceRequest) (*dto.GrievanceResponse, error) {
	grievance, err := s.repo.Grievance.GetByID(ctx, grievanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrievanceNotFound
		}
		return nil, err
	}
	if grievance.Status != model.StatusOpen {
		return nil, ErrAlreadyResolved
	}

	grievance.Status = model.StatusResolved
	grievance.Response = req.Response
	grievance.UpdatedBy = &resolverID

	if err := s.repo.Grievance.UpdateResolution(ctx, grievance); err != nil {
		return nil, err
	}

	s.logger.Info("grievance resolved",
		zap.String("grievance_id", grievance.GrievanceID))

	resp := grievanceResponse(grievance)
	return &resp, nil
}

func grievanceResponse(grievance *model.Grievance) dto.GrievanceResponse {
	return dto.GrievanceResponse{
		ID:          grievance.GrievanceID,
		Topic:       grievance.Topic,
		Description: grievance.Description,
		Status:      grievance.Status,
		Response:    grievance.Response,
		Student:     studentBrief(grievance.Student),
		CreatedAt:   grievance.CreatedAt.Format(time.RFC3339),
	}
}

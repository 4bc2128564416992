package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
)

// CircularService publishes and lists circulars.
type CircularService interface {
	Create(ctx context.Context, req *dto.CreateCircularRequest, actorID string) (*dto.CircularResponse, error)
	// ListForRole returns circulars visible to the given role, newest first.
	ListForRole(ctx context.Context, role string, page *dto.PaginationRequest) ([]dto.CircularResponse, int64, error)
}

type circularService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCircularService creates the circular service.
func NewCircularService(repo *repository.Repository, logger *zap.Logger) CircularService {
	return &circularService{repo: repo, logger: logger}
}

func (s *circularService) Create(ctx context.Context, req *dto.CreateCircularRequest, actorID string) (*dto.CircularResponse, error) {
	audience := req.Audience
	if audience == "" {
		audience = model.AudienceAll
	}

	circular := &model.Circular{
		Title:     req.Title,
		Body:      req.Body,
		Audience:  audience,
		BaseModel: model.BaseModel{CreatedBy: &actorID},
	}
	if err := s.repo.Circular.Create(ctx, circular); err != nil {
		return nil, err
	}

	s.logger.Info("circular published",
		zap.String("circular_id", circular.CircularID),
		zap.String("audience", circular.Audience))

	resp := circularResponse(circular)
	return &resp, nil
}

func (s *circularService) ListForRole(ctx context.Context, role string, page *dto.PaginationRequest) ([]dto.CircularResponse, int64, error) {
	audiences := []string{model.AudienceAll}
	switch role {
	case model.RoleStudent:
		audiences = append(audiences, model.AudienceStudents)
	case model.RoleStaff:
		audiences = append(audiences, model.AudienceStaff)
	case model.RoleAdmin:
		audiences = append(audiences, model.AudienceStudents, model.AudienceStaff)
	}

	circulars, total, err := s.repo.Circular.ListForAudiences(ctx, audiences, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.CircularResponse, 0, len(circulars))
	for i := range circulars {
		out = append(out, circularResponse(&circulars[i]))
	}
	return out, total, nil
}

func circularResponse(circular *model.Circular) dto.CircularResponse {
	return dto.CircularResponse{
		ID:        circular.CircularID,
		Title:     circular.Title,
		Body:      circular.Body,
		Audience:  circular.Audience,
		CreatedAt: circular.CreatedAt.Format(time.RFC3339),
	}
}

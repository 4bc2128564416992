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
	ErrLeaveNotFound    = errors.New("leave request not found")
	ErrAlreadyDecided   = errors.New("request already decided")
	ErrInvalidDateRange = errors.New("from_date must not be after to_date")
)

// LeaveService handles leave applications and decisions.
type LeaveService interface {
	Apply(ctx context.Context, studentID string, req *dto.ApplyLeaveRequest) (*dto.LeaveResponse, error)
	MyLeaves(ctx context.Context, studentID string) ([]dto.LeaveResponse, error)
	ListByStatus(ctx context.Context, status string, page *dto.PaginationRequest) ([]dto.LeaveResponse, int64, error)
	// Decide approves or rejects a pending request. Only pending
	// requests can be decided; concurrent decisions lose on version.
	Decide(ctx context.Context, leaveID, deciderID string, approve bool) (*dto.LeaveResponse, error)
}

type leaveService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeaveService creates the leave service.
func NewLeaveService(repo *repository.Repository, logger *zap.Logger) LeaveService {
	return &leaveService{repo: repo, logger: logger}
}

func (s *leaveService) Apply(ctx context.Context, studentID string, req *dto.ApplyLeaveRequest) (*dto.LeaveResponse, error) {
	fromDate, err := normalizeDate(req.FromDate)
	if err != nil {
		return nil, err
	}
	toDate, err := normalizeDate(req.ToDate)
	if err != nil {
		return nil, err
	}
	if fromDate > toDate {
		return nil, ErrInvalidDateRange
	}

	leave := &model.LeaveRequest{
		StudentID:      studentID,
		FromDate:       fromDate,
		ToDate:         toDate,
		Reason:         req.Reason,
		Status:         model.StatusPending,
		VersionedModel: model.VersionedModel{BaseModel: model.BaseModel{CreatedBy: &studentID}, Version: 1},
	}
	if err := s.repo.Leave.Create(ctx, leave); err != nil {
		return nil, err
	}

	s.logger.Info("leave applied",
		zap.String("leave_id", leave.LeaveID),
		zap.String("student_id", studentID))

	resp := leaveResponse(leave)
	return &resp, nil
}

func (s *leaveService) MyLeaves(ctx context.Context, studentID string) ([]dto.LeaveResponse, error) {
	leaves, err := s.repo.Leave.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		out = append(out, leaveResponse(&leaves[i]))
	}
	return out, nil
}

func (s *leaveService) ListByStatus(ctx context.Context, status string, page *dto.PaginationRequest) ([]dto.LeaveResponse, int64, error) {
	leaves, total, err := s.repo.Leave.ListByStatus(ctx, status, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		out = append(out, leaveResponse(&leaves[i]))
	}
	return out, total, nil
}

func (s *leaveService) Decide(ctx context.Context, leaveID, deciderID string, approve bool) (*dto.LeaveResponse, error) {
	leave, err := s.repo.Leave.GetByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	if leave.Status != model.StatusPending {
		return nil, ErrAlreadyDecided
	}

	if approve {
		leave.Status = model.StatusApproved
	} else {
		leave.Status = model.StatusRejected
	}
	leave.DecidedBy = &deciderID
	leave.UpdatedBy = &deciderID

	if err := s.repo.Leave.UpdateDecision(ctx, leave); err != nil {
		return nil, err
	}

	s.logger.Info("leave decided",
		zap.String("leave_id", leave.LeaveID),
		zap.String("status", leave.Status))

	resp := leaveResponse(leave)
	return &resp, nil
}

func leaveResponse(leave *model.LeaveRequest) dto.LeaveResponse {
	return dto.LeaveResponse{
		ID:        leave.LeaveID,
		FromDate:  normalizeStoredDate(leave.FromDate),
		ToDate:    normalizeStoredDate(leave.ToDate),
		Reason:    leave.Reason,
		Status:    leave.Status,
		Student:   studentBrief(leave.Student),
		CreatedAt: leave.CreatedAt.Format(time.RFC3339),
	}
}

func studentBrief(student *model.User) *dto.UserBrief {
	if student == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:    student.UserID,
		Name:  student.Name,
		Email: student.Email,
		Role:  student.Role,
	}
}

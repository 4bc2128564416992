package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
)

// AssignmentService manages per-subject assignments.
type AssignmentService interface {
	Create(ctx context.Context, req *dto.CreateAssignmentRequest, actorID string) (*dto.AssignmentResponse, error)
	SubjectAssignments(ctx context.Context, ref dto.SubjectRef) ([]dto.AssignmentResponse, error)
	// StudentAssignments lists assignments across the student's
	// enrolled subjects.
	StudentAssignments(ctx context.Context, studentID string) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService creates the assignment service.
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest, actorID string) (*dto.AssignmentResponse, error) {
	subject, err := resolveSubjectRef(ctx, s.repo, req.SubjectRef)
	if err != nil {
		return nil, err
	}

	dueDate, err := normalizeDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		SubjectID:   subject.SubjectID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		BaseModel:   model.BaseModel{CreatedBy: &actorID},
	}
	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info("assignment created",
		zap.String("assignment_id", assignment.AssignmentID),
		zap.String("subject_id", subject.SubjectID))

	assignment.Subject = subject
	resp := assignmentResponse(assignment)
	return &resp, nil
}

func (s *assignmentService) SubjectAssignments(ctx context.Context, ref dto.SubjectRef) ([]dto.AssignmentResponse, error) {
	subject, err := resolveSubjectRef(ctx, s.repo, ref)
	if err != nil {
		return nil, err
	}

	assignments, err := s.repo.Assignment.ListBySubject(ctx, subject.SubjectID)
	if err != nil {
		return nil, err
	}
	return assignmentResponses(assignments), nil
}

func (s *assignmentService) StudentAssignments(ctx context.Context, studentID string) ([]dto.AssignmentResponse, error) {
	links, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	subjectIDs := make([]string, 0, len(links))
	for _, link := range links {
		subjectIDs = append(subjectIDs, link.SubjectID)
	}

	assignments, err := s.repo.Assignment.ListBySubjects(ctx, subjectIDs)
	if err != nil {
		return nil, err
	}
	return assignmentResponses(assignments), nil
}

func assignmentResponses(assignments []model.Assignment) []dto.AssignmentResponse {
	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, assignmentResponse(&assignments[i]))
	}
	return out
}

func assignmentResponse(assignment *model.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:          assignment.AssignmentID,
		Title:       assignment.Title,
		Description: assignment.Description,
		DueDate:     normalizeStoredDate(assignment.DueDate),
		Subject:     subjectBrief(assignment.Subject),
		CreatedAt:   assignment.CreatedAt.Format(time.RFC3339),
	}
}

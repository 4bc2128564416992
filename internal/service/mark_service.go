package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
)

const defaultMaxMarks = 100

// MarkService records and reads internal assessment marks.
type MarkService interface {
	// Post records one exam's marks for a subject; re-posting the same
	// exam overwrites earlier scores per student.
	Post(ctx context.Context, req *dto.PostMarksRequest, actorID string) ([]dto.MarkResponse, error)
	StudentMarks(ctx context.Context, studentID string) ([]dto.MarkResponse, error)
	SubjectMarks(ctx context.Context, ref dto.SubjectRef, exam string) ([]dto.MarkResponse, error)
}

type markService struct {
	repo   *repository.Repository
	codec  *RollNoCodec
	logger *zap.Logger
}

// NewMarkService creates the mark service.
func NewMarkService(repo *repository.Repository, codec *RollNoCodec, logger *zap.Logger) MarkService {
	return &markService{repo: repo, codec: codec, logger: logger}
}

func (s *markService) Post(ctx context.Context, req *dto.PostMarksRequest, actorID string) ([]dto.MarkResponse, error) {
	subject, err := resolveSubjectRef(ctx, s.repo, req.SubjectRef)
	if err != nil {
		return nil, err
	}

	maxMarks := req.MaxMarks
	if maxMarks <= 0 {
		maxMarks = defaultMaxMarks
	}

	actor := &actorID
	out := make([]dto.MarkResponse, 0, len(req.Marks))
	for _, in := range req.Marks {
		mark := &model.InternalMark{
			SubjectID: subject.SubjectID,
			StudentID: in.StudentID,
			Exam:      req.Exam,
			Marks:     in.Marks,
			MaxMarks:  maxMarks,
			BaseModel: model.BaseModel{CreatedBy: actor, UpdatedBy: actor},
		}
		if err := s.repo.Mark.Upsert(ctx, mark); err != nil {
			return nil, err
		}
		out = append(out, markResponse(mark, subject))
	}

	s.logger.Info("marks posted",
		zap.String("subject_id", subject.SubjectID),
		zap.String("exam", req.Exam),
		zap.Int("students", len(out)))

	return out, nil
}

func (s *markService) StudentMarks(ctx context.Context, studentID string) ([]dto.MarkResponse, error) {
	marks, err := s.repo.Mark.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MarkResponse, 0, len(marks))
	for i := range marks {
		out = append(out, markResponse(&marks[i], marks[i].Subject))
	}
	return out, nil
}

func (s *markService) SubjectMarks(ctx context.Context, ref dto.SubjectRef, exam string) ([]dto.MarkResponse, error) {
	subject, err := resolveSubjectRef(ctx, s.repo, ref)
	if err != nil {
		return nil, err
	}

	marks, err := s.repo.Mark.ListBySubject(ctx, subject.SubjectID, exam)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MarkResponse, 0, len(marks))
	for i := range marks {
		out = append(out, markResponse(&marks[i], subject))
	}
	return out, nil
}

func markResponse(mark *model.InternalMark, subject *model.Subject) dto.MarkResponse {
	return dto.MarkResponse{
		ID:        mark.MarkID,
		StudentID: mark.StudentID,
		Exam:      mark.Exam,
		Marks:     mark.Marks,
		MaxMarks:  mark.MaxMarks,
		Subject:   subjectBrief(subject),
	}
}

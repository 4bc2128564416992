package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
)

var (
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrSubjectExists      = errors.New("subject code already exists")
	ErrSubjectRefRequired = errors.New("subject_id or subject_code required")
	ErrNotStaff           = errors.New("user is not a staff member")
	ErrNotStudent         = errors.New("user is not a student")
)

// legacyCodePrefix is tolerated on incoming subject codes and stripped.
const legacyCodePrefix = "SUBJ-"

// resolveSubjectRef loads the subject a request refers to, by ID when
// given, otherwise by code.
func resolveSubjectRef(ctx context.Context, repo *repository.Repository, ref dto.SubjectRef) (*model.Subject, error) {
	if ref.IsZero() {
		return nil, ErrSubjectRefRequired
	}

	var (
		subject *model.Subject
		err     error
	)
	if ref.SubjectID != "" {
		subject, err = repo.Subject.GetByID(ctx, ref.SubjectID)
	} else {
		code := strings.TrimPrefix(strings.TrimSpace(ref.SubjectCode), legacyCodePrefix)
		subject, err = repo.Subject.GetByCode(ctx, code)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

// SubjectService manages subjects, staff assignments and rosters.
type SubjectService interface {
	Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	List(ctx context.Context) ([]dto.SubjectResponse, error)
	AssignStaff(ctx context.Context, ref dto.SubjectRef, staffID string) error
	Enroll(ctx context.Context, ref dto.SubjectRef, studentID string) error
	// Students returns a subject's roster sorted by derived roll number.
	Students(ctx context.Context, ref dto.SubjectRef) ([]dto.UserBrief, error)
	StudentSubjects(ctx context.Context, studentID string) ([]dto.SubjectResponse, error)
	StaffSubjects(ctx context.Context, staffID string) ([]dto.SubjectResponse, error)
}

type subjectService struct {
	repo   *repository.Repository
	codec  *RollNoCodec
	logger *zap.Logger
}

// NewSubjectService creates the subject service.
func NewSubjectService(repo *repository.Repository, codec *RollNoCodec, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, codec: codec, logger: logger}
}

func (s *subjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	code := strings.TrimPrefix(strings.TrimSpace(req.Code), legacyCodePrefix)

	if _, err := s.repo.Subject.GetByCode(ctx, code); err == nil {
		return nil, ErrSubjectExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject := &model.Subject{
		Code:    code,
		Name:    req.Name,
		Section: req.Section,
	}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info("subject created",
		zap.String("subject_id", subject.SubjectID),
		zap.String("code", subject.Code))

	resp := subjectResponse(subject)
	return &resp, nil
}

func (s *subjectService) List(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		out = append(out, subjectResponse(&subjects[i]))
	}
	return out, nil
}

func (s *subjectService) AssignStaff(ctx context.Context, ref dto.SubjectRef, staffID string) error {
	subject, err := resolveSubjectRef(ctx, s.repo, ref)
	if err != nil {
		return err
	}

	staff, err := s.repo.User.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if staff.Role != model.RoleStaff && staff.Role != model.RoleAdmin {
		return ErrNotStaff
	}

	return s.repo.StaffSubject.EnsureLink(ctx, staff.UserID, subject.SubjectID)
}

func (s *subjectService) Enroll(ctx context.Context, ref dto.SubjectRef, studentID string) error {
	subject, err := resolveSubjectRef(ctx, s.repo, ref)
	if err != nil {
		return err
	}

	student, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if student.Role != model.RoleStudent {
		return ErrNotStudent
	}

	return s.repo.Enrollment.EnsureLink(ctx, subject.SubjectID, student.UserID)
}

func (s *subjectService) Students(ctx context.Context, ref dto.SubjectRef) ([]dto.UserBrief, error) {
	subject, err := resolveSubjectRef(ctx, s.repo, ref)
	if err != nil {
		return nil, err
	}

	links, err := s.repo.Enrollment.ListBySubject(ctx, subject.SubjectID)
	if err != nil {
		return nil, err
	}

	students := make([]dto.UserBrief, 0, len(links))
	for _, link := range links {
		if link.Student == nil {
			continue
		}
		students = append(students, dto.UserBrief{
			ID:     link.Student.UserID,
			Name:   link.Student.Name,
			Email:  link.Student.Email,
			Role:   link.Student.Role,
			RollNo: s.codec.DeriveRollNumber(link.Student.Email),
		})
	}

	// Rolls share a prefix, so lexical order is numeric order.
	// Accounts outside the convention sort last, by email.
	sort.Slice(students, func(i, j int) bool {
		a, b := students[i], students[j]
		if (a.RollNo == "") != (b.RollNo == "") {
			return a.RollNo != ""
		}
		if a.RollNo != b.RollNo {
			return a.RollNo < b.RollNo
		}
		return a.Email < b.Email
	})

	return students, nil
}

func (s *subjectService) StudentSubjects(ctx context.Context, studentID string) ([]dto.SubjectResponse, error) {
	links, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubjectResponse, 0, len(links))
	for _, link := range links {
		if link.Subject == nil {
			continue
		}
		out = append(out, subjectResponse(link.Subject))
	}
	return out, nil
}

func (s *subjectService) StaffSubjects(ctx context.Context, staffID string) ([]dto.SubjectResponse, error) {
	links, err := s.repo.StaffSubject.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubjectResponse, 0, len(links))
	for _, link := range links {
		if link.Subject == nil {
			continue
		}
		out = append(out, subjectResponse(link.Subject))
	}
	return out, nil
}

func subjectResponse(subject *model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{
		ID:      subject.SubjectID,
		Code:    subject.Code,
		Name:    subject.Name,
		Section: subject.Section,
		Special: subject.IsSpecial(),
	}
}

func subjectBrief(subject *model.Subject) *dto.SubjectBrief {
	if subject == nil {
		return nil
	}
	return &dto.SubjectBrief{
		ID:      subject.SubjectID,
		Code:    subject.Code,
		Name:    subject.Name,
		Section: subject.Section,
	}
}

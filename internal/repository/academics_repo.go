package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
)

// MarkRepository is the internal_marks data-access interface.
type MarkRepository interface {
	// Upsert inserts the mark or overwrites marks/max_marks when the
	// (subject, student, exam) triple already exists.
	Upsert(ctx context.Context, mark *model.InternalMark) error
	ListByStudent(ctx context.Context, studentID string) ([]model.InternalMark, error)
	ListBySubject(ctx context.Context, subjectID, exam string) ([]model.InternalMark, error)
}

type markRepo struct {
	db *gorm.DB
}

// NewMarkRepo creates the GORM-backed MarkRepository.
func NewMarkRepo(db *gorm.DB) MarkRepository {
	return &markRepo{db: db}
}

func (r *markRepo) Upsert(ctx context.Context, mark *model.InternalMark) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_id"}, {Name: "student_id"}, {Name: "exam"}},
			DoUpdates: clause.AssignmentColumns([]string{"marks", "max_marks", "updated_at", "updated_by"}),
		}).
		Create(mark).Error
}

func (r *markRepo) ListByStudent(ctx context.Context, studentID string) ([]model.InternalMark, error) {
	var marks []model.InternalMark
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ?", studentID).
		Order("exam ASC").
		Find(&marks).Error
	return marks, err
}

func (r *markRepo) ListBySubject(ctx context.Context, subjectID, exam string) ([]model.InternalMark, error) {
	var marks []model.InternalMark
	db := r.db.WithContext(ctx).
		Preload("Student").
		Where("subject_id = ?", subjectID)
	if exam != "" {
		db = db.Where("exam = ?", exam)
	}
	err := db.Order("exam ASC").Find(&marks).Error
	return marks, err
}

// ── Assignment ──

// AssignmentRepository is the assignments data-access interface.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	ListBySubject(ctx context.Context, subjectID string) ([]model.Assignment, error)
	ListBySubjects(ctx context.Context, subjectIDs []string) ([]model.Assignment, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates the GORM-backed AssignmentRepository.
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) ListBySubject(ctx context.Context, subjectID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("subject_id = ?", subjectID).
		Order("due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListBySubjects(ctx context.Context, subjectIDs []string) ([]model.Assignment, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("subject_id IN ?", subjectIDs).
		Order("due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

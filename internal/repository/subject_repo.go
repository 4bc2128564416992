package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
)

// SubjectRepository is the subjects data-access interface.
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	GetByCode(ctx context.Context, code string) (*model.Subject, error)
	// EnsureByCode creates the subject if no row with its code exists
	// and fills in the stored row either way.
	EnsureByCode(ctx context.Context, subject *model.Subject) error
	List(ctx context.Context) ([]model.Subject, error)
	// ListStaffAssigned returns the distinct subjects any staff member is
	// linked to, excluding the given codes.
	ListStaffAssigned(ctx context.Context, excludeCodes []string) ([]model.Subject, error)
	// ListExcludingCodes returns all subjects except the given codes.
	ListExcludingCodes(ctx context.Context, excludeCodes []string) ([]model.Subject, error)
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo creates the GORM-backed SubjectRepository.
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) GetByCode(ctx context.Context, code string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) EnsureByCode(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).
		Where("code = ?", subject.Code).
		FirstOrCreate(subject).Error
}

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) ListStaffAssigned(ctx context.Context, excludeCodes []string) ([]model.Subject, error) {
	var subjects []model.Subject
	db := r.db.WithContext(ctx).
		Distinct("subjects.*").
		Joins("JOIN staff_subjects ON staff_subjects.subject_id = subjects.subject_id")
	if len(excludeCodes) > 0 {
		db = db.Where("subjects.code NOT IN ?", excludeCodes)
	}
	err := db.Order("subjects.code ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) ListExcludingCodes(ctx context.Context, excludeCodes []string) ([]model.Subject, error) {
	var subjects []model.Subject
	db := r.db.WithContext(ctx)
	if len(excludeCodes) > 0 {
		db = db.Where("code NOT IN ?", excludeCodes)
	}
	err := db.Order("code ASC").Find(&subjects).Error
	return subjects, err
}

// ── StaffSubject ──

// StaffSubjectRepository is the staff_subjects data-access interface.
type StaffSubjectRepository interface {
	// EnsureLink creates the staff-subject pair if it does not exist.
	EnsureLink(ctx context.Context, staffID, subjectID string) error
	ListByStaff(ctx context.Context, staffID string) ([]model.StaffSubject, error)
	DeleteLink(ctx context.Context, staffID, subjectID string) error
}

type staffSubjectRepo struct {
	db *gorm.DB
}

// NewStaffSubjectRepo creates the GORM-backed StaffSubjectRepository.
func NewStaffSubjectRepo(db *gorm.DB) StaffSubjectRepository {
	return &staffSubjectRepo{db: db}
}

func (r *staffSubjectRepo) EnsureLink(ctx context.Context, staffID, subjectID string) error {
	link := model.StaffSubject{StaffID: staffID, SubjectID: subjectID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func (r *staffSubjectRepo) ListByStaff(ctx context.Context, staffID string) ([]model.StaffSubject, error) {
	var links []model.StaffSubject
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("staff_id = ?", staffID).
		Find(&links).Error
	return links, err
}

func (r *staffSubjectRepo) DeleteLink(ctx context.Context, staffID, subjectID string) error {
	return r.db.WithContext(ctx).
		Where("staff_id = ? AND subject_id = ?", staffID, subjectID).
		Delete(&model.StaffSubject{}).Error
}

// ── Enrollment ──

// EnrollmentRepository is the enrollments data-access interface.
type EnrollmentRepository interface {
	// EnsureLink enrolls the student if not already enrolled.
	EnsureLink(ctx context.Context, subjectID, studentID string) error
	ListBySubject(ctx context.Context, subjectID string) ([]model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
	DeleteLink(ctx context.Context, subjectID, studentID string) error
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo creates the GORM-backed EnrollmentRepository.
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) EnsureLink(ctx context.Context, subjectID, studentID string) error {
	link := model.Enrollment{SubjectID: subjectID, StudentID: studentID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func (r *enrollmentRepo) ListBySubject(ctx context.Context, subjectID string) ([]model.Enrollment, error) {
	var links []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("subject_id = ?", subjectID).
		Find(&links).Error
	return links, err
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	var links []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ?", studentID).
		Find(&links).Error
	return links, err
}

func (r *enrollmentRepo) DeleteLink(ctx context.Context, subjectID, studentID string) error {
	return r.db.WithContext(ctx).
		Where("subject_id = ? AND student_id = ?", subjectID, studentID).
		Delete(&model.Enrollment{}).Error
}

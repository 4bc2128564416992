package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	pkgerrors "github.com/prasanthzodiac/College-connect-sub000/pkg/errors"
)

// LeaveRepository is the leave_requests data-access interface.
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*model.LeaveRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.LeaveRequest, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.LeaveRequest, int64, error)
	// UpdateDecision sets status/decided_by with an optimistic-lock check.
	UpdateDecision(ctx context.Context, leave *model.LeaveRequest) error
}

type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo creates the GORM-backed LeaveRepository.
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) Create(ctx context.Context, leave *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *leaveRepo) GetByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	var leave model.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("leave_id = ?", id).
		First(&leave).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepo) ListByStudent(ctx context.Context, studentID string) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *leaveRepo) ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.LeaveRequest, int64, error) {
	var leaves []model.LeaveRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.LeaveRequest{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Student").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, total, err
}

func (r *leaveRepo) UpdateDecision(ctx context.Context, leave *model.LeaveRequest) error {
	oldVersion := leave.Version
	result := r.db.WithContext(ctx).
		Model(leave).
		Where("leave_id = ? AND version = ?", leave.LeaveID, oldVersion).
		Updates(map[string]interface{}{
			"status":     leave.Status,
			"decided_by": leave.DecidedBy,
			"updated_by": leave.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	leave.Version = oldVersion + 1
	return nil
}

// ── Grievance ──

// GrievanceRepository is the grievances data-access interface.
type GrievanceRepository interface {
	Create(ctx context.Context, grievance *model.Grievance) error
	GetByID(ctx context.Context, id string) (*model.Grievance, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Grievance, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.Grievance, int64, error)
	// UpdateResolution sets status/response with an optimistic-lock check.
	UpdateResolution(ctx context.Context, grievance *model.Grievance) error
}

type grievanceRepo struct {
	db *gorm.DB
}

// NewGrievanceRepo creates the GORM-backed GrievanceRepository.
func NewGrievanceRepo(db *gorm.DB) GrievanceRepository {
	return &grievanceRepo{db: db}
}

func (r *grievanceRepo) Create(ctx context.Context, grievance *model.Grievance) error {
	return r.db.WithContext(ctx).Create(grievance).Error
}

func (r *grievanceRepo) GetByID(ctx context.Context, id string) (*model.Grievance, error) {
	var grievance model.Grievance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("grievance_id = ?", id).
		First(&grievance).Error
	if err != nil {
		return nil, err
	}
	return &grievance, nil
}

func (r *grievanceRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Grievance, error) {
	var grievances []model.Grievance
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&grievances).Error
	return grievances, err
}

func (r *grievanceRepo) ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.Grievance, int64, error) {
	var grievances []model.Grievance
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Grievance{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Student").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&grievances).Error
	return grievances, total, err
}

func (r *grievanceRepo) UpdateResolution(ctx context.Context, grievance *model.Grievance) error {
	oldVersion := grievance.Version
	result := r.db.WithContext(ctx).
		Model(grievance).
		Where("grievance_id = ? AND version = ?", grievance.GrievanceID, oldVersion).
		Updates(map[string]interface{}{
			"status":     grievance.Status,
			"response":   grievance.Response,
			"updated_by": grievance.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	grievance.Version = oldVersion + 1
	return nil
}

// ── Certificate ──

// CertificateRepository is the certificate_requests data-access interface.
type CertificateRepository interface {
	Create(ctx context.Context, cert *model.CertificateRequest) error
	GetByID(ctx context.Context, id string) (*model.CertificateRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.CertificateRequest, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.CertificateRequest, int64, error)
	// UpdateDecision sets status/decided_by with an optimistic-lock check.
	UpdateDecision(ctx context.Context, cert *model.CertificateRequest) error
}

type certificateRepo struct {
	db *gorm.DB
}

// NewCertificateRepo creates the GORM-backed CertificateRepository.
func NewCertificateRepo(db *gorm.DB) CertificateRepository {
	return &certificateRepo{db: db}
}

func (r *certificateRepo) Create(ctx context.Context, cert *model.CertificateRequest) error {
	return r.db.WithContext(ctx).Create(cert).Error
}

func (r *certificateRepo) GetByID(ctx context.Context, id string) (*model.CertificateRequest, error) {
	var cert model.CertificateRequest
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("certificate_id = ?", id).
		First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *certificateRepo) ListByStudent(ctx context.Context, studentID string) ([]model.CertificateRequest, error) {
	var certs []model.CertificateRequest
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&certs).Error
	return certs, err
}

func (r *certificateRepo) ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.CertificateRequest, int64, error) {
	var certs []model.CertificateRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CertificateRequest{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Student").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&certs).Error
	return certs, total, err
}

func (r *certificateRepo) UpdateDecision(ctx context.Context, cert *model.CertificateRequest) error {
	oldVersion := cert.Version
	result := r.db.WithContext(ctx).
		Model(cert).
		Where("certificate_id = ? AND version = ?", cert.CertificateID, oldVersion).
		Updates(map[string]interface{}{
			"status":     cert.Status,
			"decided_by": cert.DecidedBy,
			"updated_by": cert.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	cert.Version = oldVersion + 1
	return nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
)

// AttendanceSessionRepository is the attendance_sessions data-access interface.
type AttendanceSessionRepository interface {
	Create(ctx context.Context, session *model.AttendanceSession) error
	BatchCreate(ctx context.Context, sessions []model.AttendanceSession) error
	GetByID(ctx context.Context, id string) (*model.AttendanceSession, error)
	// FindBySlot locates a session by its natural key.
	FindBySlot(ctx context.Context, subjectID, date, period string) (*model.AttendanceSession, error)
	ListBySubject(ctx context.Context, subjectID, date string) ([]model.AttendanceSession, error)
	ListBySubjectsInRange(ctx context.Context, subjectIDs []string, startDate, endDate string) ([]model.AttendanceSession, error)
	// DeleteInDateRange removes all sessions with startDate <= date <= endDate.
	// Entries cascade at the database level.
	DeleteInDateRange(ctx context.Context, startDate, endDate string) error
}

type attendanceSessionRepo struct {
	db *gorm.DB
}

// NewAttendanceSessionRepo creates the GORM-backed session repository.
func NewAttendanceSessionRepo(db *gorm.DB) AttendanceSessionRepository {
	return &attendanceSessionRepo{db: db}
}

func (r *attendanceSessionRepo) Create(ctx context.Context, session *model.AttendanceSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *attendanceSessionRepo) BatchCreate(ctx context.Context, sessions []model.AttendanceSession) error {
	if len(sessions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&sessions).Error
}

func (r *attendanceSessionRepo) GetByID(ctx context.Context, id string) (*model.AttendanceSession, error) {
	var session model.AttendanceSession
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *attendanceSessionRepo) FindBySlot(ctx context.Context, subjectID, date, period string) (*model.AttendanceSession, error) {
	var session model.AttendanceSession
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND date = ? AND period = ?", subjectID, date, period).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *attendanceSessionRepo) ListBySubject(ctx context.Context, subjectID, date string) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	db := r.db.WithContext(ctx).
		Preload("Subject").
		Where("subject_id = ?", subjectID)
	if date != "" {
		db = db.Where("date = ?", date)
	}
	err := db.Order("date ASC, period ASC").Find(&sessions).Error
	return sessions, err
}

func (r *attendanceSessionRepo) ListBySubjectsInRange(ctx context.Context, subjectIDs []string, startDate, endDate string) ([]model.AttendanceSession, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	var sessions []model.AttendanceSession
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("subject_id IN ? AND date >= ? AND date <= ?", subjectIDs, startDate, endDate).
		Order("date ASC, period ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *attendanceSessionRepo) DeleteInDateRange(ctx context.Context, startDate, endDate string) error {
	return r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Delete(&model.AttendanceSession{}).Error
}

// ── AttendanceEntry ──

// AttendanceEntryRepository is the attendance_entries data-access interface.
type AttendanceEntryRepository interface {
	BatchCreate(ctx context.Context, entries []model.AttendanceEntry) error
	ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceEntry, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.AttendanceEntry, error)
	// ListRecent returns the newest entries system-wide, or one student's
	// when studentID is non-empty.
	ListRecent(ctx context.Context, studentID string, limit int) ([]model.AttendanceEntry, error)
	CountsBySession(ctx context.Context, sessionIDs []string) (map[string]int, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

type attendanceEntryRepo struct {
	db *gorm.DB
}

// NewAttendanceEntryRepo creates the GORM-backed entry repository.
func NewAttendanceEntryRepo(db *gorm.DB) AttendanceEntryRepository {
	return &attendanceEntryRepo{db: db}
}

func (r *attendanceEntryRepo) BatchCreate(ctx context.Context, entries []model.AttendanceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&entries, 200).Error
}

func (r *attendanceEntryRepo) ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceEntry, error) {
	var entries []model.AttendanceEntry
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("session_id = ?", sessionID).
		Find(&entries).Error
	return entries, err
}

func (r *attendanceEntryRepo) ListByStudent(ctx context.Context, studentID string) ([]model.AttendanceEntry, error) {
	var entries []model.AttendanceEntry
	err := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Subject").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *attendanceEntryRepo) ListRecent(ctx context.Context, studentID string, limit int) ([]model.AttendanceEntry, error) {
	var entries []model.AttendanceEntry
	db := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Session").
		Preload("Session.Subject")
	if studentID != "" {
		db = db.Where("student_id = ?", studentID)
	}
	err := db.Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *attendanceEntryRepo) CountsBySession(ctx context.Context, sessionIDs []string) (map[string]int, error) {
	if len(sessionIDs) == 0 {
		return map[string]int{}, nil
	}

	type row struct {
		SessionID string
		N         int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceEntry{}).
		Select("session_id, COUNT(*) AS n").
		Where("session_id IN ?", sessionIDs).
		Group("session_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.SessionID] = r.N
	}
	return counts, nil
}

func (r *attendanceEntryRepo) DeleteBySession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.AttendanceEntry{}).Error
}

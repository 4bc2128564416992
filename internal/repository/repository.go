package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface.
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Subject      SubjectRepository
	StaffSubject StaffSubjectRepository
	Enrollment   EnrollmentRepository
	Session      AttendanceSessionRepository
	Entry        AttendanceEntryRepository
	Leave        LeaveRepository
	Grievance    GrievanceRepository
	Certificate  CertificateRepository
	Mark         MarkRepository
	Assignment   AssignmentRepository
	Circular     CircularRepository
	Event        EventRepository
}

// NewRepository wires every repository to the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Subject:      NewSubjectRepo(db),
		StaffSubject: NewStaffSubjectRepo(db),
		Enrollment:   NewEnrollmentRepo(db),
		Session:      NewAttendanceSessionRepo(db),
		Entry:        NewAttendanceEntryRepo(db),
		Leave:        NewLeaveRepo(db),
		Grievance:    NewGrievanceRepo(db),
		Certificate:  NewCertificateRepo(db),
		Mark:         NewMarkRepo(db),
		Assignment:   NewAssignmentRepo(db),
		Circular:     NewCircularRepo(db),
		Event:        NewEventRepo(db),
	}
}

// Transaction runs fn with a Repository bound to one database
// transaction, so multi-statement operations (week generation, entry
// replacement) commit or roll back atomically. An aggregate assembled
// without a connection runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

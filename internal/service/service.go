package service

import (
	"go.uber.org/zap"

	"github.com/prasanthzodiac/College-connect-sub000/config"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/jwt"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/redis"
)

// Service aggregates every business-logic interface.
type Service struct {
	Auth        AuthService
	Subject     SubjectService
	Attendance  AttendanceService
	Leave       LeaveService
	Grievance   GrievanceService
	Certificate CertificateService
	Mark        MarkService
	Assignment  AssignmentService
	Circular    CircularService
	Event       EventService
	Export      ExportService
}

// NewService wires every service to its dependencies.
// The notifier decouples attendance writes from the websocket transport;
// pass NopNotifier{} when no hub is running.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	codec := NewRollNoCodec(&cfg.College)

	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, rdb, codec, logger),
		Subject:     NewSubjectService(repo, codec, logger),
		Attendance:  NewAttendanceService(repo, codec, notifier, logger),
		Leave:       NewLeaveService(repo, logger),
		Grievance:   NewGrievanceService(repo, logger),
		Certificate: NewCertificateService(repo, logger),
		Mark:        NewMarkService(repo, codec, logger),
		Assignment:  NewAssignmentService(repo, logger),
		Circular:    NewCircularService(repo, logger),
		Event:       NewEventService(repo, logger),
		Export:      NewExportService(repo, codec, logger),
	}
}

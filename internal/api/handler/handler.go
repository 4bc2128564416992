package handler

import (
	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/realtime"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	Subject     *SubjectHandler
	Attendance  *AttendanceHandler
	Leave       *LeaveHandler
	Grievance   *GrievanceHandler
	Certificate *CertificateHandler
	Mark        *MarkHandler
	Assignment  *AssignmentHandler
	Circular    *CircularHandler
	Event       *EventHandler
	Export      *ExportHandler
	WS          *WSHandler
}

// NewHandler creates the handler aggregate. hub may be nil when the
// realtime endpoint is disabled.
func NewHandler(svc *service.Service, hub *realtime.Hub) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Subject:     NewSubjectHandler(svc.Subject),
		Attendance:  NewAttendanceHandler(svc.Attendance),
		Leave:       NewLeaveHandler(svc.Leave),
		Grievance:   NewGrievanceHandler(svc.Grievance),
		Certificate: NewCertificateHandler(svc.Certificate),
		Mark:        NewMarkHandler(svc.Mark),
		Assignment:  NewAssignmentHandler(svc.Assignment),
		Circular:    NewCircularHandler(svc.Circular),
		Event:       NewEventHandler(svc.Event),
		Export:      NewExportHandler(svc.Export),
		WS:          NewWSHandler(hub),
	}
}

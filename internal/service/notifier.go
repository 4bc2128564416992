package service

import "github.com/prasanthzodiac/College-connect-sub000/pkg/realtime"

// Realtime event names.
const (
	EventAttendanceUpdated = "attendance:updated"
	EventSessionUpdated    = "attendance:session:updated"
)

// AttendanceUpdatedEvent is delivered to room student:<student_id>
// whenever one entry of that student is written.
type AttendanceUpdatedEvent struct {
	SessionID string `json:"session_id"`
	StudentID string `json:"student_id"`
	Present   bool   `json:"present"`
	SubjectID string `json:"subject_id"`
	Date      string `json:"date"`
	Period    string `json:"period"`
}

// SessionUpdatedEvent is delivered to room subject:<subject_id>
// after all entries of a session were replaced.
type SessionUpdatedEvent struct {
	SessionID string `json:"session_id"`
	SubjectID string `json:"subject_id"`
	Date      string `json:"date"`
	Period    string `json:"period"`
}

// Notifier receives domain events after attendance writes commit.
// Persistence code never talks to the websocket transport directly;
// delivery is best-effort and never fails the write.
type Notifier interface {
	AttendanceUpdated(event AttendanceUpdatedEvent)
	SessionUpdated(event SessionUpdatedEvent)
}

// hubNotifier forwards events into the websocket hub's rooms.
type hubNotifier struct {
	hub *realtime.Hub
}

// NewHubNotifier creates a Notifier backed by the websocket hub.
func NewHubNotifier(hub *realtime.Hub) Notifier {
	return &hubNotifier{hub: hub}
}

func (n *hubNotifier) AttendanceUpdated(event AttendanceUpdatedEvent) {
	n.hub.Emit("student:"+event.StudentID, EventAttendanceUpdated, event)
}

func (n *hubNotifier) SessionUpdated(event SessionUpdatedEvent) {
	n.hub.Emit("subject:"+event.SubjectID, EventSessionUpdated, event)
}

// NopNotifier discards every event. Used when no hub is running and in tests.
type NopNotifier struct{}

func (NopNotifier) AttendanceUpdated(AttendanceUpdatedEvent) {}
func (NopNotifier) SessionUpdated(SessionUpdatedEvent)       {}

package model

// Workflow statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusIssued   = "issued"

	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// LeaveRequest — leave_requests table.
type LeaveRequest struct {
	LeaveID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"leave_id"`
	StudentID string  `gorm:"type:uuid;not null;index"                       json:"student_id"`
	FromDate  string  `gorm:"type:date;not null"                             json:"from_date"`
	ToDate    string  `gorm:"type:date;not null"                             json:"to_date"`
	Reason    string  `gorm:"type:varchar(500);not null"                     json:"reason"`
	Status    string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	DecidedBy *string `gorm:"type:uuid"                                      json:"decided_by,omitempty"`
	VersionedModel

	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }

// Grievance — grievances table.
type Grievance struct {
	GrievanceID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grievance_id"`
	StudentID   string `gorm:"type:uuid;not null;index"                       json:"student_id"`
	Topic       string `gorm:"type:varchar(200);not null"                     json:"topic"`
	Description string `gorm:"type:varchar(2000);not null"                    json:"description"`
	Status      string `gorm:"type:varchar(20);not null;default:'open'"       json:"status"`
	Response    string `gorm:"type:varchar(2000);not null;default:''"         json:"response"`
	VersionedModel

	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

func (Grievance) TableName() string { return "grievances" }

// CertificateRequest — certificate_requests table.
type CertificateRequest struct {
	CertificateID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"certificate_id"`
	StudentID     string  `gorm:"type:uuid;not null;index"                       json:"student_id"`
	CertType      string  `gorm:"type:varchar(50);not null"                      json:"cert_type"`
	Purpose       string  `gorm:"type:varchar(500);not null;default:''"          json:"purpose"`
	Status        string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	DecidedBy     *string `gorm:"type:uuid"                                      json:"decided_by,omitempty"`
	VersionedModel

	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

func (CertificateRequest) TableName() string { return "certificate_requests" }

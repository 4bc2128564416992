package dto

// ── leave ──

// ApplyLeaveRequest files a leave application.
type ApplyLeaveRequest struct {
	FromDate string `json:"from_date" binding:"required"`
	ToDate   string `json:"to_date"   binding:"required"`
	Reason   string `json:"reason"    binding:"required,max=500"`
}

// DecideRequest approves or rejects a pending workflow item.
type DecideRequest struct {
	Approve bool `json:"approve"`
}

// LeaveResponse is one leave request.
type LeaveResponse struct {
	ID        string     `json:"id"`
	FromDate  string     `json:"from_date"`
	ToDate    string     `json:"to_date"`
	Reason    string     `json:"reason"`
	Status    string     `json:"status"`
	Student   *UserBrief `json:"student,omitempty"`
	CreatedAt string     `json:"created_at"`
}

// ── grievance ──

// SubmitGrievanceRequest files a grievance.
type SubmitGrievanceRequest struct {
	Topic       string `json:"topic"       binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=2000"`
}

// ResolveGrievanceRequest closes a grievance with a response.
type ResolveGrievanceRequest struct {
	Response string `json:"response" binding:"required,max=2000"`
}

// GrievanceResponse is one grievance.
type GrievanceResponse struct {
	ID          string     `json:"id"`
	Topic       string     `json:"topic"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Response    string     `json:"response,omitempty"`
	Student     *UserBrief `json:"student,omitempty"`
	CreatedAt   string     `json:"created_at"`
}

// ── certificate ──

// RequestCertificateRequest asks for a certificate.
type RequestCertificateRequest struct {
	CertType string `json:"cert_type" binding:"required,max=50"`
	Purpose  string `json:"purpose"   binding:"omitempty,max=500"`
}

// CertificateResponse is one certificate request.
type CertificateResponse struct {
	ID        string     `json:"id"`
	CertType  string     `json:"cert_type"`
	Purpose   string     `json:"purpose"`
	Status    string     `json:"status"`
	Student   *UserBrief `json:"student,omitempty"`
	CreatedAt string     `json:"created_at"`
}
